package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/weekgoal/internal/auth"
	"github.com/mmynk/weekgoal/internal/middleware"
	"github.com/mmynk/weekgoal/internal/models"
	"github.com/mmynk/weekgoal/internal/session"
	"github.com/mmynk/weekgoal/internal/storage"
	"github.com/mmynk/weekgoal/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	accounts      storage.AccountStore
	sessions      *session.Registry
	logger        *slog.Logger
}

// NewAuthService creates the account service. Logout drops the caller's
// live week session from sessions.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, accounts storage.AccountStore, sessions *session.Registry, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		accounts:      accounts,
		sessions:      sessions,
		logger:        logger,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if strings.TrimSpace(req.Msg.Email) == "" || strings.TrimSpace(req.Msg.DisplayName) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email and display name are required"))
	}

	var profile *models.Profile
	if req.Msg.Profile != nil {
		p, err := fromProfile(req.Msg.Profile, "")
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		profile = p
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
			s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if profile != nil {
		profile.UserID = user.ID
		profile.CreatedAt = user.CreatedAt
		profile.UpdatedAt = user.CreatedAt
		if err := s.accounts.SaveProfile(ctx, profile); err != nil {
			// The account exists; the driver can fill the profile in later.
			s.logger.Error("Failed to save sign-up profile", "user_id", user.ID, "error", err)
		}
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.AuthResponse{User: toUser(user), Token: token}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&api.AuthResponse{User: toUser(user), Token: token}), nil
}

// Logout forgets the caller's in-memory week session. Tokens are stateless,
// so the client discards its own token.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error) {
	if userID := middleware.GetUserID(ctx); userID != "" && s.sessions != nil {
		s.sessions.Drop(userID)
		s.logger.Info("Logout request", "user_id", userID)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.UserResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.UserResponse{User: toUser(user)}), nil
}

// GetProfile returns the caller's driver profile. A driver who never saved
// one gets an empty profile.
func (s *AuthService) GetProfile(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ProfileResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.accounts.GetProfile(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to load profile", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if profile == nil {
		profile = &models.Profile{UserID: user.ID}
	}
	return connect.NewResponse(&api.ProfileResponse{Profile: toProfile(profile, user.Email)}), nil
}

// UpdateProfile replaces the caller's driver profile.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.ProfileResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Profile == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("profile is required"))
	}

	profile, err := fromProfile(req.Msg.Profile, user.ID)
	if err != nil {
		s.logger.Warn("Rejected profile update", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	existing, err := s.accounts.GetProfile(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to load profile", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	now := time.Now().Unix()
	profile.CreatedAt = now
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
	}
	profile.UpdatedAt = now

	if err := s.accounts.SaveProfile(ctx, profile); err != nil {
		s.logger.Error("Failed to save profile", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Profile updated", "user_id", user.ID)
	return connect.NewResponse(&api.ProfileResponse{Profile: toProfile(profile, user.Email)}), nil
}

func (s *AuthService) currentUser(ctx context.Context) (*models.User, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.accounts.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if user == nil {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("user not found"))
	}
	return user, nil
}
