package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/weekgoal/pkg/api"
)

func TestAuthService_RegisterLoginAndCurrentUser(t *testing.T) {
	srv := setupTestServer(t, "")
	defer srv.cleanup()
	ctx := context.Background()

	reg, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       " Driver@Example.com ",
		DisplayName: "Driver",
		Password:    "correct horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" || reg.Msg.User.Email != "driver@example.com" {
		t.Errorf("unexpected register response %+v", reg.Msg)
	}

	claims, err := srv.jwt.Validate(reg.Msg.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != reg.Msg.User.ID {
		t.Errorf("expected token for %s, got %s", reg.Msg.User.ID, claims.UserID)
	}

	login, err := srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "driver@example.com",
		Password: "correct horse",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	me, err := srv.auth.GetCurrentUser(ctx, withToken(&emptypb.Empty{}, login.Msg.Token))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.ID != reg.Msg.User.ID || me.Msg.User.DisplayName != "Driver" || me.Msg.User.CreatedAt == 0 {
		t.Errorf("unexpected current user %+v", me.Msg.User)
	}

	if _, err := srv.auth.Logout(ctx, withToken(&emptypb.Empty{}, login.Msg.Token)); err != nil {
		t.Errorf("Logout failed: %v", err)
	}
}

func TestAuthService_Errors(t *testing.T) {
	srv := setupTestServer(t, "")
	defer srv.cleanup()
	ctx := context.Background()

	if _, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "taken@example.com", DisplayName: "First", Password: "password1",
	})); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "duplicate email",
			call: func() error {
				_, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "TAKEN@example.com", DisplayName: "Second", Password: "password2",
				}))
				return err
			},
			want: connect.CodeAlreadyExists,
		},
		{
			name: "weak password",
			call: func() error {
				_, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "new@example.com", DisplayName: "New", Password: "short",
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "invalid email",
			call: func() error {
				_, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "not-an-email", DisplayName: "New", Password: "password1",
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "missing display name",
			call: func() error {
				_, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "new@example.com", Password: "password1",
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
					Email: "taken@example.com", Password: "password2",
				}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "unknown email",
			call: func() error {
				_, err := srv.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
					Email: "nobody@example.com", Password: "password1",
				}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "profile without token",
			call: func() error {
				_, err := srv.auth.GetProfile(ctx, connect.NewRequest(&emptypb.Empty{}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "sign-up profile with unknown vehicle",
			call: func() error {
				_, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "moto@example.com", DisplayName: "Moto", Password: "password1",
					Profile: &api.Profile{VehicleType: "scooter"},
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "current user without token",
			call: func() error {
				_, err := srv.auth.GetCurrentUser(ctx, connect.NewRequest(&emptypb.Empty{}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := connect.CodeOf(err); code != tt.want {
				t.Errorf("expected %v, got %v (%v)", tt.want, code, err)
			}
		})
	}
}

func TestAuthService_LogoutDropsSession(t *testing.T) {
	srv := setupTestServer(t, "")
	defer srv.cleanup()
	ctx := context.Background()

	reg, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "driver@example.com", DisplayName: "Driver", Password: "long-enough",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	token := reg.Msg.Token

	if _, err := srv.weeks.SelectWeek(ctx, withToken(&api.SelectWeekRequest{Week: "2024-W30"}, token)); err != nil {
		t.Fatalf("SelectWeek failed: %v", err)
	}
	if _, err := srv.auth.Logout(ctx, withToken(&emptypb.Empty{}, token)); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// The new session starts on the week of "now" again.
	resp, err := srv.weeks.GetWeek(ctx, withToken(&api.GetWeekRequest{}, token))
	if err != nil {
		t.Fatalf("GetWeek failed: %v", err)
	}
	if resp.Msg.Week.Key != "2024-W24" {
		t.Errorf("expected 2024-W24 after logout, got %s", resp.Msg.Week.Key)
	}
}

func TestAuthService_Profile(t *testing.T) {
	srv := setupTestServer(t, "")
	defer srv.cleanup()
	ctx := context.Background()

	reg, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "driver@example.com",
		DisplayName: "Sam",
		Password:    "password1",
		Profile: &api.Profile{
			FirstName:   " Sam ",
			VehicleType: "berline",
			Platforms:   []string{"Uber", "Uber"},
			WorkCity:    "Lyon",
		},
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	token := reg.Msg.Token

	got, err := srv.auth.GetProfile(ctx, withToken(&emptypb.Empty{}, token))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	p := got.Msg.Profile
	if p.Email != "driver@example.com" || p.FirstName != "Sam" || p.VehicleType != "berline" || p.WorkCity != "Lyon" {
		t.Errorf("unexpected sign-up profile %+v", p)
	}
	if len(p.Platforms) != 1 || p.Platforms[0] != "Uber" {
		t.Errorf("platforms = %v, want [Uber]", p.Platforms)
	}

	tests := []struct {
		name     string
		profile  *api.Profile
		wantCode connect.Code
	}{
		{
			name: "valid update",
			profile: &api.Profile{
				FirstName:         "Sam",
				LastName:          "Martin",
				VehicleType:       "electric",
				PreferredZone:     "airport",
				YearsOfExperience: "5+",
				Platforms:         []string{"Bolt", "Heetch"},
			},
		},
		{name: "missing profile", wantCode: connect.CodeInvalidArgument},
		{name: "unknown zone", profile: &api.Profile{PreferredZone: "moon"}, wantCode: connect.CodeInvalidArgument},
		{name: "unknown experience band", profile: &api.Profile{YearsOfExperience: "10+"}, wantCode: connect.CodeInvalidArgument},
		{name: "unknown platform", profile: &api.Profile{Platforms: []string{"Lyft"}}, wantCode: connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.auth.UpdateProfile(ctx, withToken(&api.UpdateProfileRequest{Profile: tt.profile}, token))
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("UpdateProfile failed: %v", err)
				}
				return
			}
			if code := connect.CodeOf(err); code != tt.wantCode {
				t.Errorf("expected %v, got %v (%v)", tt.wantCode, code, err)
			}
		})
	}

	// Rejected updates leave the last valid profile in place.
	got, err = srv.auth.GetProfile(ctx, withToken(&emptypb.Empty{}, token))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	p = got.Msg.Profile
	if p.LastName != "Martin" || p.VehicleType != "electric" || p.PreferredZone != "airport" || p.YearsOfExperience != "5+" {
		t.Errorf("unexpected profile after updates %+v", p)
	}
	if p.WorkCity != "" || len(p.Platforms) != 2 || p.UpdatedAt == 0 {
		t.Errorf("unexpected profile after updates %+v", p)
	}
}

func TestAuthService_ProfileDefaultsToEmpty(t *testing.T) {
	srv := setupTestServer(t, "")
	defer srv.cleanup()
	ctx := context.Background()

	reg, err := srv.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "plain@example.com", DisplayName: "Plain", Password: "password1",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := srv.auth.GetProfile(ctx, withToken(&emptypb.Empty{}, reg.Msg.Token))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	p := got.Msg.Profile
	if p.Email != "plain@example.com" || p.FirstName != "" || p.Platforms == nil || len(p.Platforms) != 0 {
		t.Errorf("unexpected default profile %+v", p)
	}
}
