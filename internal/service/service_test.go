package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/weekgoal/internal/auth"
	"github.com/mmynk/weekgoal/internal/middleware"
	"github.com/mmynk/weekgoal/internal/session"
	"github.com/mmynk/weekgoal/internal/storage/sqlite"
	"github.com/mmynk/weekgoal/pkg/api/apiconnect"
)

// monday of 2024-W24
var testNow = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	store   *sqlite.SQLiteStore
	weeks   apiconnect.WeekServiceClient
	auth    apiconnect.AuthServiceClient
	jwt     *auth.JWTManager
	cleanup func()
}

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
func testAuthInterceptor(userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return next(middleware.WithUserID(ctx, userID, userID+"@example.com"), req)
		}
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRegistry(store *sqlite.SQLiteStore) *session.Registry {
	return session.NewRegistry(store, session.Options{
		Logger: quietLogger(),
		Now:    func() time.Time { return testNow },
	}, 16, time.Hour)
}

// setupTestServer serves both services from a temporary SQLite database.
// With a non-empty userID the week service trusts that user instead of
// checking tokens.
func setupTestServer(t *testing.T, userID string) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	registry := newRegistry(store)
	logger := quietLogger()

	weekAuth := connect.WithInterceptors(middleware.RequireAuth(jwtManager))
	if userID != "" {
		weekAuth = connect.WithInterceptors(testAuthInterceptor(userID))
	}

	mux := http.NewServeMux()
	weekPath, weekHandler := apiconnect.NewWeekServiceHandler(NewWeekService(registry, logger), weekAuth)
	mux.Handle(weekPath, weekHandler)

	authSvc := NewAuthService(
		auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		jwtManager, store, registry, logger,
	)
	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)))
	mux.Handle(authPath, authHandler)

	server := httptest.NewServer(mux)

	return &testServer{
		store: store,
		weeks: apiconnect.NewWeekServiceClient(http.DefaultClient, server.URL),
		auth:  apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		jwt:   jwtManager,
		cleanup: func() {
			server.Close()
			store.Close()
		},
	}
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func withUser(ctx context.Context, userID string) context.Context {
	return middleware.WithUserID(ctx, userID, "")
}

func newHTTPTestServer(t *testing.T, h http.Handler) string {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return server.URL
}
