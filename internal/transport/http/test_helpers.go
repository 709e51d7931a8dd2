package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/gridspace-server/internal/auth"
	"github.com/vovakirdan/gridspace-server/internal/config"
	"github.com/vovakirdan/gridspace-server/internal/core"
	"github.com/vovakirdan/gridspace-server/internal/store"
	"github.com/vovakirdan/gridspace-server/internal/store/sqlite"
)

// createTestStore creates an in-memory SQLite store with schema applied.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	return st
}

// createTestAuthService creates an auth service for testing.
func createTestAuthService(t *testing.T, st store.Store, jwtSecret string) *auth.Service {
	t.Helper()

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(jwtSecret),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	return auth.NewService(st, jwtConfig)
}

// testEnv bundles everything a handler test needs.
type testEnv struct {
	store       store.Store
	authService *auth.Service
	hub         *core.Hub
	server      *httptest.Server
}

// startTestEnv boots a full server (hub, store, router) backed by an
// in-memory database. Everything is torn down via t.Cleanup.
func startTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testStore := createTestStore(t)
	t.Cleanup(func() { testStore.Close() })

	authService := createTestAuthService(t, testStore, "test-secret")

	disabledLogger := zerolog.New(nil)

	hub := core.NewHub(&disabledLogger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		MaxMessageBytes:   1 << 20,
		JWTSecret:         "test-secret",
	}

	server := NewServer(hub, authService, testStore, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testEnv{
		store:       testStore,
		authService: authService,
		hub:         hub,
		server:      ts,
	}
}

// signupAndSignin registers a user through the auth service and returns
// the user together with a valid token.
func signupAndSignin(t *testing.T, env *testEnv, username string, role store.Role) (*store.User, string) {
	t.Helper()

	user, err := env.authService.Signup(context.Background(), username, "password123", role)
	if err != nil {
		t.Fatalf("failed to sign up %s: %v", username, err)
	}

	token, err := env.authService.Signin(context.Background(), username, "password123")
	if err != nil {
		t.Fatalf("failed to sign in %s: %v", username, err)
	}

	return user, token
}
