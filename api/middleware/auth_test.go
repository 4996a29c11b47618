package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/shopwave/shopwave-backend/pkg/auth"
	"github.com/shopwave/shopwave-backend/pkg/config"
)

type stubChecker struct {
	live map[string]bool
	err  error
}

func (s *stubChecker) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.live[sessionID], nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		Issuer:     "shopwave",
		TTLMinutes: 60,
	}
}

func mintToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintSessionToken(testSessionConfig(), time.Now(), pkgAuth.SessionTokenPayload{
		UserID: "usr_42",
		Email:  "buyer@example.com",
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func authHandler(t *testing.T, checker *stubChecker) (http.Handler, *string) {
	t.Helper()
	var seenUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	return Auth(testSessionConfig(), checker, nil)(inner), &seenUser
}

func TestAuthAcceptsLiveSession(t *testing.T) {
	checker := &stubChecker{live: map[string]bool{"sess-1": true}}
	handler, seenUser := authHandler(t, checker)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "sess-1"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if *seenUser != "usr_42" {
		t.Fatalf("expected user id in context, got %q", *seenUser)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, _ := authHandler(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	checker := &stubChecker{live: map[string]bool{}}
	handler, _ := authHandler(t, checker)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "sess-dead"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", w.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler, _ := authHandler(t, &stubChecker{live: map[string]bool{"sess-1": true}})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
