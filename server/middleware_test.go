package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

func okHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestRateLimitByIPAllows(t *testing.T) {
	h := &APIHandler{}
	limiter := &stubLimiter{allowed: true}
	called := false

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	rec := httptest.NewRecorder()

	h.RateLimitByIP(limiter, okHandler(&called)).ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected the wrapped handler to run")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.9" {
		t.Fatalf("expected the limiter to be keyed by client IP, got %v", limiter.keys)
	}
}

func TestRateLimitByIPRejects(t *testing.T) {
	h := &APIHandler{}
	limiter := &stubLimiter{allowed: false}
	called := false

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()

	h.RateLimitByIP(limiter, okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatal("handler must not run when the window is exhausted")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	h := &APIHandler{}
	limiter := &stubLimiter{err: errors.New("redis down")}
	called := false

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()

	h.RateLimitByIP(limiter, okHandler(&called)).ServeHTTP(rec, req)

	if !called {
		t.Fatal("a limiter failure must not block requests")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimitByUserKeysOnUserID(t *testing.T) {
	h := &APIHandler{}
	limiter := &stubLimiter{allowed: true}
	called := false

	req := httptest.NewRequest(http.MethodPost, "/api/audio/upload", nil)
	req = req.WithContext(context.WithValue(req.Context(), "userID", int64(42)))
	rec := httptest.NewRecorder()

	h.RateLimitByUser(limiter, okHandler(&called)).ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected the wrapped handler to run")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "42" {
		t.Fatalf("expected the limiter to be keyed by user ID, got %v", limiter.keys)
	}
}

func TestRateLimitByUserRequiresAuth(t *testing.T) {
	h := &APIHandler{}
	limiter := &stubLimiter{allowed: true}
	called := false

	req := httptest.NewRequest(http.MethodPost, "/api/audio/upload", nil)
	rec := httptest.NewRecorder()

	h.RateLimitByUser(limiter, okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatal("handler must not run without an authenticated user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected remote address host, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := clientIP(req); got != "198.51.100.7" {
		t.Fatalf("expected first forwarded address, got %q", got)
	}
}
