package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/code-harsh006/new-backend/config"
	"github.com/code-harsh006/new-backend/core/auth"
	"github.com/code-harsh006/new-backend/model"
	"github.com/code-harsh006/new-backend/repository"
)

type memoryUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (r *memoryUserRepo) CreateUser(user *model.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, repository.ErrDuplicateUser
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.IsActive = true
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *memoryUserRepo) GetUserByID(id int64) (*model.User, error) {
	return r.users[id], nil
}

func (r *memoryUserRepo) GetUserByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) UpdateLastLogin(userID int64) error { return nil }

func (r *memoryUserRepo) IncrementUploadCount(userID int64) error { return nil }

func newAuthTestHandler(t *testing.T) (*APIHandler, *memoryUserRepo) {
	t.Helper()
	users := newMemoryUserRepo()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	cfg := &config.Config{}
	return NewAPIHandler(nil, users, tokens, nil, cfg), users
}

func register(t *testing.T, h *APIHandler, username, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(RegisterRequest{Username: username, Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.RegisterHandler(rec, req)
	return rec
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	rec := register(t, h, "alice", "alice@example.com", "sup3rsecret")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the response")
	}

	claims, err := h.tokens.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Username != "alice" {
		t.Fatalf("claims do not match the registered user: %+v", claims)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@example.com", "sup3rsecret"},
		{"bad characters", "has space", "a@example.com", "sup3rsecret"},
		{"bad email", "alice", "not-an-email", "sup3rsecret"},
		{"short password", "alice", "a@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := register(t, h, tc.username, tc.email, tc.password)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	if rec := register(t, h, "alice", "alice@example.com", "sup3rsecret"); rec.Code != http.StatusCreated {
		t.Fatalf("first registration failed: %d", rec.Code)
	}
	rec := register(t, h, "alice", "other@example.com", "sup3rsecret")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", rec.Code)
	}
}

func login(t *testing.T, h *APIHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.LoginHandler(rec, req)
	return rec
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	h, _ := newAuthTestHandler(t)
	register(t, h, "alice", "alice@example.com", "sup3rsecret")

	if rec := login(t, h, "alice", "sup3rsecret"); rec.Code != http.StatusOK {
		t.Fatalf("login by username: expected 200, got %d", rec.Code)
	}
	if rec := login(t, h, "Alice@Example.com", "sup3rsecret"); rec.Code != http.StatusOK {
		t.Fatalf("login by email: expected 200, got %d", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, _ := newAuthTestHandler(t)
	register(t, h, "alice", "alice@example.com", "sup3rsecret")

	if rec := login(t, h, "alice", "wrongpassword"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if rec := login(t, h, "nobody", "sup3rsecret"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", rec.Code)
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	h, users := newAuthTestHandler(t)
	register(t, h, "alice", "alice@example.com", "sup3rsecret")
	users.users[1].IsActive = false

	if rec := login(t, h, "alice", "sup3rsecret"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("deactivated account: expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	h, users := newAuthTestHandler(t)
	register(t, h, "alice", "alice@example.com", "sup3rsecret")

	token, err := h.tokens.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotUserID int64
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rec.Code)
	}
	if gotUserID != 1 {
		t.Fatalf("expected user ID 1 in context, got %d", gotUserID)
	}

	for name, header := range map[string]string{
		"missing header": "",
		"not bearer":     "Basic " + token,
		"garbage token":  "Bearer not.a.token",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}

	users.users[1].IsActive = false
	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("deactivated account: expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	h, _ := newAuthTestHandler(t)
	register(t, h, "alice", "alice@example.com", "sup3rsecret")

	var viewerID int64
	handler := h.OptionalAuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		viewerID = ViewerIDFromContext(r.Context())
		fmt.Fprint(w, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/audio/playlist", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || viewerID != 0 {
		t.Fatalf("anonymous: expected 200 with viewer 0, got %d viewer %d", rec.Code, viewerID)
	}

	token, _ := h.tokens.GenerateToken(1, "alice")
	req = httptest.NewRequest(http.MethodGet, "/api/audio/playlist", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || viewerID != 1 {
		t.Fatalf("authenticated: expected 200 with viewer 1, got %d viewer %d", rec.Code, viewerID)
	}
}
