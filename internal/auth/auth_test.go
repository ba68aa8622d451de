package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// mockSessionStore is a simple in-memory session store for testing.
type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]string)}
}

func (m *mockSessionStore) Create(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.sessions[token] = userID
	return token, nil
}

func (m *mockSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.sessions[token]
	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "hunter2-but-longer" {
		t.Error("hash must not equal the plain password")
	}

	if !CheckPassword(hash, "hunter2-but-longer") {
		t.Error("expected correct password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestRequireSession(t *testing.T) {
	sessions := newMockSessionStore()
	token, err := sessions.Create(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	e := echo.New()
	handler := RequireSession(sessions)(func(c echo.Context) error {
		return c.String(http.StatusOK, UserIDFromContext(c))
	})

	run := func(authorization string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set(echo.HeaderAuthorization, authorization)
		}
		rec := httptest.NewRecorder()
		return rec, handler(e.NewContext(req, rec))
	}

	rec, err := run("Bearer " + token)
	if err != nil {
		t.Fatalf("expected valid token to pass: %v", err)
	}
	if rec.Body.String() != "user-42" {
		t.Errorf("expected user ID in context, got %q", rec.Body.String())
	}

	for _, header := range []string{"", "Bearer unknown-token", token} {
		_, err := run(header)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %v", header, err)
		}
	}

	// A deleted session no longer resolves.
	if err := sessions.Delete(context.Background(), token); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}
	if _, err := run("Bearer " + token); err == nil {
		t.Error("expected logged-out token to be rejected")
	}
}
