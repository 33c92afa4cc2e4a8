package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"hawk-credential-service/internal/domain"
	"hawk-credential-service/internal/middleware"
	"hawk-credential-service/internal/repository"
	"hawk-credential-service/internal/usecase"
)

// mockCredentialStore はテスト用のモックストア。
type mockCredentialStore struct {
	persistErr error
	persisted  map[string][]*domain.Credential
}

func (m *mockCredentialStore) Persist(ctx context.Context, username string, credential *domain.Credential) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	if m.persisted == nil {
		m.persisted = make(map[string][]*domain.Credential)
	}
	m.persisted[username] = append(m.persisted[username], credential)
	return nil
}

func (m *mockCredentialStore) writes() int {
	n := 0
	for _, cs := range m.persisted {
		n += len(cs)
	}
	return n
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

const testLifespan = 3600 * time.Second

// newTestDirectory は john/correct-password を持つディレクトリを返す。
func newTestDirectory(t *testing.T) *repository.MemoryUserDirectory {
	t.Helper()
	hash, err := usecase.HashPassword("correct-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return repository.NewMemoryUserDirectory(&domain.User{ID: "1", Username: "john", PasswordHash: hash})
}

func setupHandler(t *testing.T, store usecase.CredentialStore, issuerCfg usecase.IssuerConfig) *CredentialHandler {
	t.Helper()
	issuerCfg.Algorithm = "sha256-hmac"
	issuerCfg.Lifespan = testLifespan

	service := usecase.NewIssuanceService(
		usecase.NewAuthService(newTestDirectory(t)),
		usecase.NewCredentialIssuer(issuerCfg),
		store,
	)
	return NewCredentialHandler(service, middleware.NewMetrics(prometheus.NewRegistry()))
}

func loginRequest(username, password string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.SetBasicAuth(username, password)
	return req
}

func TestLogin_Success(t *testing.T) {
	store := &mockCredentialStore{}
	h := setupHandler(t, store, usecase.IssuerConfig{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest("john", "correct-password"))

	if rec.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", rec.Code)
	}

	var resp CredentialResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Algorithm != "sha256-hmac" {
		t.Errorf("want algorithm sha256-hmac, got %s", resp.Algorithm)
	}
	if resp.ExpireTime-resp.IssueTime != testLifespan.Milliseconds() {
		t.Errorf("want expireTime-issueTime=%d, got %d", testLifespan.Milliseconds(), resp.ExpireTime-resp.IssueTime)
	}
	if resp.ID == "" || resp.Key == "" || resp.ID == resp.Key {
		t.Errorf("unexpected id/key: %q / %q", resp.ID, resp.Key)
	}

	stored := store.persisted["john"]
	if len(stored) != 1 || stored[0].ID != resp.ID {
		t.Errorf("want credential %s persisted for john, got %+v", resp.ID, stored)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "wrong password", req: loginRequest("john", "wrong-password")},
		{name: "unknown user", req: loginRequest("alice", "anything")},
		{name: "missing credentials", req: httptest.NewRequest(http.MethodGet, "/login", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockCredentialStore{}
			h := setupHandler(t, store, usecase.IssuerConfig{})

			rec := httptest.NewRecorder()
			h.Login(rec, tt.req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("want status 401, got %d", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("want WWW-Authenticate header")
			}
			if store.writes() != 0 {
				t.Errorf("want 0 store writes, got %d", store.writes())
			}
		})
	}
}

func TestLogin_GenerationFailure(t *testing.T) {
	store := &mockCredentialStore{}
	h := setupHandler(t, store, usecase.IssuerConfig{Entropy: failingReader{}})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest("john", "correct-password"))

	assertInternalError(t, rec)
	if store.writes() != 0 {
		t.Errorf("want 0 store writes, got %d", store.writes())
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	store := &mockCredentialStore{persistErr: errors.New("dial tcp 10.0.0.5:6379: connection refused")}
	h := setupHandler(t, store, usecase.IssuerConfig{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest("john", "correct-password"))

	assertInternalError(t, rec)
}

func assertInternalError(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want status 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, leak := range []string{"entropy", "connection refused", "10.0.0.5"} {
		if strings.Contains(body, leak) {
			t.Errorf("response leaks internal detail %q: %s", leak, body)
		}
	}

	var resp map[string]any
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["reference"] == "" || resp["reference"] == nil {
		t.Error("want opaque error reference")
	}
	if _, ok := resp["id"]; ok {
		t.Error("credential must not be returned on failure")
	}
}
