package usecase

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"hawk-credential-service/internal/domain"
)

// mockUserDirectory はテスト用のモックディレクトリ。
type mockUserDirectory struct {
	users     map[string]*domain.User
	findErr   error
	createErr error
	created   []*domain.User
}

func (m *mockUserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.users[username], nil
}

func (m *mockUserDirectory) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "generated-id"
	m.created = append(m.created, user)
	return nil
}

// persistCall はPersistの呼び出し記録。
type persistCall struct {
	username   string
	credential *domain.Credential
}

// mockCredentialStore はテスト用のモックストア。
type mockCredentialStore struct {
	persistErr error
	calls      []persistCall
}

func (m *mockCredentialStore) Persist(ctx context.Context, username string, credential *domain.Credential) error {
	m.calls = append(m.calls, persistCall{username: username, credential: credential})
	return m.persistErr
}

// errReader は常に失敗する乱数源。
type errReader struct{ err error }

func (r errReader) Read(p []byte) (int, error) {
	return 0, r.err
}

// newDirectoryWithJohn は john/correct-password を登録したディレクトリを返す。
func newDirectoryWithJohn(t *testing.T) *mockUserDirectory {
	t.Helper()

	hash, err := HashPassword("correct-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &mockUserDirectory{
		users: map[string]*domain.User{
			"john": {ID: "1", Username: "john", PasswordHash: hash},
		},
	}
}
