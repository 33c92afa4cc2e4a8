package repository

import (
	"context"

	"hawk-credential-service/internal/domain"
)

// MemoryUserDirectory は起動時に与えられたユーザーのみを持つ読み取り専用ディレクトリ。
type MemoryUserDirectory struct {
	users map[string]*domain.User
}

// NewMemoryUserDirectory は新しいMemoryUserDirectoryを生成する。
func NewMemoryUserDirectory(users ...*domain.User) *MemoryUserDirectory {
	d := &MemoryUserDirectory{users: make(map[string]*domain.User, len(users))}
	for _, u := range users {
		copied := *u
		d.users[u.Username] = &copied
	}
	return d
}

// FindByUsername はユーザー名でユーザーを取得する。存在しない場合は nil を返す。
func (d *MemoryUserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := d.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}
