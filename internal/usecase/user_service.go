package usecase

import (
	"context"
	"fmt"
	"regexp"

	"hawk-credential-service/internal/domain"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,64}$`)

// UserRepository は永続化されたユーザーディレクトリのインターフェース。
type UserRepository interface {
	UserDirectory
	Create(ctx context.Context, user *domain.User) error
}

// UserService はユーザーディレクトリへの登録を提供する。
type UserService struct {
	repo       UserRepository
	bcryptCost int
}

// NewUserService は新しいUserServiceを生成する。
func NewUserService(repo UserRepository, bcryptCost int) *UserService {
	return &UserService{repo: repo, bcryptCost: bcryptCost}
}

// Register はユーザーを登録する。パスワードはbcryptハッシュとして保存する。
func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if !usernameRegex.MatchString(username) {
		return nil, domain.ErrInvalidUsername
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}
