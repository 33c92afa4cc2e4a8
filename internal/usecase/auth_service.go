// Package usecase はアプリケーションのユースケースを実装する。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"hawk-credential-service/internal/domain"
)

var tracer = otel.Tracer("hawk-credential-service/internal/usecase")

// UserDirectory はユーザー名からユーザーを解決するインターフェース。
// 該当ユーザーが存在しない場合は (nil, nil) を返す。
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AuthService はユーザー名とパスワードを検証する。
type AuthService struct {
	directory UserDirectory
}

// NewAuthService は新しいAuthServiceを生成する。
func NewAuthService(directory UserDirectory) *AuthService {
	return &AuthService{directory: directory}
}

// Validate はパスワードを保存済みのbcryptハッシュと比較する。
// 未登録のユーザー名・パスワード不一致はエラーではなく false を返す。
// ハッシュが不正で比較できない場合は domain.ErrHashCompare を返す。
func (s *AuthService) Validate(ctx context.Context, username, password string) (bool, *domain.Identity, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Validate")
	defer span.End()

	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return false, nil, fmt.Errorf("%w: %w", domain.ErrUserLookup, err)
	}
	if user == nil {
		span.SetAttributes(attribute.Bool("auth.user_found", false))
		return false, nil, nil
	}

	// bcryptは意図的に低速なため、この呼び出しがリクエストの主な待ち時間になる
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		span.SetAttributes(attribute.Bool("auth.password_match", false))
		return false, nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return false, nil, fmt.Errorf("%w: %w", domain.ErrHashCompare, err)
	}

	return true, user.ToIdentity(), nil
}

// HashPassword はパスワードをbcryptでハッシュ化する。
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
