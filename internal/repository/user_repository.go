// Package repository はデータアクセス層の実装を提供する。
package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hawk-credential-service/internal/domain"
)

// UserModel はgorm用のモデル定義。
type UserModel struct {
	ID           string    `gorm:"type:varchar(36);primaryKey"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(72);not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"`
}

// TableName はテーブル名を返す。
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (u *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
	}
}

// UserRepository はデータベースに永続化されたユーザーディレクトリ。
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository は新しいUserRepositoryを生成する。
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername はユーザー名でユーザーを取得する。存在しない場合は nil を返す。
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find user",
			"operation", "find_by_username",
			"username", username,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}

// Create はユーザーを保存する。
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	model := &UserModel{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create user",
			"operation", "create_user",
			"username", user.Username,
			"error", err,
		)
		return err
	}
	user.ID = model.ID
	return nil
}
