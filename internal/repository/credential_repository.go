package repository

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hawk-credential-service/internal/domain"
)

// CredentialOwnershipModel はユーザーとクレデンシャルIDの所有関係。
type CredentialOwnershipModel struct {
	Username     string    `gorm:"type:varchar(64);primaryKey"`
	CredentialID string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"`
}

// TableName はテーブル名を返す。
func (CredentialOwnershipModel) TableName() string {
	return "credential_ownerships"
}

// HawkCredentialModel はクレデンシャルレコード。時刻はエポックミリ秒で保持する。
type HawkCredentialModel struct {
	ID         string `gorm:"type:varchar(64);primaryKey"`
	Key        string `gorm:"column:credential_key;type:varchar(64);not null"`
	Algorithm  string `gorm:"type:varchar(32);not null"`
	IssueTime  int64  `gorm:"not null"`
	ExpireTime int64  `gorm:"not null"`
}

// TableName はテーブル名を返す。
func (HawkCredentialModel) TableName() string {
	return "hawk_credentials"
}

func (m *HawkCredentialModel) toDomain() *domain.Credential {
	return &domain.Credential{
		ID:         m.ID,
		Key:        m.Key,
		Algorithm:  m.Algorithm,
		IssueTime:  time.UnixMilli(m.IssueTime),
		ExpireTime: time.UnixMilli(m.ExpireTime),
	}
}

// CredentialRepository はRDBにクレデンシャルを記録する。
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository は新しいCredentialRepositoryを生成する。
func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Persist は所有関係を追加した後、クレデンシャルレコードを書き込む。
// Redis版と同じく2回の書き込みはトランザクションで囲まない。
func (r *CredentialRepository) Persist(ctx context.Context, username string, credential *domain.Credential) error {
	ownership := &CredentialOwnershipModel{
		Username:     username,
		CredentialID: credential.ID,
	}
	// 同じIDの追加は何もしない
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ownership).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to create credential ownership",
			"operation", "create_ownership",
			"username", username,
			"credential_id", credential.ID,
			"error", err,
		)
		return err
	}

	model := &HawkCredentialModel{
		ID:         credential.ID,
		Key:        credential.Key,
		Algorithm:  credential.Algorithm,
		IssueTime:  credential.IssueTime.UnixMilli(),
		ExpireTime: credential.ExpireTime.UnixMilli(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create credential record",
			"operation", "create_credential",
			"username", username,
			"credential_id", credential.ID,
			"error", err,
		)
		return err
	}
	return nil
}
