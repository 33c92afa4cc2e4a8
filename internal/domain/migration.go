package domain

import "time"

// MigrationStatus はマイグレーションの適用状態を表す
type MigrationStatus string

const (
	MigrationStatusPending MigrationStatus = "pending"
	MigrationStatusApplied MigrationStatus = "applied"
)

// Migration は埋め込みスキーマファイル1件分のマイグレーション
type Migration struct {
	Version   string          // 例: "001"
	Name      string          // 例: "create_users"
	AppliedAt *time.Time      // 未適用の場合はnil
	Filename  string          // 埋め込みFS上のファイル名
	Status    MigrationStatus
}
