package repository

import (
	"io/fs"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hawk-credential-service/migrations"
)

// setupTestDB はスキーマ適用済みのインメモリSQLiteデータベースを作成する。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		t.Fatalf("failed to list migrations: %v", err)
	}
	for _, name := range files {
		sql, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		if err := db.Exec(string(sql)).Error; err != nil {
			t.Fatalf("failed to apply %s: %v", name, err)
		}
	}

	return db
}
