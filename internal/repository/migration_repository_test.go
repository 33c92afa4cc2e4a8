package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrationRepository(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	repo := NewMigrationRepository(db)
	if err := repo.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
	// 2回目もエラーにならない
	if err := repo.EnsureTable(ctx); err != nil {
		t.Fatalf("second EnsureTable failed: %v", err)
	}

	applied, err := repo.IsMigrationApplied(ctx, "001")
	if err != nil {
		t.Fatalf("IsMigrationApplied failed: %v", err)
	}
	if applied {
		t.Error("expected 001 not applied")
	}

	if err := db.Create(&SchemaMigrationModel{Version: "001"}).Error; err != nil {
		t.Fatalf("failed to insert migration: %v", err)
	}

	applied, err = repo.IsMigrationApplied(ctx, "001")
	if err != nil {
		t.Fatalf("IsMigrationApplied failed: %v", err)
	}
	if !applied {
		t.Error("expected 001 applied")
	}

	migrations, err := repo.FindAllApplied(ctx)
	if err != nil {
		t.Fatalf("FindAllApplied failed: %v", err)
	}
	if len(migrations) != 1 || migrations[0].Version != "001" || migrations[0].AppliedAt == nil {
		t.Errorf("unexpected migrations: %+v", migrations)
	}
}
