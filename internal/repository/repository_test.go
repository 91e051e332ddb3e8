package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"newsline/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open in-memory db failed: %v", err)
	}

	// a single connection keeps every session on the same in-memory
	// database and lets concurrent writers serialize cleanly
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Category{},
		&model.News{},
		&model.User{},
		&model.UserToken{},
		&model.ViewEvent{},
	); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}

	return db
}
