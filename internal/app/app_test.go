package app

import (
	"context"
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

type recordingSink struct {
	events []model.ViewEvent
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event model.ViewEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

type stubHotBoard struct {
	ids []uint
	err error
}

func (b *stubHotBoard) TopNewsIDs(context.Context, int) ([]uint, error) {
	return b.ids, b.err
}
