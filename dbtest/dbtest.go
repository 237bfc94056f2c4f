// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"cafe-ordering-api/catalog"
	"cafe-ordering-api/config"
	"cafe-ordering-api/tables"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a migrated, empty in-memory database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := config.OpenDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Seeded returns a database with the default menu and floor loaded.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	ctx := context.Background()
	if err := catalog.New(db).Seed(ctx); err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	if err := tables.New(db).Seed(ctx, tables.Floor); err != nil {
		t.Fatalf("seed tables: %v", err)
	}
	return db
}
