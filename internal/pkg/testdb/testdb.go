// Package testdb provides throwaway databases for tests.
package testdb

import (
	"testing"

	"gorm.io/gorm"

	"github.com/medisite/cms/internal/pkg/database"
)

// New opens a fresh, migrated in-memory SQLite database that lives for the
// duration of the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
