package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"chorechart/internal/database"
)

// setupTestDB opens a migrated database in a temp dir. A file-backed
// database is used so concurrent transactions in tests share state across
// pooled connections.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
