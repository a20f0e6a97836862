package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory shop database that lives for the test.
// It is pinned to one connection, so it cannot exercise concurrent writers.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewFileTestDB opens a migrated shop database file under t.TempDir. Every
// pooled connection sees the same WAL-mode file, which is what lock and
// busy-timeout tests need.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "shopfloor.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewTxRunner(database)
}
