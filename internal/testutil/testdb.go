package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/timegrid/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory store, closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening in-memory store")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW is the production UnitOfWork over a test store.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
