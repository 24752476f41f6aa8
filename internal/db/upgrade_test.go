package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacySchema simulates a database created before
// project codes carried their own allotment and users recorded created_at.
// Existing rows must survive and pick up the column defaults.
func TestMigrate_UpgradePath_LegacySchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE users (id TEXT PRIMARY KEY, email TEXT NOT NULL UNIQUE, password_hash TEXT NOT NULL)`,
		`CREATE TABLE project_codes (id INTEGER PRIMARY KEY AUTOINCREMENT, code TEXT NOT NULL UNIQUE)`,
		`INSERT INTO users (id, email, password_hash) VALUES ('u1', 'a@b.c', 'x')`,
		`INSERT INTO project_codes (code) VALUES ('LEGACY-1')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var allotted float64
	require.NoError(t, db.QueryRow(`SELECT allotted_hours FROM project_codes WHERE code = 'LEGACY-1'`).Scan(&allotted))
	assert.Equal(t, 0.0, allotted)

	var createdAt string
	require.NoError(t, db.QueryRow(`SELECT created_at FROM users WHERE id = 'u1'`).Scan(&createdAt))
	assert.Equal(t, "", createdAt)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='time_entries'`).Scan(&name))
	assert.Equal(t, "time_entries", name)
}
