package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_codes (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS project_month_allotments (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		project_code_id INTEGER NOT NULL REFERENCES project_codes(id) ON DELETE CASCADE,
		month           TEXT NOT NULL,
		allotted_hours  REAL NOT NULL DEFAULT 0,
		UNIQUE(project_code_id, month)
	)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		project_code_id INTEGER NOT NULL REFERENCES project_codes(id) ON DELETE CASCADE,
		entry_date      TEXT NOT NULL,
		hours           REAL NOT NULL DEFAULT 0,
		UNIQUE(project_code_id, entry_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allotments_project ON project_month_allotments(project_code_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(entry_date)`,

	// Project-level allotment used as the initial budget when a code is added.
	`ALTER TABLE project_codes ADD COLUMN allotted_hours REAL NOT NULL DEFAULT 0`,

	`ALTER TABLE users ADD COLUMN created_at TEXT NOT NULL DEFAULT ''`,
}
