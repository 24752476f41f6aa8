package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/db"
	"github.com/alexanderramin/timegrid/internal/domain"
)

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

func NewSQLiteTimeEntryRepo(db db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: db}
}

func (r *SQLiteTimeEntryRepo) Upsert(ctx context.Context, e domain.TimeEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO time_entries (project_code_id, entry_date, hours)
		VALUES (?, ?, ?)
		ON CONFLICT(project_code_id, entry_date) DO UPDATE SET hours = excluded.hours`,
		e.ProjectID, e.Date, e.Hours,
	)
	if err != nil {
		return fmt.Errorf("upserting time entry %s: %w", e.Date, err)
	}
	return nil
}

// ListByMonth returns every entry dated inside month ("YYYY-MM").
func (r *SQLiteTimeEntryRepo) ListByMonth(ctx context.Context, month string) ([]domain.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_code_id, entry_date, hours FROM time_entries
		WHERE entry_date LIKE ? ORDER BY entry_date, project_code_id`, month+"-%")
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var out []domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(&e.ProjectID, &e.Date, &e.Hours); err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return out, nil
}
