package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/db"
	"github.com/alexanderramin/timegrid/internal/domain"
)

// SQLiteAllotmentRepo implements AllotmentRepo using a SQLite database.
type SQLiteAllotmentRepo struct {
	db db.DBTX
}

func NewSQLiteAllotmentRepo(db db.DBTX) *SQLiteAllotmentRepo {
	return &SQLiteAllotmentRepo{db: db}
}

func (r *SQLiteAllotmentRepo) Upsert(ctx context.Context, a domain.MonthlyAllotment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_month_allotments (project_code_id, month, allotted_hours)
		VALUES (?, ?, ?)
		ON CONFLICT(project_code_id, month) DO UPDATE SET allotted_hours = excluded.allotted_hours`,
		a.ProjectID, a.Month, a.Allotted,
	)
	if err != nil {
		return fmt.Errorf("upserting allotment %s: %w", a.Month, err)
	}
	return nil
}

func (r *SQLiteAllotmentRepo) ListByProject(ctx context.Context, projectID int64) ([]domain.MonthlyAllotment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_code_id, month, allotted_hours
		FROM project_month_allotments WHERE project_code_id = ?
		ORDER BY month DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing allotments: %w", err)
	}
	defer rows.Close()

	var out []domain.MonthlyAllotment
	for rows.Next() {
		var a domain.MonthlyAllotment
		if err := rows.Scan(&a.ProjectID, &a.Month, &a.Allotted); err != nil {
			return nil, fmt.Errorf("scanning allotment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allotments: %w", err)
	}
	return out, nil
}
