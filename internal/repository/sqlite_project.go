package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/db"
	"github.com/alexanderramin/timegrid/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO project_codes (code, allotted_hours) VALUES (?, ?)`, p.Code, p.Allotted)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project %s: %w", p.Code, ErrConflict)
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *SQLiteProjectRepo) CreateIfMissing(ctx context.Context, p *domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_codes (code, allotted_hours) VALUES (?, ?)`, p.Code, p.Allotted)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	existing, err := r.GetByCode(ctx, p.Code)
	if err != nil {
		return err
	}
	p.ID = existing.ID
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, code, allotted_hours FROM project_codes WHERE id = ?`, id)
	return scanProject(row, fmt.Sprintf("project %d", id))
}

func (r *SQLiteProjectRepo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, code, allotted_hours FROM project_codes WHERE code = ?`, code)
	return scanProject(row, fmt.Sprintf("project %s", code))
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, allotted_hours FROM project_codes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Code, &p.Allotted); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM project_codes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}

func (r *SQLiteProjectRepo) UpdateCode(ctx context.Context, id int64, code string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE project_codes SET code = ? WHERE id = ?`, code, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project %s: %w", code, ErrConflict)
		}
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("project %d", id))
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_codes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("project %d", id))
}

func (r *SQLiteProjectRepo) ListBudgets(ctx context.Context, month string) ([]domain.ProjectBudget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.code, COALESCE(a.allotted_hours, 0)
		FROM project_codes p
		LEFT JOIN project_month_allotments a ON a.project_code_id = p.id AND a.month = ?
		ORDER BY p.code`, month)
	if err != nil {
		return nil, fmt.Errorf("listing project budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.ProjectBudget
	for rows.Next() {
		var b domain.ProjectBudget
		if err := rows.Scan(&b.ProjectID, &b.Code, &b.Allotted); err != nil {
			return nil, fmt.Errorf("scanning project budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project budgets: %w", err)
	}
	return budgets, nil
}

func scanProject(row *sql.Row, what string) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Code, &p.Allotted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return &p, nil
}
