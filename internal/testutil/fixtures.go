package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/timegrid/internal/domain"
)

var testCodeCounter atomic.Int64

// ProjectOption customizes a fixture project.
type ProjectOption func(*domain.Project)

func WithCode(code string) ProjectOption {
	return func(p *domain.Project) {
		p.Code = code
	}
}

func WithAllotted(h float64) ProjectOption {
	return func(p *domain.Project) {
		p.Allotted = h
	}
}

// NewTestProject returns an unsaved project with a unique code.
func NewTestProject(opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Code:     fmt.Sprintf("TST-%04d", testCodeCounter.Add(1)),
		Allotted: 40,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SeedProject saves a fixture project and returns it with its ID set.
func SeedProject(t *testing.T, database *sql.DB, opts ...ProjectOption) *domain.Project {
	t.Helper()
	p := NewTestProject(opts...)
	res, err := database.Exec(`INSERT INTO project_codes (code, allotted_hours) VALUES (?, ?)`, p.Code, p.Allotted)
	if err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		t.Fatalf("reading seeded project id: %v", err)
	}
	return p
}

// SeedHours records hours for a project on a date.
func SeedHours(t *testing.T, database *sql.DB, projectID int64, date string, hours float64) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO time_entries (project_code_id, entry_date, hours) VALUES (?, ?, ?)
		ON CONFLICT(project_code_id, entry_date) DO UPDATE SET hours = excluded.hours`, projectID, date, hours)
	if err != nil {
		t.Fatalf("seeding hours: %v", err)
	}
}

// SeedAllotment sets a project's allotment for a month.
func SeedAllotment(t *testing.T, database *sql.DB, projectID int64, month string, hours float64) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO project_month_allotments (project_code_id, month, allotted_hours) VALUES (?, ?, ?)
		ON CONFLICT(project_code_id, month) DO UPDATE SET allotted_hours = excluded.allotted_hours`, projectID, month, hours)
	if err != nil {
		t.Fatalf("seeding allotment: %v", err)
	}
}
