package repository

import (
	"context"

	"github.com/alexanderramin/timegrid/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProjectRepo interface {
	// Create inserts the project and sets p.ID.
	Create(ctx context.Context, p *domain.Project) error
	// CreateIfMissing inserts the project unless its code already exists.
	CreateIfMissing(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Count(ctx context.Context) (int, error)
	UpdateCode(ctx context.Context, id int64, code string) error
	Delete(ctx context.Context, id int64) error
	// ListBudgets joins every project with its allotment for month,
	// ordered by code.
	ListBudgets(ctx context.Context, month string) ([]domain.ProjectBudget, error)
}

type AllotmentRepo interface {
	Upsert(ctx context.Context, a domain.MonthlyAllotment) error
	// ListByProject returns the project's allotments, newest month first.
	ListByProject(ctx context.Context, projectID int64) ([]domain.MonthlyAllotment, error)
}

type TimeEntryRepo interface {
	Upsert(ctx context.Context, e domain.TimeEntry) error
	ListByMonth(ctx context.Context, month string) ([]domain.TimeEntry, error)
}
