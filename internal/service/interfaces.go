package service

import (
	"context"

	"github.com/alexanderramin/timegrid/internal/domain"
)

// WeekFetcher loads the week grid of a month.
type WeekFetcher interface {
	GetWeeks(ctx context.Context, month string) ([]domain.WeekSlice, error)
}

// WeekGateway is what the week grid editor needs from the backend.
type WeekGateway interface {
	WeekFetcher
	SetDayHours(ctx context.Context, projectID int64, date string, hours float64) error
}

// AllotmentGateway reads and writes per-month allotments.
type AllotmentGateway interface {
	ListProjectAllotments(ctx context.Context, projectID int64) ([]domain.MonthlyAllotment, error)
	SetProjectMonthAllotment(ctx context.Context, projectID int64, month string, allotted float64) error
}

// Authenticator checks and creates credentials.
type Authenticator interface {
	LoginUser(ctx context.Context, email, password string) (bool, error)
	RegisterUser(ctx context.Context, email, password string) error
}

// Gateway is the request/response surface every screen talks to.
// Implementations are safe for concurrent use.
type Gateway interface {
	WeekGateway
	AllotmentGateway
	Authenticator

	ListProjects(ctx context.Context) ([]domain.Project, error)
	AddProject(ctx context.Context, code string, allotted float64) error
	UpdateProject(ctx context.Context, id int64, code string) error
	DeleteProject(ctx context.Context, id int64) error
}

// ProjectImporter loads a batch of projects with their allotments.
type ProjectImporter interface {
	Import(ctx context.Context, plans []domain.ProjectPlan) (int, error)
}
