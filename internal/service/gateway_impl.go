package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timegrid/internal/db"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrPasswordRequired = errors.New("password is required")
)

// SampleProjects are seeded into an empty store when seeding is enabled.
var SampleProjects = []domain.Project{
	{Code: "PRJ-1001", Allotted: 40},
	{Code: "PRJ-2002", Allotted: 20},
}

// GatewayOption configures the SQLite-backed gateway.
type GatewayOption func(*gateway)

// WithSampleSeed seeds SampleProjects on the first GetWeeks against an
// empty store.
func WithSampleSeed(enabled bool) GatewayOption {
	return func(g *gateway) {
		g.seedSamples = enabled
	}
}

type gateway struct {
	users       repository.UserRepo
	projects    repository.ProjectRepo
	allotments  repository.AllotmentRepo
	entries     repository.TimeEntryRepo
	uow         db.UnitOfWork
	seedSamples bool
}

// NewGateway returns a Gateway backed by the given repositories.
func NewGateway(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	allotments repository.AllotmentRepo,
	entries repository.TimeEntryRepo,
	uow db.UnitOfWork,
	opts ...GatewayOption,
) Gateway {
	g := &gateway{
		users:      users,
		projects:   projects,
		allotments: allotments,
		entries:    entries,
		uow:        uow,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gateway) GetWeeks(ctx context.Context, month string) ([]domain.WeekSlice, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	if g.seedSamples {
		if err := g.ensureSampleProjects(ctx); err != nil {
			return nil, err
		}
	}

	budgets, err := g.projects.ListBudgets(ctx, m.String())
	if err != nil {
		return nil, err
	}
	entries, err := g.entries.ListByMonth(ctx, m.String())
	if err != nil {
		return nil, err
	}
	return domain.BuildWeeks(m, budgets, entries), nil
}

func (g *gateway) ensureSampleProjects(ctx context.Context) error {
	n, err := g.projects.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return g.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		for _, sample := range SampleProjects {
			p := sample
			if err := txProjects.CreateIfMissing(ctx, &p); err != nil {
				return fmt.Errorf("seeding %s: %w", p.Code, err)
			}
		}
		return nil
	})
}

func (g *gateway) SetDayHours(ctx context.Context, projectID int64, date string, hours float64) error {
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}
	if err := domain.ValidateHours(hours); err != nil {
		return err
	}
	return g.entries.Upsert(ctx, domain.TimeEntry{ProjectID: projectID, Date: date, Hours: hours})
}

func (g *gateway) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return g.projects.List(ctx)
}

func (g *gateway) AddProject(ctx context.Context, code string, allotted float64) error {
	code, err := domain.NormalizeCode(code)
	if err != nil {
		return err
	}
	if err := domain.ValidateHours(allotted); err != nil {
		return err
	}
	return g.projects.Create(ctx, &domain.Project{Code: code, Allotted: allotted})
}

func (g *gateway) UpdateProject(ctx context.Context, id int64, code string) error {
	code, err := domain.NormalizeCode(code)
	if err != nil {
		return err
	}
	return g.projects.UpdateCode(ctx, id, code)
}

func (g *gateway) DeleteProject(ctx context.Context, id int64) error {
	return g.projects.Delete(ctx, id)
}

func (g *gateway) ListProjectAllotments(ctx context.Context, projectID int64) ([]domain.MonthlyAllotment, error) {
	return g.allotments.ListByProject(ctx, projectID)
}

func (g *gateway) SetProjectMonthAllotment(ctx context.Context, projectID int64, month string, allotted float64) error {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return err
	}
	if err := domain.ValidateHours(allotted); err != nil {
		return err
	}
	return g.allotments.Upsert(ctx, domain.MonthlyAllotment{ProjectID: projectID, Month: m.String(), Allotted: allotted})
}

func (g *gateway) LoginUser(ctx context.Context, email, password string) (bool, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	u, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	ok, err := VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("verifying password: %w", err)
	}
	return ok, nil
}

func (g *gateway) RegisterUser(ctx context.Context, email, password string) error {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return err
	}
	if password == "" {
		return ErrPasswordRequired
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	err = g.users.Create(ctx, &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrConflict) {
		return ErrEmailTaken
	}
	return err
}
