package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timegrid/internal/domain"
)

type observedGateway struct {
	next     Gateway
	observer UseCaseObserver
}

// NewObservedGateway reports every call on next to the first non-nil observer.
func NewObservedGateway(next Gateway, observers ...UseCaseObserver) Gateway {
	return &observedGateway{next: next, observer: useCaseObserverOrNoop(observers)}
}

func (g *observedGateway) report(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	g.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: started,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (g *observedGateway) GetWeeks(ctx context.Context, month string) (weeks []domain.WeekSlice, err error) {
	defer func(start time.Time) {
		g.report(ctx, "get_weeks", start, err, map[string]any{"month": month, "weeks": len(weeks)})
	}(time.Now())
	return g.next.GetWeeks(ctx, month)
}

func (g *observedGateway) SetDayHours(ctx context.Context, projectID int64, date string, hours float64) (err error) {
	defer func(start time.Time) {
		g.report(ctx, "set_day_hours", start, err, map[string]any{"project_id": projectID, "date": date, "hours": hours})
	}(time.Now())
	return g.next.SetDayHours(ctx, projectID, date, hours)
}

func (g *observedGateway) ListProjects(ctx context.Context) (projects []domain.Project, err error) {
	defer func(start time.Time) {
		g.report(ctx, "list_projects", start, err, map[string]any{"count": len(projects)})
	}(time.Now())
	return g.next.ListProjects(ctx)
}

func (g *observedGateway) AddProject(ctx context.Context, code string, allotted float64) (err error) {
	defer func(start time.Time) {
		g.report(ctx, "add_project", start, err, map[string]any{"code": code, "allotted": allotted})
	}(time.Now())
	return g.next.AddProject(ctx, code, allotted)
}

func (g *observedGateway) UpdateProject(ctx context.Context, id int64, code string) (err error) {
	defer func(start time.Time) {
		g.report(ctx, "update_project", start, err, map[string]any{"project_id": id, "code": code})
	}(time.Now())
	return g.next.UpdateProject(ctx, id, code)
}

func (g *observedGateway) DeleteProject(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) {
		g.report(ctx, "delete_project", start, err, map[string]any{"project_id": id})
	}(time.Now())
	return g.next.DeleteProject(ctx, id)
}

func (g *observedGateway) ListProjectAllotments(ctx context.Context, projectID int64) (rows []domain.MonthlyAllotment, err error) {
	defer func(start time.Time) {
		g.report(ctx, "list_project_allotments", start, err, map[string]any{"project_id": projectID, "count": len(rows)})
	}(time.Now())
	return g.next.ListProjectAllotments(ctx, projectID)
}

func (g *observedGateway) SetProjectMonthAllotment(ctx context.Context, projectID int64, month string, allotted float64) (err error) {
	defer func(start time.Time) {
		g.report(ctx, "set_project_month_allotment", start, err, map[string]any{"project_id": projectID, "month": month, "allotted": allotted})
	}(time.Now())
	return g.next.SetProjectMonthAllotment(ctx, projectID, month, allotted)
}

// Credentials are never logged; only the email is recorded.
func (g *observedGateway) LoginUser(ctx context.Context, email, password string) (ok bool, err error) {
	defer func(start time.Time) {
		g.report(ctx, "login_user", start, err, map[string]any{"email": email, "authenticated": ok})
	}(time.Now())
	return g.next.LoginUser(ctx, email, password)
}

func (g *observedGateway) RegisterUser(ctx context.Context, email, password string) (err error) {
	defer func(start time.Time) {
		g.report(ctx, "register_user", start, err, map[string]any{"email": email})
	}(time.Now())
	return g.next.RegisterUser(ctx, email, password)
}
