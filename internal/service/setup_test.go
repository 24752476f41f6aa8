package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/repository"
	"github.com/alexanderramin/timegrid/internal/testutil"
)

func newTestGateway(t *testing.T, opts ...GatewayOption) (Gateway, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	gw := NewGateway(
		repository.NewSQLiteUserRepo(database),
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteAllotmentRepo(database),
		repository.NewSQLiteTimeEntryRepo(database),
		testutil.NewTestUoW(database),
		opts...,
	)
	return gw, database
}

// countingGateway wraps a Gateway and records calls per method.
type countingGateway struct {
	Gateway

	mu       sync.Mutex
	calls    map[string]int
	setHours []float64
	failSet  error
}

func newCountingGateway(next Gateway) *countingGateway {
	return &countingGateway{Gateway: next, calls: map[string]int{}}
}

func (g *countingGateway) count(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[name]
}

func (g *countingGateway) record(name string) {
	g.mu.Lock()
	g.calls[name]++
	g.mu.Unlock()
}

func (g *countingGateway) GetWeeks(ctx context.Context, month string) ([]domain.WeekSlice, error) {
	g.record("get_weeks")
	return g.Gateway.GetWeeks(ctx, month)
}

func (g *countingGateway) SetDayHours(ctx context.Context, projectID int64, date string, hours float64) error {
	g.record("set_day_hours")
	g.mu.Lock()
	g.setHours = append(g.setHours, hours)
	failErr := g.failSet
	g.mu.Unlock()
	if failErr != nil {
		return failErr
	}
	return g.Gateway.SetDayHours(ctx, projectID, date, hours)
}

func (g *countingGateway) SetProjectMonthAllotment(ctx context.Context, projectID int64, month string, allotted float64) error {
	g.record("set_project_month_allotment")
	return g.Gateway.SetProjectMonthAllotment(ctx, projectID, month, allotted)
}

var errInjected = errors.New("injected failure")
