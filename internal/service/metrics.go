package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timegrid/internal/domain"
	"golang.org/x/sync/errgroup"
)

// MetricsAggregator folds a calendar year of week grids into chart data.
type MetricsAggregator struct {
	weeks WeekFetcher
}

func NewMetricsAggregator(weeks WeekFetcher) *MetricsAggregator {
	return &MetricsAggregator{weeks: weeks}
}

// Aggregate fetches all twelve months of year concurrently. The first
// failure cancels the remaining fetches.
func (a *MetricsAggregator) Aggregate(ctx context.Context, year int) (domain.YearMetrics, error) {
	var months [12][]domain.WeekSlice

	g, gctx := errgroup.WithContext(ctx)
	for i := range months {
		m := domain.Month{Year: year, Month: time.Month(i + 1)}
		g.Go(func() error {
			weeks, err := a.weeks.GetWeeks(gctx, m.String())
			if err != nil {
				return fmt.Errorf("fetching %s: %w", m, err)
			}
			months[i] = weeks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.YearMetrics{}, err
	}
	return domain.FoldYear(year, months), nil
}
