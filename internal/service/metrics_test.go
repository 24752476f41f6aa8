package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsAggregator_FoldsWholeYear(t *testing.T) {
	gw, database := newTestGateway(t)
	a := testutil.SeedProject(t, database, testutil.WithCode("B-PRJ"))
	b := testutil.SeedProject(t, database, testutil.WithCode("A-PRJ"))
	testutil.SeedHours(t, database, a.ID, "2024-01-15", 8)
	testutil.SeedHours(t, database, a.ID, "2024-01-16", 4)
	testutil.SeedHours(t, database, a.ID, "2024-12-31", 2)
	testutil.SeedHours(t, database, b.ID, "2024-06-01", 6)
	testutil.SeedHours(t, database, b.ID, "2023-12-31", 100)

	m, err := NewMetricsAggregator(gw).Aggregate(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, []string{"A-PRJ", "B-PRJ"}, m.Codes)
	assert.Equal(t, 12.0, m.Monthly["B-PRJ"][0])
	assert.Equal(t, 2.0, m.Monthly["B-PRJ"][11])
	assert.Equal(t, 6.0, m.Monthly["A-PRJ"][5])
	assert.Equal(t, 14.0, m.Yearly["B-PRJ"])
	assert.Equal(t, 20.0, m.YearTotal)
	assert.Equal(t, 366, m.DaysInYear)
	assert.InDelta(t, 14.0/366, m.AvgPerDay("B-PRJ"), 1e-9)
}

type failingFetcher struct{ failMonth string }

func (f failingFetcher) GetWeeks(ctx context.Context, month string) ([]domain.WeekSlice, error) {
	if month == f.failMonth {
		return nil, errInjected
	}
	return nil, ctx.Err()
}

func TestMetricsAggregator_FirstErrorWins(t *testing.T) {
	_, err := NewMetricsAggregator(failingFetcher{failMonth: "2024-05"}).Aggregate(context.Background(), 2024)
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)
	assert.Contains(t, err.Error(), "2024-05")
}
