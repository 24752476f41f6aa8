package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march2024 = domain.Month{Year: 2024, Month: 3}

func setupWeekGrid(t *testing.T) (*WeekGrid, *countingGateway, *domain.Project) {
	t.Helper()
	gw, database := newTestGateway(t)
	p := testutil.SeedProject(t, database, testutil.WithCode("ACME"))
	testutil.SeedAllotment(t, database, p.ID, "2024-03", 40)
	counting := newCountingGateway(gw)
	grid := NewWeekGrid(counting, march2024)
	require.NoError(t, grid.Load(context.Background()))
	return grid, counting, p
}

func TestWeekGrid_DefaultsToCurrentMonth(t *testing.T) {
	grid := NewWeekGrid(nil, domain.Month{})
	assert.Equal(t, domain.CurrentMonth(), grid.Month())
}

func TestWeekGrid_EditShowsPendingBeforeCommit(t *testing.T) {
	grid, counting, p := setupWeekGrid(t)
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}

	assert.Equal(t, "0", grid.Display(cell))
	require.True(t, grid.Edit(cell, "7.5"))
	assert.Equal(t, "7.5", grid.Display(cell))
	assert.Zero(t, counting.count("set_day_hours"))
}

func TestWeekGrid_CommitRefetchesAndClearsPending(t *testing.T) {
	grid, counting, p := setupWeekGrid(t)
	ctx := context.Background()
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}

	grid.Edit(cell, "7.5")
	require.NoError(t, grid.Commit(ctx, cell))

	_, pending := grid.Pending(cell)
	assert.False(t, pending)
	assert.Equal(t, "7.5", grid.Display(cell))
	assert.Equal(t, 1, counting.count("set_day_hours"))
	assert.Equal(t, 2, counting.count("get_weeks"))

	row, ok := grid.Weeks()[1].Row(p.ID)
	require.True(t, ok)
	assert.Equal(t, 7.5, row.Total)
	assert.Equal(t, 32.5, row.Remaining)
}

func TestWeekGrid_CommitEmptyInputSendsZero(t *testing.T) {
	grid, counting, p := setupWeekGrid(t)
	ctx := context.Background()
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}

	grid.Edit(cell, "8")
	require.NoError(t, grid.Commit(ctx, cell))
	grid.Edit(cell, "")
	require.NoError(t, grid.Commit(ctx, cell))

	assert.Equal(t, []float64{8, 0}, counting.setHours)
	assert.Equal(t, "0", grid.Display(cell))
}

func TestWeekGrid_CommitGarbageSendsZero(t *testing.T) {
	grid, counting, p := setupWeekGrid(t)
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}

	grid.Edit(cell, "abc")
	require.NoError(t, grid.Commit(context.Background(), cell))
	assert.Equal(t, []float64{0}, counting.setHours)
}

func TestWeekGrid_CommitWithoutPendingMakesNoCall(t *testing.T) {
	grid, counting, p := setupWeekGrid(t)
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}

	require.NoError(t, grid.Commit(context.Background(), cell))
	assert.Zero(t, counting.count("set_day_hours"))
}

func TestWeekGrid_DiscardMakesNoCall(t *testing.T) {
	grid, counting, p := setupWeekGrid(t)
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}

	grid.Edit(cell, "4")
	grid.Discard(cell)

	assert.Equal(t, "0", grid.Display(cell))
	assert.Zero(t, counting.count("set_day_hours"))
	assert.Equal(t, 1, counting.count("get_weeks"))
}

func TestWeekGrid_CommitFailureKeepsPending(t *testing.T) {
	grid, counting, p := setupWeekGrid(t)
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}
	counting.failSet = errInjected

	grid.Edit(cell, "3")
	err := grid.Commit(context.Background(), cell)
	require.ErrorIs(t, err, errInjected)

	raw, ok := grid.Pending(cell)
	assert.True(t, ok)
	assert.Equal(t, "3", raw)
	assert.Equal(t, "3", grid.Display(cell))
}

func TestWeekGrid_OutOfMonthCellsAreNotEditable(t *testing.T) {
	grid, _, p := setupWeekGrid(t)
	// Week 1 of March 2024 starts on Sunday 2024-02-25.
	lead := domain.CellKey{ProjectID: p.ID, Date: "2024-02-27"}

	assert.False(t, grid.Edit(lead, "5"))
	assert.Equal(t, "—", grid.Display(lead))
	_, ok := grid.BeginCommit(lead)
	assert.False(t, ok)
}

func TestWeekGrid_ChangingMonthClearsPending(t *testing.T) {
	grid, _, p := setupWeekGrid(t)
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-05"}
	grid.Edit(cell, "2")

	grid.NextMonth()
	assert.Equal(t, domain.Month{Year: 2024, Month: 4}, grid.Month())
	grid.PrevMonth()

	_, ok := grid.Pending(cell)
	assert.False(t, ok)
}

func TestWeekGrid_StaleApplyIgnored(t *testing.T) {
	grid, _, _ := setupWeekGrid(t)
	before := grid.Weeks()

	grid.Apply(domain.Month{Year: 2023, Month: 1}, nil)
	assert.Equal(t, before, grid.Weeks())
}

func TestWeekGrid_SplitCommitMatchesCommit(t *testing.T) {
	grid, _, p := setupWeekGrid(t)
	ctx := context.Background()
	cell := domain.CellKey{ProjectID: p.ID, Date: "2024-03-31"}

	grid.Edit(cell, "1.25")
	req, ok := grid.BeginCommit(cell)
	require.True(t, ok)
	assert.Equal(t, 1.25, req.Hours)

	weeks, err := grid.Send(ctx, req)
	require.NoError(t, err)
	grid.FinishCommit(req, weeks, nil)

	assert.Equal(t, "1.25", grid.Display(cell))
}
