package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/repository"
	"github.com/alexanderramin/timegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_GetWeeks_SeedsSamplesIntoEmptyStore(t *testing.T) {
	gw, _ := newTestGateway(t, WithSampleSeed(true))
	ctx := context.Background()

	weeks, err := gw.GetWeeks(ctx, "2024-03")
	require.NoError(t, err)
	require.NotEmpty(t, weeks)

	codes := make([]string, 0, len(weeks[0].Rows))
	for _, r := range weeks[0].Rows {
		codes = append(codes, r.ProjectCode)
	}
	assert.Equal(t, []string{"PRJ-1001", "PRJ-2002"}, codes)

	// Seeding only happens once.
	_, err = gw.GetWeeks(ctx, "2024-04")
	require.NoError(t, err)
	projects, err := gw.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestGateway_GetWeeks_NoSeedWhenDisabled(t *testing.T) {
	gw, _ := newTestGateway(t)

	weeks, err := gw.GetWeeks(context.Background(), "2024-03")
	require.NoError(t, err)
	require.NotEmpty(t, weeks)
	assert.Empty(t, weeks[0].Rows)
}

func TestGateway_GetWeeks_InvalidMonth(t *testing.T) {
	gw, _ := newTestGateway(t)

	_, err := gw.GetWeeks(context.Background(), "2024-13")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestGateway_GetWeeks_ZeroAllotmentProjectStillListed(t *testing.T) {
	gw, database := newTestGateway(t)
	ctx := context.Background()
	withBudget := testutil.SeedProject(t, database, testutil.WithCode("A-1"))
	testutil.SeedProject(t, database, testutil.WithCode("B-1"))
	testutil.SeedAllotment(t, database, withBudget.ID, "2024-03", 30)

	weeks, err := gw.GetWeeks(ctx, "2024-03")
	require.NoError(t, err)
	require.Len(t, weeks[0].Rows, 2)
	assert.Equal(t, 30.0, weeks[0].Rows[0].MonthAllotted)
	assert.Equal(t, 0.0, weeks[0].Rows[1].MonthAllotted)
}

func TestGateway_SetDayHours_UpsertsAndShowsInWeeks(t *testing.T) {
	gw, database := newTestGateway(t)
	ctx := context.Background()
	p := testutil.SeedProject(t, database)
	testutil.SeedAllotment(t, database, p.ID, "2024-03", 40)

	require.NoError(t, gw.SetDayHours(ctx, p.ID, "2024-03-04", 6))
	require.NoError(t, gw.SetDayHours(ctx, p.ID, "2024-03-04", 7.5))

	weeks, err := gw.GetWeeks(ctx, "2024-03")
	require.NoError(t, err)

	// 2024-03-01 is a Friday, so the 4th (Monday) is in week 2.
	row, ok := weeks[1].Row(p.ID)
	require.True(t, ok)
	assert.Equal(t, 7.5, row.Days["2024-03-04"])
	assert.Equal(t, 7.5, row.Total)
	assert.Equal(t, 32.5, row.Remaining)
}

func TestGateway_SetDayHours_RejectsBadDate(t *testing.T) {
	gw, database := newTestGateway(t)
	p := testutil.SeedProject(t, database)

	err := gw.SetDayHours(context.Background(), p.ID, "2024-03-40", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestGateway_AddProject(t *testing.T) {
	gw, _ := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.AddProject(ctx, "  NEW-1  ", 12))

	projects, err := gw.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "NEW-1", projects[0].Code)
	assert.Equal(t, 12.0, projects[0].Allotted)
}

func TestGateway_AddProject_EmptyCode(t *testing.T) {
	gw, _ := newTestGateway(t)

	err := gw.AddProject(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, domain.ErrEmptyCode)
}

func TestGateway_AddProject_DuplicateCode(t *testing.T) {
	gw, _ := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.AddProject(ctx, "DUP", 0))
	err := gw.AddProject(ctx, "DUP", 0)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestGateway_UpdateProject(t *testing.T) {
	gw, database := newTestGateway(t)
	ctx := context.Background()
	p := testutil.SeedProject(t, database)

	require.NoError(t, gw.UpdateProject(ctx, p.ID, "RENAMED"))

	projects, err := gw.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "RENAMED", projects[0].Code)
}

func TestGateway_UpdateProject_Missing(t *testing.T) {
	gw, _ := newTestGateway(t)

	err := gw.UpdateProject(context.Background(), 999, "X")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGateway_DeleteProject_CascadesEntriesAndAllotments(t *testing.T) {
	gw, database := newTestGateway(t)
	ctx := context.Background()
	p := testutil.SeedProject(t, database)
	testutil.SeedAllotment(t, database, p.ID, "2024-03", 40)
	testutil.SeedHours(t, database, p.ID, "2024-03-04", 8)

	require.NoError(t, gw.DeleteProject(ctx, p.ID))

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM time_entries`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM project_month_allotments`).Scan(&n))
	assert.Zero(t, n)
}

func TestGateway_Allotments(t *testing.T) {
	gw, database := newTestGateway(t)
	ctx := context.Background()
	p := testutil.SeedProject(t, database)

	require.NoError(t, gw.SetProjectMonthAllotment(ctx, p.ID, "2024-07", 10))
	require.NoError(t, gw.SetProjectMonthAllotment(ctx, p.ID, "2024-08", 20))
	require.NoError(t, gw.SetProjectMonthAllotment(ctx, p.ID, "2024-07", 15))

	rows, err := gw.ListProjectAllotments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-08", rows[0].Month)
	assert.Equal(t, 15.0, rows[1].Allotted)
}

func TestGateway_SetProjectMonthAllotment_InvalidMonth(t *testing.T) {
	gw, database := newTestGateway(t)
	p := testutil.SeedProject(t, database)

	err := gw.SetProjectMonthAllotment(context.Background(), p.ID, "July", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestGateway_RegisterAndLogin(t *testing.T) {
	gw, _ := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.RegisterUser(ctx, " Ada@Example.com ", "s3cret"))

	ok, err := gw.LoginUser(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gw.LoginUser(ctx, "ADA@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGateway_RegisterUser_DuplicateEmail(t *testing.T) {
	gw, _ := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.RegisterUser(ctx, "ada@example.com", "a"))
	err := gw.RegisterUser(ctx, "ADA@example.com", "b")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGateway_RegisterUser_EmptyPassword(t *testing.T) {
	gw, _ := newTestGateway(t)

	err := gw.RegisterUser(context.Background(), "ada@example.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestGateway_LoginUser_UnknownEmail(t *testing.T) {
	gw, _ := newTestGateway(t)

	ok, err := gw.LoginUser(context.Background(), "nobody@example.com", "x")
	require.NoError(t, err)
	assert.False(t, ok)
}
