package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/domain"
)

// CommitRequest is a single cell write captured from the pending buffer.
type CommitRequest struct {
	Cell  domain.CellKey
	Month domain.Month
	Hours float64
}

// WeekGrid holds one month of the hours grid plus the cells being edited.
//
// Writes are never patched into the local copy: every commit refetches the
// whole month so totals and remaining always come from the store.
// WeekGrid is not safe for concurrent use; the TUI drives it from Update.
type WeekGrid struct {
	gateway WeekGateway
	month   domain.Month
	weeks   []domain.WeekSlice
	pending domain.PendingEdits
}

// NewWeekGrid returns a grid for month. A zero month means the current one.
func NewWeekGrid(gateway WeekGateway, month domain.Month) *WeekGrid {
	if month.IsZero() {
		month = domain.CurrentMonth()
	}
	return &WeekGrid{gateway: gateway, month: month, pending: domain.PendingEdits{}}
}

func (g *WeekGrid) Month() domain.Month       { return g.month }
func (g *WeekGrid) Weeks() []domain.WeekSlice { return g.weeks }

// SetMonth switches months and drops pending edits. Call Load afterwards.
func (g *WeekGrid) SetMonth(m domain.Month) {
	if m == g.month {
		return
	}
	g.month = m
	g.weeks = nil
	g.pending = domain.PendingEdits{}
}

func (g *WeekGrid) NextMonth() { g.SetMonth(g.month.Add(1)) }
func (g *WeekGrid) PrevMonth() { g.SetMonth(g.month.Add(-1)) }

// Fetch loads a month's weeks without touching grid state.
func (g *WeekGrid) Fetch(ctx context.Context, m domain.Month) ([]domain.WeekSlice, error) {
	return g.gateway.GetWeeks(ctx, m.String())
}

// Apply installs fetched weeks if they belong to the current month.
func (g *WeekGrid) Apply(m domain.Month, weeks []domain.WeekSlice) {
	if m == g.month {
		g.weeks = weeks
	}
}

// Load fetches and installs the current month.
func (g *WeekGrid) Load(ctx context.Context) error {
	m := g.month
	weeks, err := g.Fetch(ctx, m)
	if err != nil {
		return err
	}
	g.Apply(m, weeks)
	return nil
}

// Editable reports whether the cell's date falls inside the current month.
func (g *WeekGrid) Editable(cell domain.CellKey) bool {
	d, err := domain.ParseDate(cell.Date)
	return err == nil && g.month.Contains(d)
}

// Edit buffers raw input for a cell. Out-of-month cells are ignored.
func (g *WeekGrid) Edit(cell domain.CellKey, raw string) bool {
	if !g.Editable(cell) {
		return false
	}
	g.pending.Set(cell, raw)
	return true
}

// Pending returns the buffered input for a cell.
func (g *WeekGrid) Pending(cell domain.CellKey) (string, bool) {
	return g.pending.Get(cell)
}

// Committed returns the stored hours for a cell.
func (g *WeekGrid) Committed(cell domain.CellKey) (float64, bool) {
	for _, w := range g.weeks {
		row, ok := w.Row(cell.ProjectID)
		if !ok {
			continue
		}
		if h, ok := row.Days[cell.Date]; ok {
			return h, true
		}
	}
	return 0, false
}

// Display is what a cell shows: pending input first, then the stored value.
// Days outside the month show a dash.
func (g *WeekGrid) Display(cell domain.CellKey) string {
	if !g.Editable(cell) {
		return "—"
	}
	if raw, ok := g.pending.Get(cell); ok {
		return raw
	}
	if h, ok := g.Committed(cell); ok {
		return domain.FormatHours(h)
	}
	return ""
}

// Discard drops a cell's pending input. No backend call is made.
func (g *WeekGrid) Discard(cell domain.CellKey) {
	g.pending.Clear(cell)
}

// BeginCommit turns a cell's pending input into a request. It returns false
// when there is nothing to commit.
func (g *WeekGrid) BeginCommit(cell domain.CellKey) (CommitRequest, bool) {
	raw, ok := g.pending.Get(cell)
	if !ok || !g.Editable(cell) {
		return CommitRequest{}, false
	}
	return CommitRequest{Cell: cell, Month: g.month, Hours: domain.ParseHours(raw)}, true
}

// Send writes the cell and refetches the request's month. It does not
// modify the grid, so it can run off the UI goroutine.
func (g *WeekGrid) Send(ctx context.Context, req CommitRequest) ([]domain.WeekSlice, error) {
	if err := g.gateway.SetDayHours(ctx, req.Cell.ProjectID, req.Cell.Date, req.Hours); err != nil {
		return nil, fmt.Errorf("saving %s: %w", req.Cell.Date, err)
	}
	weeks, err := g.gateway.GetWeeks(ctx, req.Month.String())
	if err != nil {
		return nil, fmt.Errorf("reloading %s: %w", req.Month, err)
	}
	return weeks, nil
}

// FinishCommit applies the refetched weeks and clears the cell's pending
// input. On failure the pending input is kept so the user can retry.
func (g *WeekGrid) FinishCommit(req CommitRequest, weeks []domain.WeekSlice, err error) {
	if err != nil {
		return
	}
	g.Apply(req.Month, weeks)
	if req.Month == g.month {
		g.pending.Clear(req.Cell)
	}
}

// Commit runs BeginCommit, Send and FinishCommit in one call.
func (g *WeekGrid) Commit(ctx context.Context, cell domain.CellKey) error {
	req, ok := g.BeginCommit(cell)
	if !ok {
		return nil
	}
	weeks, err := g.Send(ctx, req)
	g.FinishCommit(req, weeks, err)
	return err
}
