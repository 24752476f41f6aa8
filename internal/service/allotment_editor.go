package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoProjectSelected   = errors.New("no project selected")
	ErrAllotmentsNotLoaded = errors.New("allotments not loaded yet")
)

// SaveRequest is a snapshot of the drafts to write for one project.
type SaveRequest struct {
	ProjectID  int64
	FiscalYear int
	Hours      map[string]float64
}

// AllotmentEditor edits the twelve monthly allotments of one project for
// one fiscal year (July..June). Drafts hold raw input until SaveAll.
// It is not safe for concurrent use.
type AllotmentEditor struct {
	gateway    AllotmentGateway
	projectID  int64
	selected   bool
	fiscalYear int
	drafts     map[string]string
	// loaded is set once drafts were reconciled from the store.
	loaded bool
}

func NewAllotmentEditor(gateway AllotmentGateway, fiscalYear int) *AllotmentEditor {
	return &AllotmentEditor{gateway: gateway, fiscalYear: fiscalYear, drafts: map[string]string{}}
}

// Selected returns the selected project id.
func (e *AllotmentEditor) Selected() (int64, bool) {
	return e.projectID, e.selected
}

func (e *AllotmentEditor) FiscalYear() int { return e.fiscalYear }

// Months returns the fiscal months in display order.
func (e *AllotmentEditor) Months() []string {
	return domain.FiscalMonths(e.fiscalYear)
}

// Choose selects a project without loading it and resets the drafts.
func (e *AllotmentEditor) Choose(projectID int64) {
	e.projectID = projectID
	e.selected = true
	e.drafts = map[string]string{}
	e.loaded = false
}

// SetFiscalYear switches the fiscal year and resets the drafts. Call Load
// afterwards.
func (e *AllotmentEditor) SetFiscalYear(fy int) {
	e.fiscalYear = fy
	e.drafts = map[string]string{}
	e.loaded = false
}

// Select chooses a project and loads its allotments for fy.
func (e *AllotmentEditor) Select(ctx context.Context, projectID int64, fy int) error {
	e.Choose(projectID)
	e.SetFiscalYear(fy)
	return e.Load(ctx)
}

// Fetch reads a project's allotments without touching editor state.
func (e *AllotmentEditor) Fetch(ctx context.Context, projectID int64) ([]domain.MonthlyAllotment, error) {
	return e.gateway.ListProjectAllotments(ctx, projectID)
}

// Apply reconciles fetched rows into drafts. Rows for a project that is no
// longer selected are ignored.
func (e *AllotmentEditor) Apply(projectID int64, rows []domain.MonthlyAllotment) {
	if !e.selected || projectID != e.projectID {
		return
	}
	reconciled := domain.ReconcileDrafts(e.fiscalYear, rows)
	e.drafts = make(map[string]string, len(reconciled))
	for m, h := range reconciled {
		e.drafts[m] = domain.FormatHours(h)
	}
	e.loaded = true
}

// Loaded reports whether the drafts reflect the stored allotments.
func (e *AllotmentEditor) Loaded() bool { return e.loaded }

// Load fetches and reconciles the selected project.
func (e *AllotmentEditor) Load(ctx context.Context) error {
	if !e.selected {
		return ErrNoProjectSelected
	}
	id := e.projectID
	rows, err := e.Fetch(ctx, id)
	if err != nil {
		return err
	}
	e.Apply(id, rows)
	return nil
}

// Draft returns the raw draft for a fiscal month.
func (e *AllotmentEditor) Draft(month string) string {
	return e.drafts[month]
}

// SetDraft buffers raw input for a month of the current fiscal year.
func (e *AllotmentEditor) SetDraft(month, raw string) bool {
	for _, m := range e.Months() {
		if m == month {
			e.drafts[month] = raw
			return true
		}
	}
	return false
}

// DraftTotal sums the parsed drafts.
func (e *AllotmentEditor) DraftTotal() float64 {
	var total float64
	for _, m := range e.Months() {
		total += domain.ParseHours(e.drafts[m])
	}
	return total
}

// BeginSave snapshots all twelve drafts. Unparsable drafts save as 0.
// It fails until the drafts were loaded from the store.
func (e *AllotmentEditor) BeginSave() (SaveRequest, error) {
	if !e.selected {
		return SaveRequest{}, ErrNoProjectSelected
	}
	if !e.loaded {
		return SaveRequest{}, ErrAllotmentsNotLoaded
	}
	req := SaveRequest{ProjectID: e.projectID, FiscalYear: e.fiscalYear, Hours: make(map[string]float64, 12)}
	for _, m := range e.Months() {
		req.Hours[m] = domain.ParseHours(e.drafts[m])
	}
	return req, nil
}

// Save writes every month of req in parallel, then refetches the stored
// rows. It does not modify the editor.
func (e *AllotmentEditor) Save(ctx context.Context, req SaveRequest) ([]domain.MonthlyAllotment, error) {
	g, gctx := errgroup.WithContext(ctx)
	for month, hours := range req.Hours {
		g.Go(func() error {
			if err := e.gateway.SetProjectMonthAllotment(gctx, req.ProjectID, month, hours); err != nil {
				return fmt.Errorf("saving %s: %w", month, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return e.gateway.ListProjectAllotments(ctx, req.ProjectID)
}

// FinishSave reconciles the refetched rows when req still matches the
// current selection and fiscal year.
func (e *AllotmentEditor) FinishSave(req SaveRequest, rows []domain.MonthlyAllotment) {
	if req.FiscalYear != e.fiscalYear {
		return
	}
	e.Apply(req.ProjectID, rows)
}

// SaveAll writes all twelve months and re-reconciles from the store.
func (e *AllotmentEditor) SaveAll(ctx context.Context) error {
	req, err := e.BeginSave()
	if err != nil {
		return err
	}
	rows, err := e.Save(ctx, req)
	if err != nil {
		return err
	}
	e.FinishSave(req, rows)
	return nil
}

// Clear drops the selection and drafts.
func (e *AllotmentEditor) Clear() {
	e.projectID = 0
	e.selected = false
	e.drafts = map[string]string{}
	e.loaded = false
}

// ClearIf clears the selection when projectID is the selected project.
func (e *AllotmentEditor) ClearIf(projectID int64) {
	if e.selected && e.projectID == projectID {
		e.Clear()
	}
}
