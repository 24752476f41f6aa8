package cli

import (
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Editors outlive the views that show them so that month, fiscal
	// year and pending input survive navigation.
	Grid       *service.WeekGrid
	Allotments *service.AllotmentEditor

	// Year shown on the metrics page.
	Year int

	// Terminal dimensions
	Width  int
	Height int

	// Transient notification shown above the status bar.
	Notice service.Notice
}

func newSharedState(app *App) *SharedState {
	now := app.now()
	return &SharedState{
		App:        app,
		Grid:       service.NewWeekGrid(app.Gateway, domain.MonthOf(now)),
		Allotments: service.NewAllotmentEditor(app.Gateway, domain.DefaultFiscalYear(now)),
		Year:       now.Year(),
	}
}

// Scale is the stored text scale.
func (s *SharedState) Scale() float64 {
	return s.App.Prefs.Scale()
}

// Scaled multiplies a base size by the text scale, never below base/2.
func (s *SharedState) Scaled(base int) int {
	n := int(float64(base)*s.Scale() + 0.5)
	return max(n, base/2)
}

// SidebarWidth is the width of the navigation column including its border.
func (s *SharedState) SidebarWidth() int {
	return sidebarWidth
}

// ContentWidth is the width left for the active view.
func (s *SharedState) ContentWidth() int {
	return max(s.Width-s.SidebarWidth()-1, 20)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator), notice (1 line),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-6, 1)
}
