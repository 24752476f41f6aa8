package cli

import (
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewSignIn ViewID = iota
	ViewSignUp
	ViewWeeks
	ViewProjects
	ViewAllotments
	ViewMetrics
	ViewSettings
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that sometimes own the keyboard,
// such as the grid while a cell is being edited.
type inputCapturer interface {
	CapturesInput() bool
}

// viewCapturesInput returns true if the active view should receive all key
// events, bypassing global keybindings like q, : and esc.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewForm, ViewSignIn, ViewSignUp:
		return true
	}
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}

// routeView builds the root view of a route.
func routeView(state *SharedState, r service.Route) View {
	switch r {
	case service.RouteSignIn:
		return newAuthView(state, service.RouteSignIn)
	case service.RouteSignUp:
		return newAuthView(state, service.RouteSignUp)
	case service.RouteProjects:
		return newProjectsView(state)
	case service.RouteMetrics:
		return newMetricsView(state)
	case service.RouteSettings:
		return newSettingsView(state)
	default:
		return newWeeksView(state)
	}
}

// routeOf maps a root view back to its route.
func routeOf(id ViewID) service.Route {
	switch id {
	case ViewSignIn:
		return service.RouteSignIn
	case ViewSignUp:
		return service.RouteSignUp
	case ViewProjects, ViewAllotments:
		return service.RouteProjects
	case ViewMetrics:
		return service.RouteMetrics
	case ViewSettings:
		return service.RouteSettings
	default:
		return service.RouteWeeks
	}
}
