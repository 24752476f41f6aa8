package cli

import (
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/alexanderramin/timegrid/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 20

// navItem is one entry of the sidebar.
type navItem struct {
	Label string
	Route service.Route
}

var navItems = []navItem{
	{Label: "Weeks", Route: service.RouteWeeks},
	{Label: "Projects", Route: service.RouteProjects},
	{Label: "Metrics", Route: service.RouteMetrics},
	{Label: "Settings", Route: service.RouteSettings},
}

type globalKeyMap struct {
	Command    key.Binding
	Quit       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Mode       key.Binding
	ScaleUp    key.Binding
	ScaleDown  key.Binding
	ScaleReset key.Binding
	SignOut    key.Binding
}

var globalKeys = globalKeyMap{
	Command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	NextPage:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	PrevPage:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous page")),
	Mode:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "mode")),
	ScaleUp:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "larger")),
	ScaleDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller")),
	ScaleReset: key.NewBinding(key.WithKeys("="), key.WithHelp("=", "reset scale")),
	SignOut:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "sign out")),
}

// stepRoute moves through the sidebar entries, wrapping at both ends.
// Routes outside the sidebar start from Weeks.
func stepRoute(from service.Route, step int) service.Route {
	idx := 0
	for i, item := range navItems {
		if item.Route == from {
			idx = i
			break
		}
	}
	n := len(navItems)
	return navItems[((idx+step)%n+n)%n].Route
}

func (m *appModel) renderSidebar() string {
	var lines []string
	current := m.route()
	signedIn := m.state.App.Session.Authenticated()

	lines = append(lines, "")
	for _, item := range navItems {
		label := " " + item.Label
		switch {
		case !signedIn:
			lines = append(lines, formatter.Dim(label))
		case item.Route == current:
			lines = append(lines, formatter.StyleActive.Render("▸"+item.Label+strings.Repeat(" ", max(sidebarWidth-3-len(item.Label), 0))))
		default:
			lines = append(lines, formatter.StyleText.Render(label))
		}
	}

	footer := m.sidebarFooter(signedIn)
	gap := m.state.ContentHeight() - len(lines) - len(footer)
	for i := 0; i < gap; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)

	return lipgloss.NewStyle().
		Width(sidebarWidth-1).
		Height(m.state.ContentHeight()).
		MaxHeight(m.state.ContentHeight()).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(formatter.Active().Border).
		Render(strings.Join(lines, "\n"))
}

// sidebarFooter holds the mode toggle, scale control and sign out.
func (m *appModel) sidebarFooter(signedIn bool) []string {
	prefs := m.state.App.Prefs
	footer := []string{
		formatter.Dim("t ") + formatter.StyleText.Render(modeGlyph(prefs.Mode())+" "+string(prefs.Mode())),
		formatter.Dim("- ") + formatter.StyleText.Render(formatScale(prefs.Scale())) + formatter.Dim(" + ="),
	}
	if signedIn {
		footer = append(footer, formatter.Dim("^x sign out"))
	} else {
		footer = append(footer, formatter.Dim("signed out"))
	}
	return footer
}

func modeGlyph(m theme.Mode) string {
	switch m {
	case theme.ModeLight:
		return "☀"
	case theme.ModeDark:
		return "☾"
	}
	return "◐"
}
