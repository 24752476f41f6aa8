package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/alexanderramin/timegrid/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// noticeTTL is how long a toast stays before the next key press hides it.
const noticeTTL = 3 * time.Second

// appModel is the root bubbletea Model for the TUI: a sidebar, a view
// stack whose bottom entry is the current route, and a command bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	quitting  bool

	// Transient output from the command bar, displayed in content area.
	lastOutput string

	outputVP     viewport.Model
	outputActive bool

	noticeAt time.Time
}

func newAppModel(app *App) appModel {
	app.applyTheme()
	state := newSharedState(app)

	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := appModel{
		state:    state,
		cmdBar:   newCommandBar(state),
		outputVP: vp,
	}
	m.viewStack = []View{routeView(state, app.Session.Resolve(service.RouteWeeks))}
	return m
}

func (m appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// route is the route of the root view.
func (m *appModel) route() service.Route {
	if len(m.viewStack) == 0 {
		return service.RouteWeeks
	}
	return routeOf(m.viewStack[0].ID())
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.cmdBar.SetWidth(msg.Width)
		if m.outputActive {
			m.outputVP.Width = m.state.ContentWidth()
			m.outputVP.Height = m.state.ContentHeight()
		}
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}

	case navigateMsg:
		r := m.state.App.Session.Resolve(msg.route)
		m.cmdBar.Blur()
		m.clearOutput()
		v := routeView(m.state, r)
		m.viewStack = []View{v}
		return m, v.Init()

	case pushViewMsg:
		m.cmdBar.Blur()
		m.clearOutput()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg, themeChangedMsg:
		if _, ok := msg.(themeChangedMsg); ok {
			m.state.App.applyTheme()
		}
		return m, m.broadcast(msg)

	case cmdOutputMsg:
		m.lastOutput = msg.output
		m.outputActive = true
		m.outputVP.SetContent(msg.output)
		m.outputVP.Width = m.state.ContentWidth()
		m.outputVP.Height = m.state.ContentHeight()
		m.outputVP.GotoTop()
		return m, nil

	case noticeMsg:
		m.state.Notice = msg.notice
		m.noticeAt = m.state.App.now()
		return m, nil

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.clearOutput()
		return m, tea.Batch(msg.nextCmd, refreshViews())

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Forward other messages to command bar (e.g., cursor blink)
	if m.cmdBar.Focused() {
		if cmd := m.cmdBar.UpdateNonKey(msg); cmd != nil {
			return m, cmd
		}
	}

	// Data messages go to every view; each ignores what it did not ask for.
	return m, m.broadcast(msg)
}

// broadcast sends msg to every view on the stack.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	m.expireNotice()

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.clearOutput()
		}
		cmd := m.cmdBar.Update(msg)
		return m, cmd
	}

	// When output is displayed, intercept scroll keys for the viewport.
	// Non-scroll keys dismiss the output, then fall through to normal handling.
	if m.outputActive {
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}

	if msg.Type == tea.KeyEsc && len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// handleGlobalKey runs the shell-wide shortcuts: command bar, quit, sidebar
// navigation and the sidebar footer controls.
func (m *appModel) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	signedIn := m.state.App.Session.Authenticated()

	switch {
	case key.Matches(msg, globalKeys.Command):
		m.cmdBar.Focus()
		return nil, true
	case key.Matches(msg, globalKeys.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, globalKeys.NextPage) && signedIn:
		return navigate(stepRoute(m.route(), 1)), true
	case key.Matches(msg, globalKeys.PrevPage) && signedIn:
		return navigate(stepRoute(m.route(), -1)), true
	case key.Matches(msg, globalKeys.Mode):
		next := nextMode(m.state.App.Prefs.Mode())
		m.state.App.Prefs.SetMode(next)
		return tea.Batch(themeChanged(), infoNotice("Mode "+string(next))), true
	case key.Matches(msg, globalKeys.ScaleUp):
		m.state.App.Prefs.AdjustScale(scaleStep)
		return themeChanged(), true
	case key.Matches(msg, globalKeys.ScaleDown):
		m.state.App.Prefs.AdjustScale(-scaleStep)
		return themeChanged(), true
	case key.Matches(msg, globalKeys.ScaleReset):
		m.state.App.Prefs.ResetScale()
		return themeChanged(), true
	case key.Matches(msg, globalKeys.SignOut) && signedIn:
		return signOut(m.state), true
	}
	return nil, false
}

func signOut(state *SharedState) tea.Cmd {
	state.App.Session.Logout()
	state.Allotments.Clear()
	return tea.Batch(navigate(service.RouteSignIn), infoNotice("Signed out"))
}

// expireNotice hides a toast once it has been visible for noticeTTL.
func (m *appModel) expireNotice() {
	if m.state.Notice.Message == "" {
		return
	}
	if m.state.App.now().Sub(m.noticeAt) >= noticeTTL {
		m.state.Notice = service.Notice{}
	}
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	var content string
	switch {
	case m.outputActive && m.state.Height > 0:
		content = m.outputVP.View()
	case m.lastOutput != "":
		content = m.lastOutput
	default:
		if v := m.activeView(); v != nil {
			content = v.View()
		}
	}
	h := m.state.ContentHeight()
	content = lipgloss.NewStyle().MaxHeight(h).Render(content)
	if m.state.Width > 0 {
		content = lipgloss.NewStyle().Height(h).Render(content)
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", content))

	sections = append(sections, m.renderNotice())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.cmdBar.View())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePrimary.Bold(true).Render("timegrid")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}
	if email := m.state.App.Session.Email(); email != "" {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(email) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderNotice() string {
	n := m.state.Notice
	switch {
	case n.Message == "":
		return ""
	case n.IsError():
		return formatter.StyleRed.Render("✗ " + n.Message)
	case n.Kind == service.NoticeSuccess:
		return formatter.StyleGreen.Render("✓ " + n.Message)
	default:
		return formatter.StyleAccent.Render("• " + n.Message)
	}
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height {
		hints = append(hints, scrollIndicator(m.outputVP))
		hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"))
		hints = append(hints, formatter.Dim("esc: dismiss"))
	} else if v := m.activeView(); v != nil && !m.outputActive {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	if !m.cmdBar.Focused() && !m.outputActive {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim(": command"))
	}

	bar := strings.Join(hints, "  ")
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// outputViewportKeyMap returns a restricted keymap for the output viewport.
// Only arrow/page keys scroll; letter keys stay free for global shortcuts.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

func nextMode(m theme.Mode) theme.Mode {
	for i, mode := range theme.Modes {
		if mode == m {
			return theme.Modes[(i+1)%len(theme.Modes)]
		}
	}
	return theme.ModeSystem
}
