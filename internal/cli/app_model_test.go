package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/alexanderramin/timegrid/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripANSI(s string) string {
	return ansi.Strip(s)
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	capturing  bool
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return nil }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, nil
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return nil }
func (v *stubView) Title() string            { return v.title }
func (v *stubView) CapturesInput() bool      { return v.capturing }

func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	model, _ := m.Update(msg)
	out, ok := model.(appModel)
	require.True(t, ok)
	return out
}

func TestNewAppModel_StartRouteFollowsSession(t *testing.T) {
	signedOut, _ := testApp(t)
	assert.Equal(t, ViewSignIn, newAppModel(signedOut).activeView().ID())

	signedIn, _ := signedInApp(t)
	assert.Equal(t, ViewWeeks, newAppModel(signedIn).activeView().ID())
}

func TestAppModel_PushPopAndBreadcrumbs(t *testing.T) {
	app, _ := signedInApp(t)
	m := newAppModel(app)
	m.viewStack = []View{newStubView(ViewProjects, "Projects", "list")}

	m = update(t, m, pushViewMsg{view: newStubView(ViewAllotments, "PRJ-1", "months")})
	require.Len(t, m.viewStack, 2)
	assert.Contains(t, stripANSI(m.View()), "Projects › PRJ-1")
	assert.Equal(t, service.RouteProjects, m.route())

	m = update(t, m, popViewMsg{})
	require.Len(t, m.viewStack, 1)

	// The root view is never popped.
	m = update(t, m, popViewMsg{})
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_EscPopsNonRootView(t *testing.T) {
	app, _ := signedInApp(t)
	m := newAppModel(app)
	m.viewStack = []View{newStubView(ViewProjects, "Projects", ""), newStubView(ViewAllotments, "A", "")}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.viewStack, 1)
}

func TestAppModel_CapturingViewGetsGlobalKeys(t *testing.T) {
	app, _ := signedInApp(t)
	m := newAppModel(app)
	stub := newStubView(ViewWeeks, "Weeks", "")
	stub.capturing = true
	m.viewStack = []View{stub}

	m = update(t, m, runeKey('q'))
	m = update(t, m, runeKey(':'))
	assert.False(t, m.quitting)
	assert.False(t, m.cmdBar.Focused())
	assert.Len(t, stub.updateSeen, 2)
}

func TestAppModel_DataMessagesReachEveryView(t *testing.T) {
	app, _ := signedInApp(t)
	m := newAppModel(app)
	a := newStubView(ViewProjects, "Projects", "")
	b := newStubView(ViewAllotments, "A", "")
	m.viewStack = []View{a, b}

	type someDataMsg struct{}
	update(t, m, someDataMsg{})
	assert.Len(t, a.updateSeen, 1)
	assert.Len(t, b.updateSeen, 1)
}

func TestAppModel_NavigateReplacesStackThroughGuard(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	m.viewStack = append(m.viewStack, newStubView(ViewForm, "Form", ""))

	m = update(t, m, navigateMsg{route: service.RouteMetrics})
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewSignIn, m.activeView().ID())

	m = update(t, m, navigateMsg{route: service.RouteSignUp})
	assert.Equal(t, ViewSignUp, m.activeView().ID())
}

func TestAppModel_NoticeRendersByKind(t *testing.T) {
	app, _ := signedInApp(t)
	m := newAppModel(app)
	m.viewStack = []View{newStubView(ViewWeeks, "Weeks", "")}

	m = update(t, m, noticeMsg{notice: service.Notice{Kind: service.NoticeError, Message: "boom"}})
	assert.Contains(t, stripANSI(m.View()), "✗ boom")

	m = update(t, m, noticeMsg{notice: service.Notice{Kind: service.NoticeSuccess, Message: "saved"}})
	assert.Contains(t, stripANSI(m.View()), "✓ saved")
}

func TestAppModel_OutputViewportScroll(t *testing.T) {
	app, _ := signedInApp(t)
	m := newAppModel(app)
	m.viewStack = []View{newStubView(ViewWeeks, "Weeks", "grid")}
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 12})

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	m = update(t, m, cmdOutputMsg{output: strings.Join(lines, "\n")})
	require.True(t, m.outputActive)
	view := m.View()
	assert.Contains(t, view, "line 1")
	assert.Contains(t, view, "pgup/pgdn")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, m.outputActive)

	m = update(t, m, runeKey('x'))
	assert.False(t, m.outputActive)
	assert.Empty(t, m.lastOutput)
}

func TestAppModel_QuitMsg(t *testing.T) {
	app, _ := signedInApp(t)
	m := update(t, newAppModel(app), quitMsg{})
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewForm, "Form", "")))
	assert.True(t, viewCapturesInput(newStubView(ViewSignIn, "Sign in", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewWeeks, "Weeks", "")))
}

func TestStepRoute(t *testing.T) {
	assert.Equal(t, service.RouteProjects, stepRoute(service.RouteWeeks, 1))
	assert.Equal(t, service.RouteSettings, stepRoute(service.RouteWeeks, -1))
	assert.Equal(t, service.RouteWeeks, stepRoute(service.RouteSettings, 1))
	assert.Equal(t, service.RouteProjects, stepRoute(service.RouteSignIn, 1))
}

func TestNextMode(t *testing.T) {
	assert.Equal(t, theme.ModeDark, nextMode(theme.ModeLight))
	assert.Equal(t, theme.ModeSystem, nextMode(theme.ModeDark))
	assert.Equal(t, theme.ModeLight, nextMode(theme.ModeSystem))
}

func TestRouteOf(t *testing.T) {
	assert.Equal(t, service.RouteProjects, routeOf(ViewAllotments))
	assert.Equal(t, service.RouteWeeks, routeOf(ViewForm))
	assert.Equal(t, service.RouteSignUp, routeOf(ViewSignUp))
}

func TestIsOutputScrollKey(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd} {
		assert.True(t, isOutputScrollKey(tea.KeyMsg{Type: k}))
	}
	assert.False(t, isOutputScrollKey(runeKey('j')))
	assert.False(t, isOutputScrollKey(tea.KeyMsg{Type: tea.KeyEnter}))
}
