package cli

import (
	"context"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type authResultMsg struct {
	route  service.Route
	notice service.Notice
}

var switchAuthKey = key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "switch sign in / sign up"))

// authView is the sign-in or sign-up page.
type authView struct {
	state *SharedState
	route service.Route
	creds credentials
	form  *huh.Form
	busy  bool
}

func newAuthView(state *SharedState, route service.Route) *authView {
	v := &authView{state: state, route: route}
	v.form = credentialsForm(&v.creds, v.signUp())
	return v
}

func (v *authView) signUp() bool { return v.route == service.RouteSignUp }

func (v *authView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *authView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		if msg.route != v.route {
			return v, nil
		}
		v.busy = false
		if !msg.notice.IsError() {
			next := service.RouteWeeks
			if v.signUp() {
				next = service.RouteSignIn
			}
			return v, tea.Batch(noticeCmd(msg.notice), navigate(next))
		}
		v.creds.password, v.creds.confirm = "", ""
		v.form = credentialsForm(&v.creds, v.signUp())
		return v, tea.Batch(noticeCmd(msg.notice), v.form.Init())

	case tea.KeyMsg:
		if key.Matches(msg, switchAuthKey) {
			if v.signUp() {
				return v, navigate(service.RouteSignIn)
			}
			return v, navigate(service.RouteSignUp)
		}
	}

	if v.busy {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.busy = true
		return v, v.submit()
	}
	return v, cmd
}

// submit sends the credentials to the session off the UI goroutine.
func (v *authView) submit() tea.Cmd {
	session := v.state.App.Session
	c := v.creds
	route := v.route
	return func() tea.Msg {
		ctx := context.Background()
		var n service.Notice
		if route == service.RouteSignUp {
			n = session.Register(ctx, c.email, c.password, c.confirm)
		} else {
			n = session.Login(ctx, c.email, c.password)
		}
		return authResultMsg{route: route, notice: n}
	}
}

func (v *authView) View() string {
	title := "Sign in"
	if v.signUp() {
		title = "Create account"
	}
	body := formatter.Header(title) + "\n\n"
	if v.busy {
		return body + formatter.Dim("  Contacting server...")
	}
	return body + v.form.View()
}

func (v *authView) ID() ViewID {
	if v.signUp() {
		return ViewSignUp
	}
	return ViewSignIn
}

func (v *authView) Title() string {
	if v.signUp() {
		return "Sign up"
	}
	return "Sign in"
}

func (v *authView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		switchAuthKey,
	}
}
