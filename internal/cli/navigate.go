package cli

import (
	"github.com/alexanderramin/timegrid/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// navigateMsg switches to the root view of a route. The route passes
// through the session guard first.
type navigateMsg struct {
	route service.Route
}

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// cmdOutputMsg carries text output from a command execution
// to be displayed transiently in the content area.
type cmdOutputMsg struct {
	output string
}

// noticeMsg shows a toast above the status bar.
type noticeMsg struct {
	notice service.Notice
}

// themeChangedMsg is sent after the palette, mode or scale changed.
type themeChangedMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// quitMsg signals the TUI should exit.
type quitMsg struct{}

func navigate(r service.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

func outputCmd(s string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func noticeCmd(n service.Notice) tea.Cmd {
	if n.Message == "" {
		return nil
	}
	return func() tea.Msg { return noticeMsg{notice: n} }
}

func infoNotice(msg string) tea.Cmd {
	return noticeCmd(service.Notice{Kind: service.NoticeInfo, Message: msg})
}

func successNotice(msg string) tea.Cmd {
	return noticeCmd(service.Notice{Kind: service.NoticeSuccess, Message: msg})
}

// errorNotice turns a failure into a toast; the TUI never exits on errors.
func errorNotice(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return noticeCmd(service.Notice{Kind: service.NoticeError, Message: err.Error()})
}

func themeChanged() tea.Cmd {
	return func() tea.Msg { return themeChangedMsg{} }
}
