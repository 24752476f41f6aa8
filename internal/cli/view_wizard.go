package cli

import (
	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formView shows a project wizard on the view stack. It pops itself with
// wizardCompleteMsg once the form is submitted or esc is pressed; onSubmit
// runs only on submit and its Cmd rides along in the message.
type formView struct {
	state    *SharedState
	form     *huh.Form
	heading  string
	onSubmit func() tea.Cmd
	closed   bool
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.closed {
		return v, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return v, v.close(infoNotice("Cancelled"))
	}

	next, cmd := v.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		v.form = f
	}
	switch v.form.State {
	case huh.StateCompleted:
		var submitted tea.Cmd
		if v.onSubmit != nil {
			submitted = v.onSubmit()
		}
		return v, v.close(tea.Batch(cmd, submitted))
	case huh.StateAborted:
		return v, v.close(infoNotice("Cancelled"))
	}
	return v, cmd
}

func (v *formView) close(next tea.Cmd) tea.Cmd {
	v.closed = true
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
}

func (v *formView) View() string {
	return formatter.Header(v.heading) + "\n\n" + v.form.View()
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.heading }
func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// startWizardCmd pushes form as a new view titled heading.
func startWizardCmd(state *SharedState, heading string, form *huh.Form, onSubmit func() tea.Cmd) tea.Cmd {
	return pushView(&formView{state: state, form: form, heading: heading, onSubmit: onSubmit})
}
