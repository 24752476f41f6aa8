package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// projectsLoadedMsg signals that project list data has been loaded.
type projectsLoadedMsg struct {
	projects []domain.Project
	err      error
}

// projectMutatedMsg reports the outcome of an add, rename or delete.
type projectMutatedMsg struct {
	message string
	deleted int64
	err     error
}

var (
	projectsAddKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	projectsRenameKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename"))
	projectsDeleteKey = key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete"))
	projectsOpenKey   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "allotments"))
	projectsFilterKey = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter"))
)

// projectsView lists projects and manages them through wizards.
type projectsView struct {
	state    *SharedState
	projects []domain.Project
	cursor   int
	loading  bool
	err      error

	filtering bool
	filter    string
}

func newProjectsView(state *SharedState) *projectsView {
	return &projectsView{state: state, loading: true}
}

func (v *projectsView) ID() ViewID    { return ViewProjects }
func (v *projectsView) Title() string { return "Projects" }

func (v *projectsView) ShortHelp() []key.Binding {
	return []key.Binding{projectsOpenKey, projectsAddKey, projectsRenameKey, projectsDeleteKey, projectsFilterKey}
}

func (v *projectsView) CapturesInput() bool { return v.filtering }

func (v *projectsView) Init() tea.Cmd {
	return v.loadProjects()
}

func (v *projectsView) loadProjects() tea.Cmd {
	gw := v.state.App.Gateway
	return func() tea.Msg {
		projects, err := gw.ListProjects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (v *projectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.projects = msg.projects
			v.cursor = min(v.cursor, max(len(v.visibleProjects())-1, 0))
		}
		return v, nil

	case projectMutatedMsg:
		if msg.err != nil {
			return v, errorNotice(msg.err)
		}
		if msg.deleted != 0 {
			v.state.Allotments.ClearIf(msg.deleted)
		}
		return v, tea.Batch(successNotice(msg.message), refreshViews())

	case refreshViewMsg:
		return v, v.loadProjects()

	case tea.KeyMsg:
		if v.filtering {
			return v, v.updateFilter(msg)
		}
		return v, v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectsView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	visible := v.visibleProjects()

	switch {
	case msg.String() == "up" || msg.String() == "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case msg.String() == "down" || msg.String() == "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case key.Matches(msg, projectsFilterKey):
		v.filtering = true
		v.filter = ""
	case key.Matches(msg, projectsAddKey):
		var code, hours string
		return startWizardCmd(v.state, "Add project", wizardAddProject(&code, &hours), func() tea.Cmd {
			return v.addProject(code, hours)
		})
	}

	if v.cursor >= len(visible) {
		return nil
	}
	p := visible[v.cursor]
	switch {
	case key.Matches(msg, projectsOpenKey):
		v.state.Allotments.Choose(p.ID)
		return pushView(newAllotmentsView(v.state, p))
	case key.Matches(msg, projectsRenameKey):
		code := p.Code
		return startWizardCmd(v.state, "Rename "+p.Code, wizardRenameProject(&code), func() tea.Cmd {
			return v.renameProject(p.ID, code)
		})
	case key.Matches(msg, projectsDeleteKey):
		var confirmed bool
		desc := "Logged hours and allotments of this project are deleted too."
		return startWizardCmd(v.state, "Delete "+p.Code, wizardConfirm("Delete "+p.Code+"?", desc, &confirmed), func() tea.Cmd {
			if !confirmed {
				return infoNotice("Kept " + p.Code)
			}
			return v.deleteProject(p.ID, p.Code)
		})
	}
	return nil
}

func (v *projectsView) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
	case tea.KeyEnter:
		v.filtering = false
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	case tea.KeyRunes:
		v.filter += string(msg.Runes)
		v.cursor = 0
	}
	return nil
}

func (v *projectsView) addProject(code, hours string) tea.Cmd {
	gw := v.state.App.Gateway
	code = strings.TrimSpace(code)
	return func() tea.Msg {
		allotted, err := parseOptionalHours(hours)
		if err == nil {
			err = gw.AddProject(context.Background(), code, allotted)
		}
		return projectMutatedMsg{message: "Created project " + code, err: err}
	}
}

func (v *projectsView) renameProject(id int64, code string) tea.Cmd {
	gw := v.state.App.Gateway
	code = strings.TrimSpace(code)
	return func() tea.Msg {
		err := gw.UpdateProject(context.Background(), id, code)
		return projectMutatedMsg{message: "Renamed to " + code, err: err}
	}
}

func (v *projectsView) deleteProject(id int64, code string) tea.Cmd {
	gw := v.state.App.Gateway
	return func() tea.Msg {
		err := gw.DeleteProject(context.Background(), id)
		return projectMutatedMsg{message: "Deleted " + code, deleted: id, err: err}
	}
}

func parseOptionalHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidHours, s)
	}
	return h, domain.ValidateHours(h)
}

func (v *projectsView) visibleProjects() []domain.Project {
	if v.filter == "" {
		return v.projects
	}
	lf := strings.ToLower(v.filter)
	var filtered []domain.Project
	for _, p := range v.projects {
		if strings.Contains(strings.ToLower(p.Code), lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *projectsView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Projects") + "\n")

	if v.loading {
		b.WriteString("  " + formatter.Dim("Loading projects..."))
		return b.String()
	}
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()))
		return b.String()
	}
	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter)
		if v.filtering {
			b.WriteString("█")
		}
		b.WriteString("\n\n")
	}

	visible := v.visibleProjects()
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No projects found. Press a to add one."))
		return b.String()
	}

	selected, hasSelected := v.state.Allotments.Selected()
	codeW := v.state.Scaled(16)
	for i, p := range visible {
		cursor := "  "
		codeStyle := formatter.StyleText
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			codeStyle = formatter.StyleBold
		}
		marker := " "
		if hasSelected && p.ID == selected {
			marker = formatter.StyleAccent.Render("●")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s  %s\n",
			cursor,
			marker,
			formatter.Dim(fmt.Sprintf("#%-4d", p.ID)),
			codeStyle.Render(padRight(p.Code, codeW)),
			formatter.Fixed(p.Allotted)+formatter.Dim(" h allotted"),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// padRight pads s with spaces to width w.
func padRight(s string, w int) string {
	if n := len([]rune(s)); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
