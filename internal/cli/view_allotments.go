package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type allotmentsLoadedMsg struct {
	projectID  int64
	fiscalYear int
	rows       []domain.MonthlyAllotment
	err        error
}

type allotmentsSavedMsg struct {
	req  service.SaveRequest
	rows []domain.MonthlyAllotment
	err  error
}

var (
	allotSaveKey = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save all"))
	allotFYKey   = key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "fiscal year"))
	allotEditKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit"))
)

// allotmentsView edits the twelve fiscal-month allotments of one project.
type allotmentsView struct {
	state   *SharedState
	project domain.Project
	loading bool
	saving  bool
	dirty   bool
	cursor  int

	editing  bool
	original string
	input    textinput.Model
}

func newAllotmentsView(state *SharedState, p domain.Project) *allotmentsView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 8
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &allotmentsView{state: state, project: p, loading: true, input: ti}
}

func (v *allotmentsView) editor() *service.AllotmentEditor { return v.state.Allotments }

func (v *allotmentsView) ID() ViewID { return ViewAllotments }
func (v *allotmentsView) Title() string {
	return v.project.Code
}

func (v *allotmentsView) ShortHelp() []key.Binding {
	if v.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "revert")),
		}
	}
	return []key.Binding{allotEditKey, allotSaveKey, allotFYKey,
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))}
}

func (v *allotmentsView) CapturesInput() bool { return v.editing }

func (v *allotmentsView) Init() tea.Cmd { return v.load() }

func (v *allotmentsView) load() tea.Cmd {
	ed := v.editor()
	id, fy := v.project.ID, ed.FiscalYear()
	v.loading = true
	return func() tea.Msg {
		rows, err := ed.Fetch(context.Background(), id)
		return allotmentsLoadedMsg{projectID: id, fiscalYear: fy, rows: rows, err: err}
	}
}

func (v *allotmentsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ed := v.editor()
	switch msg := msg.(type) {
	case allotmentsLoadedMsg:
		if msg.projectID != v.project.ID || msg.fiscalYear != ed.FiscalYear() {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			return v, errorNotice(msg.err)
		}
		ed.Apply(msg.projectID, msg.rows)
		v.dirty = false
		return v, nil

	case allotmentsSavedMsg:
		if msg.req.ProjectID != v.project.ID {
			return v, nil
		}
		v.saving = false
		if msg.err != nil {
			return v, errorNotice(msg.err)
		}
		ed.FinishSave(msg.req, msg.rows)
		v.dirty = false
		return v, tea.Batch(successNotice(fmt.Sprintf("Saved %s allotments", v.project.Code)), refreshViews())

	case refreshViewMsg:
		if v.dirty || v.editing || v.saving {
			return v, nil
		}
		return v, v.load()

	case tea.KeyMsg:
		if v.editing {
			return v, v.updateEditing(msg)
		}
		return v, v.updateBrowsing(msg)
	}
	return v, nil
}

func (v *allotmentsView) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	ed := v.editor()
	months := ed.Months()
	switch s := msg.String(); {
	case s == "up" || s == "k":
		v.cursor = max(v.cursor-1, 0)
	case s == "down" || s == "j":
		v.cursor = min(v.cursor+1, len(months)-1)
	case s == "[":
		return v.changeFiscalYear(ed.FiscalYear() - 1)
	case s == "]":
		return v.changeFiscalYear(ed.FiscalYear() + 1)
	case key.Matches(msg, allotSaveKey):
		if v.loading || v.saving {
			return nil
		}
		return v.save()
	case key.Matches(msg, allotEditKey):
		v.startEditing(ed.Draft(months[v.cursor]))
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && startsHours(msg.Runes[0]):
		v.startEditing(string(msg.Runes))
		ed.SetDraft(months[v.cursor], v.input.Value())
		v.dirty = true
	}
	return nil
}

func (v *allotmentsView) changeFiscalYear(fy int) tea.Cmd {
	v.editor().SetFiscalYear(fy)
	v.dirty = false
	return v.load()
}

// startEditing opens the draft under the cursor; esc restores original.
func (v *allotmentsView) startEditing(value string) {
	v.original = v.editor().Draft(v.editor().Months()[v.cursor])
	v.editing = true
	v.input.SetValue(value)
	v.input.CursorEnd()
	v.input.Focus()
}

func (v *allotmentsView) updateEditing(msg tea.KeyMsg) tea.Cmd {
	ed := v.editor()
	month := ed.Months()[v.cursor]
	switch msg.Type {
	case tea.KeyEsc:
		ed.SetDraft(month, v.original)
		v.stopEditing()
		return nil
	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		v.stopEditing()
		if msg.Type != tea.KeyEnter {
			v.cursor = min(v.cursor+1, len(ed.Months())-1)
		}
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	ed.SetDraft(month, v.input.Value())
	v.dirty = true
	return cmd
}

func (v *allotmentsView) stopEditing() {
	v.editing = false
	v.input.Blur()
	v.input.Reset()
}

// save snapshots the drafts and writes them off the UI goroutine.
func (v *allotmentsView) save() tea.Cmd {
	ed := v.editor()
	req, err := ed.BeginSave()
	if err != nil {
		return errorNotice(err)
	}
	v.saving = true
	return func() tea.Msg {
		rows, err := ed.Save(context.Background(), req)
		return allotmentsSavedMsg{req: req, rows: rows, err: err}
	}
}

func fiscalLabel(fy int) string {
	return fmt.Sprintf("FY %d–%02d", fy, (fy+1)%100)
}

func (v *allotmentsView) View() string {
	ed := v.editor()
	var b strings.Builder
	b.WriteString(formatter.Header(v.project.Code+" · "+fiscalLabel(ed.FiscalYear())) + "\n")

	if v.loading {
		b.WriteString("  " + formatter.Dim("Loading allotments..."))
		return b.String()
	}

	labelW := v.state.Scaled(10)
	valueW := v.state.Scaled(8)
	for i, month := range ed.Months() {
		m, _ := domain.ParseMonth(month)
		label := padRight(m.First().Format("Jan 2006"), labelW)
		value := ed.Draft(month)
		switch {
		case i == v.cursor && v.editing:
			v.input.Width = valueW
			value = formatter.StyleActive.Render(v.input.View())
		case i == v.cursor:
			value = formatter.StyleActive.Render(fmt.Sprintf(" %*s ", valueW, value))
		default:
			value = fmt.Sprintf(" %*s ", valueW, value)
		}
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(cursor + label + value + "\n")
	}

	total := fmt.Sprintf("%s%s %*s", "  ", padRight("Total", labelW), valueW, formatter.Fixed(ed.DraftTotal()))
	b.WriteString(formatter.StyleBold.Render(total))
	switch {
	case v.saving:
		b.WriteString("  " + formatter.Dim("saving..."))
	case v.dirty:
		b.WriteString("  " + formatter.StyleYellow.Render("unsaved · s to save"))
	}
	return b.String()
}
