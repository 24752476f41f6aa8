package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type weeksLoadedMsg struct {
	month domain.Month
	weeks []domain.WeekSlice
	err   error
}

type cellCommittedMsg struct {
	req   service.CommitRequest
	weeks []domain.WeekSlice
	err   error
}

type weeksKeyMap struct {
	Up, Down, Left, Right key.Binding
	Edit                  key.Binding
	PrevMonth, NextMonth  key.Binding
	Current               key.Binding
	Picker                key.Binding
}

var weeksKeys = weeksKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	Left:      key.NewBinding(key.WithKeys("left", "h")),
	Right:     key.NewBinding(key.WithKeys("right", "l")),
	Edit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	PrevMonth: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[ ]", "month")),
	NextMonth: key.NewBinding(key.WithKeys("]", "pgdown")),
	Current:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "current")),
	Picker:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "pick month")),
}

// weeksView is the editable week grid of one month.
type weeksView struct {
	state   *SharedState
	loading bool

	week, row, col int

	editing bool
	input   textinput.Model

	picker monthPicker
}

func newWeeksView(state *SharedState) *weeksView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 8
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &weeksView{state: state, loading: true, input: ti, col: -1}
}

func (v *weeksView) grid() *service.WeekGrid { return v.state.Grid }

func (v *weeksView) Init() tea.Cmd {
	return v.load()
}

func (v *weeksView) load() tea.Cmd {
	grid := v.grid()
	m := grid.Month()
	v.loading = true
	return func() tea.Msg {
		weeks, err := grid.Fetch(context.Background(), m)
		return weeksLoadedMsg{month: m, weeks: weeks, err: err}
	}
}

// changeMonth drops the cursor and pending input and loads the new month.
func (v *weeksView) changeMonth(m domain.Month) tea.Cmd {
	v.stopEditing()
	v.grid().SetMonth(m)
	v.week, v.row, v.col = 0, 0, -1
	return v.load()
}

func (v *weeksView) CapturesInput() bool { return v.editing || v.picker.open }

func (v *weeksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weeksLoadedMsg:
		if msg.month != v.grid().Month() {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			return v, errorNotice(msg.err)
		}
		v.grid().Apply(msg.month, msg.weeks)
		v.clampCursor()
		return v, nil

	case cellCommittedMsg:
		v.grid().FinishCommit(msg.req, msg.weeks, msg.err)
		v.clampCursor()
		return v, errorNotice(msg.err)

	case refreshViewMsg:
		if v.editing {
			return v, nil
		}
		return v, v.load()

	case tea.KeyMsg:
		if v.picker.open {
			return v, v.updatePicker(msg)
		}
		if v.editing {
			return v, v.updateEditing(msg)
		}
		return v, v.updateBrowsing(msg)
	}
	return v, nil
}

func (v *weeksView) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	grid := v.grid()
	switch {
	case key.Matches(msg, weeksKeys.PrevMonth):
		return v.changeMonth(grid.Month().Add(-1))
	case key.Matches(msg, weeksKeys.NextMonth):
		return v.changeMonth(grid.Month().Add(1))
	case key.Matches(msg, weeksKeys.Current):
		return v.changeMonth(domain.MonthOf(v.state.App.now()))
	case key.Matches(msg, weeksKeys.Picker):
		v.picker = openMonthPicker(grid.Month())
		return nil
	case key.Matches(msg, weeksKeys.Up):
		v.moveRow(-1)
	case key.Matches(msg, weeksKeys.Down):
		v.moveRow(1)
	case key.Matches(msg, weeksKeys.Left):
		v.moveCol(-1)
	case key.Matches(msg, weeksKeys.Right):
		v.moveCol(1)
	case key.Matches(msg, weeksKeys.Edit):
		if cell, ok := v.focusedCell(); ok && grid.Editable(cell) {
			v.startEditing(grid.Display(cell))
		}
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && startsHours(msg.Runes[0]):
		if cell, ok := v.focusedCell(); ok && grid.Editable(cell) {
			v.startEditing(string(msg.Runes))
			grid.Edit(cell, v.input.Value())
		}
	}
	return nil
}

// startsHours reports whether a key press begins typing hours into a cell.
// - is left to the global scale keys.
func startsHours(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

func (v *weeksView) startEditing(value string) {
	v.editing = true
	v.input.SetValue(value)
	v.input.CursorEnd()
	v.input.Focus()
}

func (v *weeksView) stopEditing() {
	v.editing = false
	v.input.Blur()
	v.input.Reset()
}

func (v *weeksView) updateEditing(msg tea.KeyMsg) tea.Cmd {
	cell, ok := v.focusedCell()
	if !ok {
		v.stopEditing()
		return nil
	}
	grid := v.grid()

	switch msg.Type {
	case tea.KeyEsc:
		grid.Discard(cell)
		v.stopEditing()
		return nil
	case tea.KeyEnter, tea.KeyTab:
		v.stopEditing()
		req, ok := grid.BeginCommit(cell)
		if msg.Type == tea.KeyTab {
			v.moveCol(1)
		}
		if !ok {
			return nil
		}
		return func() tea.Msg {
			weeks, err := grid.Send(context.Background(), req)
			return cellCommittedMsg{req: req, weeks: weeks, err: err}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	grid.Edit(cell, v.input.Value())
	return cmd
}

// ── cursor ───────────────────────────────────────────────────────────────────

func (v *weeksView) focusedCell() (domain.CellKey, bool) {
	weeks := v.grid().Weeks()
	if v.week >= len(weeks) || v.col < 0 {
		return domain.CellKey{}, false
	}
	w := weeks[v.week]
	if v.row >= len(w.Rows) {
		return domain.CellKey{}, false
	}
	return domain.CellKey{
		ProjectID: w.Rows[v.row].ProjectID,
		Date:      domain.FormatDate(w.Dates()[v.col]),
	}, true
}

// clampCursor keeps the cursor inside the loaded grid. A fresh grid
// starts on the first in-month day of the first week.
func (v *weeksView) clampCursor() {
	weeks := v.grid().Weeks()
	if len(weeks) == 0 {
		v.week, v.row, v.col = 0, 0, -1
		return
	}
	v.week = min(max(v.week, 0), len(weeks)-1)
	v.row = min(max(v.row, 0), max(len(weeks[v.week].Rows)-1, 0))
	if v.col < 0 {
		v.col = 0
		w := weeks[v.week]
		for i, d := range w.Dates() {
			if w.Editable(d) {
				v.col = i
				break
			}
		}
	}
	v.col = min(v.col, 6)
}

func (v *weeksView) moveRow(step int) {
	weeks := v.grid().Weeks()
	if len(weeks) == 0 {
		return
	}
	row := v.row + step
	week := v.week
	for row < 0 && week > 0 {
		week--
		row += max(len(weeks[week].Rows), 1)
	}
	for week < len(weeks)-1 && row >= len(weeks[week].Rows) {
		row -= max(len(weeks[week].Rows), 1)
		week++
	}
	v.week = week
	v.row = min(max(row, 0), max(len(weeks[week].Rows)-1, 0))
}

func (v *weeksView) moveCol(step int) {
	v.col = min(max(v.col+step, 0), 6)
}

// ── month picker ─────────────────────────────────────────────────────────────

func (v *weeksView) updatePicker(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		v.picker.open = false
	case msg.Type == tea.KeyEnter:
		v.picker.open = false
		return v.changeMonth(v.picker.selected())
	case key.Matches(msg, weeksKeys.Current):
		v.picker.open = false
		return v.changeMonth(domain.MonthOf(v.state.App.now()))
	case key.Matches(msg, weeksKeys.PrevMonth):
		v.picker.year--
	case key.Matches(msg, weeksKeys.NextMonth):
		v.picker.year++
	case key.Matches(msg, weeksKeys.Left):
		v.picker.move(-1)
	case key.Matches(msg, weeksKeys.Right):
		v.picker.move(1)
	case key.Matches(msg, weeksKeys.Up):
		v.picker.move(-pickerColumns)
	case key.Matches(msg, weeksKeys.Down):
		v.picker.move(pickerColumns)
	}
	return nil
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *weeksView) View() string {
	grid := v.grid()
	var b strings.Builder
	b.WriteString(formatter.Header(grid.Month().First().Format("January 2006")))
	b.WriteString("\n")

	if v.picker.open {
		b.WriteString("\n" + v.picker.View())
		return b.String()
	}
	if v.loading && len(grid.Weeks()) == 0 {
		b.WriteString(formatter.Dim("  Loading..."))
		return b.String()
	}

	blocks := make([]string, 0, len(grid.Weeks()))
	for i, w := range grid.Weeks() {
		blocks = append(blocks, v.renderWeek(i, w))
	}

	// Drop leading weeks until the focused one fits.
	budget := v.state.ContentHeight() - 2
	first := 0
	for first < v.week && linesOf(blocks[first:v.week+1]) > budget {
		first++
	}
	b.WriteString(strings.Join(blocks[first:], "\n"))
	return b.String()
}

func linesOf(blocks []string) int {
	n := 0
	for _, b := range blocks {
		n += strings.Count(b, "\n") + 2
	}
	return n
}

func (v *weeksView) renderWeek(idx int, w domain.WeekSlice) string {
	grid := v.grid()
	codeW := v.state.Scaled(12)
	dayW := v.state.Scaled(7)
	numW := v.state.Scaled(9)

	cell := func(s string, width int, right bool) string {
		st := lipgloss.NewStyle().Width(width).MaxWidth(width)
		if right {
			st = st.Align(lipgloss.Right)
		}
		return st.Render(s)
	}

	var b strings.Builder
	b.WriteString(formatter.StyleAccent.Render(formatter.WeekTitle(w)) + "\n")

	header := []string{cell(formatter.StyleHeader.Render("Code"), codeW, false)}
	for i := 0; i < 7; i++ {
		header = append(header, cell(formatter.StyleHeader.Render(formatter.DayHeader(w, i)), dayW, true))
	}
	header = append(header,
		cell(formatter.StyleHeader.Render("Total"), numW, true),
		cell(formatter.StyleHeader.Render("Allotted"), numW, true),
		cell(formatter.StyleHeader.Render("Remaining"), numW+1, true),
	)
	b.WriteString(strings.Join(header, "") + "\n")

	if len(w.Rows) == 0 {
		b.WriteString(formatter.Dim("  No projects yet. Add one on the Projects page."))
		return b.String()
	}

	dates := w.Dates()
	for r, row := range w.Rows {
		line := []string{cell(row.ProjectCode, codeW, false)}
		for c, d := range dates {
			key := domain.CellKey{ProjectID: row.ProjectID, Date: domain.FormatDate(d)}
			focused := idx == v.week && r == v.row && c == v.col
			line = append(line, v.renderCell(grid, key, focused, dayW))
		}
		line = append(line,
			cell(formatter.Fixed(row.Total), numW, true),
			cell(formatter.Fixed(row.Allotted), numW, true),
			cell(formatter.Remaining(row.Remaining), numW+1, true),
		)
		b.WriteString(strings.Join(line, ""))
		if r < len(w.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *weeksView) renderCell(grid *service.WeekGrid, k domain.CellKey, focused bool, width int) string {
	st := lipgloss.NewStyle().Width(width).Align(lipgloss.Right)
	if !grid.Editable(k) {
		return st.Render(formatter.Dim(formatter.OutOfMonth))
	}
	if focused && v.editing {
		v.input.Width = width - 2
		return st.Render(formatter.StyleActive.Render(v.input.View()))
	}
	text := grid.Display(k)
	if text == "" {
		text = "·"
	}
	if _, pending := grid.Pending(k); pending {
		text = formatter.StyleYellow.Render(text)
	}
	if focused {
		return st.Render(formatter.StyleActive.Render(" " + text + " "))
	}
	return st.Render(text)
}

func (v *weeksView) ID() ViewID    { return ViewWeeks }
func (v *weeksView) Title() string { return v.grid().Month().String() }

func (v *weeksView) ShortHelp() []key.Binding {
	if v.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		}
	}
	if v.picker.open {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
			key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "year")),
			weeksKeys.Current,
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up"), key.WithHelp("←↑↓→", "move")),
		weeksKeys.Edit,
		weeksKeys.PrevMonth,
		weeksKeys.Current,
		weeksKeys.Picker,
	}
}

// monthPicker jumps to any month: twelve months of a year in a 4x3 grid.
type monthPicker struct {
	open  bool
	year  int
	month int // 0-11
}

const pickerColumns = 4

func openMonthPicker(m domain.Month) monthPicker {
	return monthPicker{open: true, year: m.Year, month: int(m.Month) - 1}
}

func (p *monthPicker) move(step int) {
	p.month = min(max(p.month+step, 0), 11)
}

func (p monthPicker) selected() domain.Month {
	return domain.Month{Year: p.year, Month: time.Month(p.month + 1)}
}

func (p monthPicker) View() string {
	var b strings.Builder
	b.WriteString(formatter.Bold(fmt.Sprintf("  ‹ %d ›", p.year)) + "\n\n")
	for i, name := range formatter.MonthAbbr {
		label := " " + name + " "
		if i == p.month {
			label = formatter.StyleActive.Render(label)
		}
		b.WriteString("  " + label)
		if (i+1)%pickerColumns == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
