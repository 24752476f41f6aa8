package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type metricsLoadedMsg struct {
	year    int
	metrics domain.YearMetrics
	err     error
}

// metricsView charts a calendar year of logged hours per project.
type metricsView struct {
	state   *SharedState
	loading bool
	loaded  bool
	metrics domain.YearMetrics
}

func newMetricsView(state *SharedState) *metricsView {
	return &metricsView{state: state, loading: true}
}

func (v *metricsView) ID() ViewID    { return ViewMetrics }
func (v *metricsView) Title() string { return fmt.Sprintf("Metrics %d", v.state.Year) }

func (v *metricsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "year")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "this year")),
	}
}

func (v *metricsView) Init() tea.Cmd { return v.load() }

func (v *metricsView) load() tea.Cmd {
	agg := v.state.App.Metrics
	year := v.state.Year
	v.loading = true
	return func() tea.Msg {
		m, err := agg.Aggregate(context.Background(), year)
		return metricsLoadedMsg{year: year, metrics: m, err: err}
	}
}

func (v *metricsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case metricsLoadedMsg:
		if msg.year != v.state.Year {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			return v, errorNotice(msg.err)
		}
		v.metrics = msg.metrics
		v.loaded = true
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "[", "left", "h":
			v.state.Year--
			return v, v.load()
		case "]", "right", "l":
			v.state.Year++
			return v, v.load()
		case "c":
			v.state.Year = v.state.App.now().Year()
			return v, v.load()
		}
	}
	return v, nil
}

func (v *metricsView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Hours %d", v.state.Year)) + "\n")

	if !v.loaded || v.metrics.Year != v.state.Year {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("Aggregating %d...", v.state.Year)))
		return b.String()
	}

	width := min(v.state.ContentWidth()-2, v.state.Scaled(96))
	height := min(v.state.Scaled(12), max(v.state.ContentHeight()-len(v.metrics.Codes)-8, 4))
	b.WriteString(formatter.StackedBarChart(v.metrics, width, height))
	if len(v.metrics.Codes) > 0 {
		b.WriteString("\n\n" + metricsTable(v.metrics))
	}
	if v.loading {
		b.WriteString("\n" + formatter.Dim("  refreshing..."))
	}
	return strings.TrimRight(b.String(), "\n")
}
