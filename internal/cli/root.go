package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/prefs"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/alexanderramin/timegrid/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all services used by CLI commands and the TUI.
type App struct {
	Gateway  service.Gateway
	Session  *service.AuthSession
	Metrics  *service.MetricsAggregator
	Importer service.ProjectImporter
	Prefs    *prefs.Store

	// HistoryPath is where the command bar keeps its history. Empty
	// disables persistence.
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// applyTheme pushes the stored palette and mode into the formatter styles.
func (a *App) applyTheme() {
	formatter.Apply(theme.Resolve(a.Prefs.Palette(), a.Prefs.Mode()))
}

// NewRootCmd creates the top-level "timegrid" command and registers all
// subcommands against the provided App. Without arguments on a terminal it
// starts the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timegrid",
		Short:         "Weekly timesheet with project allotments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.applyTheme()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.AddCommand(
		newWeeksCmd(app),
		newHoursCmd(app),
		newProjectCmd(app),
		newAllotCmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newMetricsCmd(app),
		newPrefsCmd(app),
	)

	return root
}

func runTUI(app *App, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
