package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/alexanderramin/timegrid/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// shellCommand is one command bar entry.
type shellCommand struct {
	Name  string
	Args  string
	Short string
}

var shellCommands = []shellCommand{
	{Name: "month", Args: "YYYY-MM|current", Short: "show a month in the week grid"},
	{Name: "year", Args: "YYYY", Short: "show a year on the metrics page"},
	{Name: "fy", Args: "YYYY", Short: "edit allotments of a fiscal year (July to June)"},
	{Name: "go", Args: "ROUTE", Short: "open weeks, projects, metrics or settings"},
	{Name: "palette", Args: "ID", Short: "switch colour palette"},
	{Name: "mode", Args: "light|dark|system", Short: "switch light or dark colours"},
	{Name: "scale", Args: "VALUE|+|-|reset", Short: "change the text scale"},
	{Name: "logout", Short: "sign out"},
	{Name: "help", Short: "list commands"},
	{Name: "quit", Short: "exit timegrid"},
}

func commandNames() []string {
	names := make([]string, len(shellCommands))
	for i, c := range shellCommands {
		names[i] = c.Name
	}
	return names
}

func argumentSuggestions() map[string][]string {
	routes := make([]string, 0, len(navItems))
	for _, item := range navItems {
		routes = append(routes, string(item.Route))
	}
	modes := make([]string, len(theme.Modes))
	for i, m := range theme.Modes {
		modes[i] = string(m)
	}
	return map[string][]string{
		"go":      routes,
		"palette": paletteIDs(),
		"mode":    modes,
		"scale":   {"+", "-", "reset"},
		"month":   {"current"},
	}
}

// executeCommand dispatches a text command and returns a tea.Cmd.
// Commands may return notices, output, navigation messages or quitMsg.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return errorNotice(err)
	}
	if len(parts) == 0 {
		return nil
	}
	name := strings.ToLower(parts[0])
	args := parts[1:]
	state := c.state

	switch name {
	case "quit", "exit":
		return func() tea.Msg { return quitMsg{} }

	case "help":
		return outputCmd(shellHelp())

	case "go":
		if len(args) != 1 {
			return usageNotice("go")
		}
		r, ok := service.ParseRoute(args[0])
		if !ok {
			return errorNotice(fmt.Errorf("unknown page %q", args[0]))
		}
		return navigate(r)

	case "month":
		if len(args) != 1 {
			return usageNotice("month")
		}
		m := domain.MonthOf(state.App.now())
		if !strings.EqualFold(args[0], "current") {
			if m, err = domain.ParseMonth(args[0]); err != nil {
				return errorNotice(err)
			}
		}
		state.Grid.SetMonth(m)
		return navigate(service.RouteWeeks)

	case "year":
		y, err := parseYearArg(args)
		if err != nil {
			return errorNotice(err)
		}
		state.Year = y
		return navigate(service.RouteMetrics)

	case "fy":
		fy, err := parseYearArg(args)
		if err != nil {
			return errorNotice(err)
		}
		state.Allotments.SetFiscalYear(fy)
		return navigate(service.RouteProjects)

	case "palette":
		if len(args) != 1 {
			return usageNotice("palette")
		}
		if !state.App.Prefs.SetPalette(args[0]) {
			return errorNotice(fmt.Errorf("unknown palette %q", args[0]))
		}
		return tea.Batch(themeChanged(), successNotice("Palette "+theme.ByID(args[0]).Name))

	case "mode":
		if len(args) != 1 {
			return usageNotice("mode")
		}
		mode, ok := theme.ParseMode(args[0])
		if !ok {
			return errorNotice(fmt.Errorf("unknown mode %q", args[0]))
		}
		state.App.Prefs.SetMode(mode)
		return tea.Batch(themeChanged(), successNotice("Mode "+string(mode)))

	case "scale":
		if len(args) != 1 {
			return usageNotice("scale")
		}
		v, err := applyScale(state.App, args[0])
		if err != nil {
			return errorNotice(err)
		}
		return tea.Batch(themeChanged(), infoNotice("Scale "+formatScale(v)))

	case "logout":
		return signOut(state)
	}

	return errorNotice(fmt.Errorf("unknown command %q (type help)", name))
}

func usageNotice(name string) tea.Cmd {
	for _, c := range shellCommands {
		if c.Name == name {
			return errorNotice(fmt.Errorf("usage: %s %s", c.Name, c.Args))
		}
	}
	return nil
}

func parseYearArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("a four digit year is required")
	}
	y, err := strconv.Atoi(args[0])
	if err != nil || y < 1000 || y > 9999 {
		return 0, fmt.Errorf("invalid year %q", args[0])
	}
	return y, nil
}

func shellHelp() string {
	rows := make([][]string, 0, len(shellCommands))
	for _, c := range shellCommands {
		rows = append(rows, []string{c.Name + " " + c.Args, c.Short})
	}
	return formatter.Header("Commands") + "\n" + formatter.RenderTable([]string{"Command", "Does"}, rows)
}

// splitShellArgs splits a command line on whitespace, honouring single and
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		switch {
		case escaped:
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
		case inSingle:
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
		case inDouble:
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			tokenStarted = true
		case r == '\'':
			inSingle = true
			tokenStarted = true
		case r == '"':
			inDouble = true
			tokenStarted = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}
	return parts, nil
}
