package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// timegridHuhTheme returns a huh theme built from the active palette.
func timegridHuhTheme() *huh.Theme {
	c := formatter.Active()
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(c.Primary).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(c.Primary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(c.Success)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(c.Text)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(c.Background).Background(c.Primary).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(c.TextDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(c.Accent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(c.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(c.Text)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(c.TextDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(c.TextMuted)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(c.Danger)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(c.Danger)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(c.TextDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(c.TextDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(c.TextDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(c.TextDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(c.TextDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(c.TextMuted)

	return t
}

func requiredField(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}

// validateOptionalHours accepts empty or a non-negative number.
func validateOptionalHours(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a number of hours")
	}
	return nil
}

// wizardAddProject asks for a code and initial allotted hours.
func wizardAddProject(code, hours *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project code").
				Placeholder("PRJ-1001").
				Value(code).
				Validate(requiredField("Project code")),
			huh.NewInput().
				Title("Allotted hours").
				Placeholder("0").
				Value(hours).
				Validate(validateOptionalHours),
		),
	).WithTheme(timegridHuhTheme()).WithShowHelp(false)
}

// wizardRenameProject asks for a new code, prefilled with the current one.
func wizardRenameProject(code *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New code").
				Value(code).
				Validate(requiredField("Code")),
		),
	).WithTheme(timegridHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(timegridHuhTheme()).WithShowHelp(false)
}
