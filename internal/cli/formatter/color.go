package formatter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/timegrid/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

var (
	mu     sync.RWMutex
	active = theme.Default.Dark
)

// Predefined lipgloss styles. Apply rebuilds them for a new palette.
var (
	StyleText    lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleDim     lipgloss.Style
	StylePrimary lipgloss.Style
	StyleAccent  lipgloss.Style
	StyleGreen   lipgloss.Style
	StyleYellow  lipgloss.Style
	StyleRed     lipgloss.Style
	StyleHeader  lipgloss.Style
	StyleBold    lipgloss.Style
	StyleActive  lipgloss.Style
)

func init() {
	Apply(active)
}

// Apply switches every style to the given colours.
func Apply(c theme.Colors) {
	mu.Lock()
	defer mu.Unlock()
	active = c
	StyleText = lipgloss.NewStyle().Foreground(c.Text)
	StyleMuted = lipgloss.NewStyle().Foreground(c.TextMuted)
	StyleDim = lipgloss.NewStyle().Foreground(c.TextDim)
	StylePrimary = lipgloss.NewStyle().Foreground(c.Primary)
	StyleAccent = lipgloss.NewStyle().Foreground(c.Accent)
	StyleGreen = lipgloss.NewStyle().Foreground(c.Success)
	StyleYellow = lipgloss.NewStyle().Foreground(c.Warning)
	StyleRed = lipgloss.NewStyle().Foreground(c.Danger)
	StyleHeader = lipgloss.NewStyle().Foreground(c.Primary).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(c.Text).Bold(true)
	StyleActive = lipgloss.NewStyle().Foreground(c.Primary).Background(c.Surface).Bold(true)
}

// Active returns the colours currently applied.
func Active() theme.Colors {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// ChartStyle renders in the colour of a 1-based chart slot.
func ChartStyle(slot int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Active().ChartColor(slot))
}

// Header renders a section header with an underline.
func Header(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(text), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Swatch renders a small block in a chart slot colour.
func Swatch(slot int) string {
	return ChartStyle(slot).Render("■")
}
