// Package theme defines the colour palettes of the timegrid TUI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects the light or dark variant of a palette.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeLight, ModeDark, ModeSystem}

// ParseMode returns the mode named s.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeLight, ModeDark, ModeSystem:
		return m, true
	}
	return "", false
}

// ChartColors is the number of chart series colours per palette.
const ChartColors = 12

// Colors holds the colour roles of one palette variant.
type Colors struct {
	Background lipgloss.Color
	Surface    lipgloss.Color // sidebar, selected row
	Border     lipgloss.Color
	TextDim    lipgloss.Color // hints, out-of-month cells
	TextMuted  lipgloss.Color
	Text       lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color // overrun, errors
	Chart      [ChartColors]lipgloss.Color
}

// Palette is a named pair of light and dark variants.
type Palette struct {
	ID          string
	Name        string
	Description string
	Light       Colors
	Dark        Colors
}

// Variant returns the colours for a resolved light/dark mode.
func (p Palette) Variant(dark bool) Colors {
	if dark {
		return p.Dark
	}
	return p.Light
}

// ChartColor returns the colour for a 1-based chart slot.
func (c Colors) ChartColor(slot int) lipgloss.Color {
	if slot < 1 {
		slot = 1
	}
	return c.Chart[(slot-1)%ChartColors]
}

const DefaultPaletteID = "default"

// All available palettes in display order.
var All = []Palette{Default, Kodama, StarryNight, Bubblegum}

// Known reports whether id names a palette.
func Known(id string) bool {
	for _, p := range All {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ByID returns a palette by id, defaulting to Default.
func ByID(id string) Palette {
	for _, p := range All {
		if p.ID == id {
			return p
		}
	}
	return Default
}

// IsDark resolves a mode to dark or light. ModeSystem asks the terminal.
func IsDark(m Mode) bool {
	switch m {
	case ModeDark:
		return true
	case ModeLight:
		return false
	}
	return lipgloss.HasDarkBackground()
}

// Resolve returns the colours for a palette id and mode.
func Resolve(id string, m Mode) Colors {
	return ByID(id).Variant(IsDark(m))
}
