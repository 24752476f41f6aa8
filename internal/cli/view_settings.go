package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timegrid/internal/cli/formatter"
	"github.com/alexanderramin/timegrid/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingKind int

const (
	settingMode settingKind = iota
	settingPalette
	settingScale
)

type settingItem struct {
	kind    settingKind
	mode    theme.Mode
	palette theme.Palette
}

// settingsView picks the colour mode, the palette and the text scale.
// Choices are stored immediately.
type settingsView struct {
	state  *SharedState
	items  []settingItem
	cursor int
}

func newSettingsView(state *SharedState) *settingsView {
	var items []settingItem
	for _, m := range theme.Modes {
		items = append(items, settingItem{kind: settingMode, mode: m})
	}
	for _, p := range theme.All {
		items = append(items, settingItem{kind: settingPalette, palette: p})
	}
	items = append(items, settingItem{kind: settingScale})
	return &settingsView{state: state, items: items}
}

func (v *settingsView) ID() ViewID    { return ViewSettings }
func (v *settingsView) Title() string { return "Settings" }

func (v *settingsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "scale")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset scale")),
	}
}

func (v *settingsView) Init() tea.Cmd { return nil }

func (v *settingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	prefs := v.state.App.Prefs
	item := v.items[v.cursor]

	switch keyMsg.String() {
	case "up", "k":
		v.cursor = max(v.cursor-1, 0)
	case "down", "j":
		v.cursor = min(v.cursor+1, len(v.items)-1)
	case "enter", " ":
		switch item.kind {
		case settingMode:
			prefs.SetMode(item.mode)
			return v, tea.Batch(themeChanged(), infoNotice("Mode "+string(item.mode)))
		case settingPalette:
			prefs.SetPalette(item.palette.ID)
			return v, tea.Batch(themeChanged(), infoNotice("Palette "+item.palette.Name))
		}
	case "left", "h":
		if item.kind == settingScale {
			prefs.AdjustScale(-scaleStep)
			return v, themeChanged()
		}
	case "right", "l":
		if item.kind == settingScale {
			prefs.AdjustScale(scaleStep)
			return v, themeChanged()
		}
	case "r":
		prefs.ResetScale()
		return v, themeChanged()
	}
	return v, nil
}

func (v *settingsView) View() string {
	prefs := v.state.App.Prefs
	var b strings.Builder
	b.WriteString(formatter.Header("Settings") + "\n")

	section := ""
	for i, item := range v.items {
		title := [...]string{"Appearance", "Palette", "Text size"}[item.kind]
		if title != section {
			if section != "" {
				b.WriteString("\n")
			}
			b.WriteString("  " + formatter.StyleBold.Render(title) + "\n")
			section = title
		}

		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString("  " + cursor)

		switch item.kind {
		case settingMode:
			b.WriteString(radio(prefs.Mode() == item.mode) + " " + modeGlyph(item.mode) + " " + string(item.mode))
		case settingPalette:
			b.WriteString(radio(prefs.Palette() == item.palette.ID) + " " + paletteStrip(item.palette, prefs.Mode()) +
				" " + padRight(item.palette.Name, 14) + formatter.Dim(item.palette.Description))
		case settingScale:
			b.WriteString(fmt.Sprintf("%s  %s  %s", formatter.Dim("‹"), formatScale(prefs.Scale()), formatter.Dim("›")))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func radio(on bool) string {
	if on {
		return formatter.StyleAccent.Render("◉")
	}
	return formatter.Dim("○")
}

// paletteStrip previews the first chart colours of a palette.
func paletteStrip(p theme.Palette, m theme.Mode) string {
	c := p.Variant(theme.IsDark(m))
	var b strings.Builder
	for slot := 1; slot <= 6; slot++ {
		b.WriteString(lipgloss.NewStyle().Foreground(c.ChartColor(slot)).Render("■"))
	}
	return b.String()
}
