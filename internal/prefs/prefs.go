// Package prefs persists small UI preferences in a TOML file.
package prefs

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/alexanderramin/timegrid/internal/theme"
)

const (
	MinScale     = 0.8
	MaxScale     = 1.6
	DefaultScale = 1.0
)

type document struct {
	UI   uiSection   `toml:"ui"`
	Auth authSection `toml:"auth"`
}

type uiSection struct {
	Scale        float64 `toml:"scale"`
	ThemePalette string  `toml:"themePalette"`
	Mode         string  `toml:"mode"`
}

type authSection struct {
	Email string `toml:"email"`
}

func defaults() document {
	return document{UI: uiSection{
		Scale:        DefaultScale,
		ThemePalette: theme.DefaultPaletteID,
		Mode:         string(theme.ModeSystem),
	}}
}

// Store holds preferences in memory and writes them through to path.
// Read and write failures are swallowed: preferences are best effort.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// DefaultPath returns $XDG_CONFIG_HOME/timegrid/prefs.toml, falling back
// to ~/.config/timegrid/prefs.toml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "timegrid", "prefs.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "timegrid", "prefs.toml")
}

// Open loads preferences from path. A missing or unparsable file yields
// defaults. An empty path gives a memory-only store.
func Open(path string) *Store {
	s := &Store{path: path, doc: defaults()}
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	doc := defaults()
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return s
	}
	s.doc = sanitize(doc)
	return s
}

func sanitize(doc document) document {
	if math.IsNaN(doc.UI.Scale) || math.IsInf(doc.UI.Scale, 0) || doc.UI.Scale == 0 {
		doc.UI.Scale = DefaultScale
	}
	doc.UI.Scale = clamp(doc.UI.Scale)
	if !theme.Known(doc.UI.ThemePalette) {
		doc.UI.ThemePalette = theme.DefaultPaletteID
	}
	if _, ok := theme.ParseMode(doc.UI.Mode); !ok {
		doc.UI.Mode = string(theme.ModeSystem)
	}
	return doc
}

func clamp(v float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, v))
}

// Path returns the backing file, or "" for a memory-only store.
func (s *Store) Path() string { return s.path }

// save must be called with s.mu held.
func (s *Store) save() {
	if s.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.doc); err != nil {
		return
	}
	_ = os.WriteFile(s.path, buf.Bytes(), 0o600)
}

func (s *Store) update(fn func(*document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.doc)
	s.save()
}

func (s *Store) Scale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.UI.Scale
}

// SetScale stores v clamped to [MinScale, MaxScale].
func (s *Store) SetScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s.Scale()
	}
	v = clamp(v)
	s.update(func(d *document) { d.UI.Scale = v })
	return v
}

// AdjustScale moves the scale by delta, rounded to one decimal.
func (s *Store) AdjustScale(delta float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := clamp(math.Round((s.doc.UI.Scale+delta)*10) / 10)
	s.doc.UI.Scale = next
	s.save()
	return next
}

func (s *Store) ResetScale() float64 {
	return s.SetScale(DefaultScale)
}

func (s *Store) Palette() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.UI.ThemePalette
}

// SetPalette stores id when it names a known palette.
func (s *Store) SetPalette(id string) bool {
	if !theme.Known(id) {
		return false
	}
	s.update(func(d *document) { d.UI.ThemePalette = id })
	return true
}

func (s *Store) Mode() theme.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return theme.Mode(s.doc.UI.Mode)
}

func (s *Store) SetMode(m theme.Mode) bool {
	if _, ok := theme.ParseMode(string(m)); !ok {
		return false
	}
	s.update(func(d *document) { d.UI.Mode = string(m) })
	return true
}

// AuthEmail returns the last signed-in email.
func (s *Store) AuthEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Auth.Email
}

// SetAuthEmail persists the signed-in email. "" forgets it.
func (s *Store) SetAuthEmail(email string) {
	s.update(func(d *document) { d.Auth.Email = email })
}
