package prefs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/timegrid/internal/theme"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "prefs.toml")
}

func TestOpen_MissingFileGivesDefaults(t *testing.T) {
	s := Open(tempPath(t))

	assert.Equal(t, DefaultScale, s.Scale())
	assert.Equal(t, theme.DefaultPaletteID, s.Palette())
	assert.Equal(t, theme.ModeSystem, s.Mode())
	assert.Empty(t, s.AuthEmail())
}

func TestOpen_GarbageFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o600))

	s := Open(path)
	assert.Equal(t, DefaultScale, s.Scale())
}

func TestOpen_UnknownValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	doc := "[ui]\nscale = 9.0\nthemePalette = \"neon\"\nmode = \"sepia\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s := Open(path)
	assert.Equal(t, MaxScale, s.Scale())
	assert.Equal(t, theme.DefaultPaletteID, s.Palette())
	assert.Equal(t, theme.ModeSystem, s.Mode())
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := tempPath(t)
	s := Open(path)
	s.SetScale(1.3)
	require.True(t, s.SetPalette("kodama"))
	require.True(t, s.SetMode(theme.ModeDark))
	s.SetAuthEmail("ada@example.com")

	reopened := Open(path)
	assert.Equal(t, 1.3, reopened.Scale())
	assert.Equal(t, "kodama", reopened.Palette())
	assert.Equal(t, theme.ModeDark, reopened.Mode())
	assert.Equal(t, "ada@example.com", reopened.AuthEmail())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_SetPaletteRejectsUnknown(t *testing.T) {
	s := Open("")
	assert.False(t, s.SetPalette("neon"))
	assert.Equal(t, theme.DefaultPaletteID, s.Palette())
}

func TestStore_ScaleClampAndRound(t *testing.T) {
	s := Open("")

	assert.Equal(t, MinScale, s.SetScale(0.1))
	assert.Equal(t, MaxScale, s.SetScale(5))

	s.ResetScale()
	assert.Equal(t, 1.1, s.AdjustScale(0.1))
	assert.Equal(t, 1.2, s.AdjustScale(0.1))
	assert.Equal(t, 1.1, s.AdjustScale(-0.1))

	for range 20 {
		s.AdjustScale(0.1)
	}
	assert.Equal(t, MaxScale, s.Scale())
	for range 20 {
		s.AdjustScale(-0.1)
	}
	assert.Equal(t, MinScale, s.Scale())
}

func TestStore_LogoutClearsEmail(t *testing.T) {
	path := tempPath(t)
	s := Open(path)
	s.SetAuthEmail("ada@example.com")
	s.SetAuthEmail("")

	assert.Empty(t, Open(path).AuthEmail())
}

func TestStore_UnwritablePathKeepsMemoryValue(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s := Open(filepath.Join(blocker, "prefs.toml"))
	s.SetScale(1.4)
	assert.Equal(t, 1.4, s.Scale())
}

func TestStore_ConcurrentAdjust(t *testing.T) {
	s := Open(tempPath(t))
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AdjustScale(0.1)
		}()
	}
	wg.Wait()
	assert.Equal(t, MaxScale, s.Scale())
}

func TestDefaultPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "timegrid", "prefs.toml"), DefaultPath())
}
