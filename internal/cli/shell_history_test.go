package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHistory_MissingFileOrEmptyPath(t *testing.T) {
	assert.Nil(t, loadHistoryFromPath(filepath.Join(t.TempDir(), "nope", "history")))
	assert.Nil(t, loadHistoryFromPath(""))
}

func TestLoadHistory_ReadsNonBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("month 2024-06\n\n  go metrics \nscale +\n"), 0o600))

	assert.Equal(t, []string{"month 2024-06", "go metrics", "scale +"}, loadHistoryFromPath(path))
}

func TestLoadHistory_KeepsNewestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	var b strings.Builder
	for i := 0; i < maxHistoryLines+100; i++ {
		b.WriteString("year 2024\n")
	}
	b.WriteString("go settings\n")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	lines := loadHistoryFromPath(path)
	assert.Len(t, lines, maxHistoryLines)
	assert.Equal(t, "go settings", lines[len(lines)-1])
}

func TestAppendHistory_CreatesPrivateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	appendHistoryToPath(path, "month current")
	appendHistoryToPath(path, "go weeks")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "month current\ngo weeks\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAppendHistory_SkipsBlankLinesAndEmptyPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	appendHistoryToPath(path, "")
	appendHistoryToPath(path, "   ")
	appendHistoryToPath("", "go weeks")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCommandBar_PersistsHistory(t *testing.T) {
	app, _ := testApp(t)
	app.HistoryPath = filepath.Join(t.TempDir(), "history")
	cb, _ := testCommandBar(t, app)
	cb.Focus()

	cb.input.SetValue("scale reset")
	cb.Update(keyEnter())

	assert.Equal(t, []string{"scale reset"}, loadHistoryFromPath(app.HistoryPath))

	again, _ := testCommandBar(t, app)
	again.Focus()
	again.historyUp()
	assert.Equal(t, "scale reset", again.input.Value())
}
