package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TIMEGRID_DB", "TIMEGRID_PREFS", "TIMEGRID_LOG", "TIMEGRID_LOG_LEVEL", "TIMEGRID_SEED_SAMPLES"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", "/home/test")
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg := FromEnv()

	assert.Equal(t, filepath.Join("/home/test", ".timegrid", "timegrid.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/home/test", ".config", "timegrid", "prefs.toml"), cfg.PrefsPath)
	assert.Empty(t, cfg.LogPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.SeedSamples)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEGRID_DB", "/tmp/grid.db")
	t.Setenv("TIMEGRID_PREFS", "/tmp/prefs.toml")
	t.Setenv("TIMEGRID_LOG", "/tmp/grid.log")
	t.Setenv("TIMEGRID_LOG_LEVEL", "debug")
	t.Setenv("TIMEGRID_SEED_SAMPLES", "false")

	cfg := FromEnv()

	assert.Equal(t, "/tmp/grid.db", cfg.DBPath)
	assert.Equal(t, "/tmp/prefs.toml", cfg.PrefsPath)
	assert.Equal(t, "/tmp/grid.log", cfg.LogPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.SeedSamples)
}

func TestFromEnv_InvalidValuesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEGRID_LOG_LEVEL", "chatty")
	t.Setenv("TIMEGRID_SEED_SAMPLES", "maybe")

	cfg := FromEnv()

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.SeedSamples)
}

func TestLoadFile_ReadsDotenvWithoutOverriding(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("TIMEGRID_DB")
	os.Unsetenv("TIMEGRID_LOG")
	t.Setenv("TIMEGRID_PREFS", "/from/env.toml")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TIMEGRID_DB=/from/dotenv.db\nTIMEGRID_PREFS=/from/dotenv.toml\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TIMEGRID_DB") })

	cfg := LoadFile(path)

	assert.Equal(t, "/from/dotenv.db", cfg.DBPath)
	assert.Equal(t, "/from/env.toml", cfg.PrefsPath)
}
