// Package config reads process configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alexanderramin/timegrid/internal/prefs"
)

// Config holds everything main needs to wire the application.
type Config struct {
	DBPath      string
	PrefsPath   string
	LogPath     string // empty discards use-case logs
	LogLevel    slog.Level
	SeedSamples bool
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:      filepath.Join(home, ".timegrid", "timegrid.db"),
		PrefsPath:   prefs.DefaultPath(),
		LogLevel:    slog.LevelInfo,
		SeedSamples: true,
	}
}

// Load reads an optional .env file from the working directory, then the
// TIMEGRID_* variables, falling back to defaults for unset or invalid
// values. Variables already set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// LoadFile is Load with an explicit dotenv file.
func LoadFile(path string) Config {
	_ = godotenv.Load(path)
	return FromEnv()
}

// FromEnv reads TIMEGRID_* variables without touching .env files.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMEGRID_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIMEGRID_PREFS"); v != "" {
		cfg.PrefsPath = v
	}
	if v := os.Getenv("TIMEGRID_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("TIMEGRID_LOG_LEVEL"); v != "" {
		if lvl, ok := parseLevel(v); ok {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("TIMEGRID_SEED_SAMPLES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SeedSamples = b
		}
	}
	return cfg
}

func parseLevel(s string) (slog.Level, bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, false
	}
	return lvl, true
}
