package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/timegrid/internal/cli"
	"github.com/alexanderramin/timegrid/internal/config"
	"github.com/alexanderramin/timegrid/internal/db"
	"github.com/alexanderramin/timegrid/internal/prefs"
	"github.com/alexanderramin/timegrid/internal/repository"
	"github.com/alexanderramin/timegrid/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Use-case log: TIMEGRID_LOG or nothing. The TUI owns the terminal.
	observer := service.UseCaseObserver(service.NoopUseCaseObserver{})
	if cfg.LogPath != "" {
		logFile, err := openLog(cfg.LogPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		observer = service.NewLogUseCaseObserver(logFile, cfg.LogLevel)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	gateway := service.NewObservedGateway(
		service.NewGateway(
			repository.NewSQLiteUserRepo(database),
			repository.NewSQLiteProjectRepo(database),
			repository.NewSQLiteAllotmentRepo(database),
			repository.NewSQLiteTimeEntryRepo(database),
			uow,
			service.WithSampleSeed(cfg.SeedSamples),
		),
		observer,
	)

	store := prefs.Open(cfg.PrefsPath)

	app := &cli.App{
		Gateway:     gateway,
		Session:     service.NewAuthSession(gateway, store),
		Metrics:     service.NewMetricsAggregator(gateway),
		Importer:    service.NewProjectImporter(uow),
		Prefs:       store,
		HistoryPath: cli.DefaultHistoryPath(),
	}

	// Detect interactive terminal for the TUI and credential prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

func openLog(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
