package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexanderramin/vitae/internal/cli"
	"github.com/alexanderramin/vitae/internal/config"
	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/logging"
	"github.com/alexanderramin/vitae/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}
	// The global level gates output so --verbose can lower it later.
	logger, err := logging.New().FromPath(cfg.LogFile).WithLevel(zerolog.TraceLevel).Make()
	if err != nil {
		return err
	}
	defer logger.Close()
	zerolog.SetGlobalLevel(level)
	log.Logger = logger.Logger

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	opts := service.Options{
		Policy:   cfg.ReorderPolicy,
		Defaults: cfg.Defaults,
		Logger:   &logger.Logger,
		Observer: service.NewLogUseCaseObserver(logger.Logger),
	}

	app := &cli.App{
		Documents: service.NewDocumentService(uow, opts),
		Sections:  service.NewSectionService(uow, opts),
		Items:     service.NewItemService(uow, opts),
		Fields:    service.NewFieldService(uow, opts),
		Preview:   service.NewPreviewService(uow, opts),
		Import:    service.NewImportService(uow, opts),
		Export:    service.NewExportService(uow),

		DefaultDocument: cfg.DefaultDocument,
		SaveDefaultDocument: func(id string) error {
			return config.UpdateFile(func(c *config.Config) {
				c.DefaultDocument = id
			})
		},
		WatchPath: cfg.DBPath,
	}

	// Detect interactive terminal for the editor entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if dir, err := config.Dir(); err == nil {
		app.HistoryPath = filepath.Join(dir, "shell_history")
	}

	return cli.NewRootCmd(app).Execute()
}
