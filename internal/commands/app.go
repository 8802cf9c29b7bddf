package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/resultado/dre/internal/catalog"
	"github.com/resultado/dre/internal/config"
	"github.com/resultado/dre/internal/ledger"
	"github.com/resultado/dre/internal/logging"
	"github.com/resultado/dre/internal/report"
)

// app is the loaded project: config, ledger and engine.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *ledger.Store
	catalog *catalog.Service
	engine  *report.Engine
}

// loadApp reads config, environment, catalog and ledger.
func loadApp(ctx context.Context, cmd *cobra.Command, opts *globalOptions) (*app, error) {
	envFile := opts.envFile
	if envFile == "" {
		envFile = filepath.Join(filepath.Dir(opts.configPath), ".env")
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		// Without a config file the current directory is the project.
		explicit := cmd.Flag("config") != nil && cmd.Flag("config").Changed
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
		cfg.ResolvePaths(filepath.Dir(opts.configPath))
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Log, cmd.ErrOrStderr())

	chart, err := catalog.Load(cfg.Catalog.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("catalog not found, using ledger names", "path", cfg.Catalog.Path)
		chart = catalog.NewService(nil)
	case err != nil:
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	store := ledger.NewStore(cfg.Ledger.Dir, cfg.Ledger.Format, logger)
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	engine := report.New(chart, report.Options{
		AccountType: cfg.Report.AccountType,
		Policy:      report.NewKeywordPolicy(cfg.Report.DeductionMarkers...),
		Logger:      logger,
	})

	return &app{cfg: cfg, logger: logger, store: store, catalog: chart, engine: engine}, nil
}

// entityIDs returns the requested IDs or the configured defaults.
func (a *app) entityIDs(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	return a.cfg.Entity.DefaultIDs
}
