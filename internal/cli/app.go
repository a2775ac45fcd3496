package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/store"
	"tasklist/internal/todo"
)

// app is everything a subcommand needs once configuration is resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	kv     store.KV
	tasks  *todo.Service
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.driver != "" {
		cfg.Storage.Driver = opts.driver
		if opts.path == "" {
			cfg.Storage.Path = config.DefaultStoragePath(opts.driver)
		}
	}
	if opts.path != "" {
		cfg.Storage.Path = opts.path
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp opens the configured store and seeds the task collection.
// Callers must call close when done.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

	kv, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	tasks := todo.NewService(store.NewAdapter(kv, cfg.Storage.Key, logger))
	tasks.Init(cmd.Context())

	logger.Debug("store opened", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path, "tasks", len(tasks.Tasks()))

	return &app{cfg: cfg, logger: logger, kv: kv, tasks: tasks}, nil
}

func (a *app) close() {
	if err := a.kv.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
}
