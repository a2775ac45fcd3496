package store

import (
	"fmt"
	"os"
	"path/filepath"

	"tasklist/internal/config"
)

// Open returns the KV backend selected by cfg.Driver.
func Open(cfg config.StorageConfig) (KV, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return NewSQLiteKV(cfg.Path)
	case config.DriverFile:
		return NewFileKV(cfg.Path)
	case config.DriverMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
