package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the XDG config and data homes.
const AppName = "tasklist"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   DefaultStoragePath(DriverSQLite),
			Key:    "todos",
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/tasklist or ~/.config/tasklist.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultConfigPath returns the config file looked up when none is given.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/tasklist or ~/.local/share/tasklist.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultStoragePath returns the default path for a storage driver.
func DefaultStoragePath(driver string) string {
	switch driver {
	case DriverSQLite:
		return filepath.Join(DefaultDataDir(), "tasks.db")
	case DriverFile:
		return DefaultDataDir()
	default:
		return ""
	}
}

// WriteDefault writes cfg as YAML to path, creating parent directories.
// Existing files are left alone.
func WriteDefault(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := []byte("# tasklist configuration\n")
	return os.WriteFile(path, append(header, data...), 0600)
}
