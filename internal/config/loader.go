package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TASKLIST_STORAGE_DRIVER.
const EnvPrefix = "TASKLIST"

// Load builds the configuration from defaults, the YAML file at path and the
// environment, in increasing order of precedence. An empty path falls back
// to DefaultConfigPath when that file exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT and DB_PATH are accepted for compatibility with older deployments.
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("storage.path", EnvPrefix+"_STORAGE_PATH", "DB_PATH")

	if path == "" {
		if _, err := os.Stat(DefaultConfigPath()); err == nil {
			path = DefaultConfigPath()
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// A driver switch without an explicit path gets that driver's default.
	if !pathSetExplicitly(v) {
		cfg.Storage.Path = DefaultStoragePath(cfg.Storage.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// pathSetExplicitly reports whether storage.path came from the file or the
// environment rather than from the defaults.
func pathSetExplicitly(v *viper.Viper) bool {
	return v.InConfig("storage.path") ||
		os.Getenv(EnvPrefix+"_STORAGE_PATH") != "" ||
		os.Getenv("DB_PATH") != ""
}
