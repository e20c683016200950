// Package config loads the YAML configuration for the foldertree CLI
// and worker pool, in the same shape as freyjadb's pkg/config: a
// struct with a DefaultConfig constructor and a Load that reads
// and validates a file from disk.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the foldertree CLI/server.
type Config struct {
	// MaxFolderNameLength bounds a single path component, overriding
	// pathspec.MaxFolderNameLength when non-zero.
	MaxFolderNameLength int `yaml:"max_folder_name_length"`
	// LogLevel is a logrus level name ("debug", "info", "warn", ...).
	LogLevel string `yaml:"log_level"`
	// Workers is the default worker-pool size for `foldertree repl`.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		MaxFolderNameLength: 255,
		LogLevel:            "info",
		Workers:             4,
	}
}

// Load reads and parses a YAML configuration file at path, falling
// back to field-by-field defaults for anything the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %q", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %q", path)
	}
	if cfg.MaxFolderNameLength <= 0 {
		return nil, errors.Errorf("max_folder_name_length must be positive, got %d", cfg.MaxFolderNameLength)
	}
	if cfg.Workers <= 0 {
		return nil, errors.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	return cfg, nil
}
