// Package config loads operator-tunable defaults from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no --config flag is given. A missing file is
// not an error; defaults apply.
const DefaultPath = "rasterstat.yaml"

// Config holds the application defaults. Command-line flags override these.
type Config struct {
	LogDir   string `yaml:"logDir"`
	LogLevel string `yaml:"logLevel"`
	Workers  int    `yaml:"workers"`

	// Log rotation limits, passed through to the log store.
	LogMaxSizeMB  int `yaml:"logMaxSizeMB"`
	LogMaxBackups int `yaml:"logMaxBackups"`
	LogMaxAgeDays int `yaml:"logMaxAgeDays"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogDir:   "logs",
		LogLevel: "info",
		Workers:  1,
	}
}

// Load reads the configuration at path, falling back to Default when the
// file does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges without touching the filesystem.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.LogDir == "" {
		return errors.New("logDir cannot be empty")
	}
	if c.LogMaxSizeMB < 0 || c.LogMaxBackups < 0 || c.LogMaxAgeDays < 0 {
		return errors.New("log rotation limits cannot be negative")
	}
	return nil
}
