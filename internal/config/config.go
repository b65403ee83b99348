// Package config loads pimatch's CLI/engine options from a YAML file,
// following theRebelliousNerd-codenerd's internal/config idiom: a plain
// struct with yaml tags, DefaultConfig/Load/Save, and environment overrides
// for the handful of settings worth tweaking without editing a file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the options cmd/pimatch reads at startup.
type Config struct {
	// Search holds a cap on the number of candidate terms the search driver
	// may try, in the form pimatch.WithBacktrackBudget takes (zero means
	// unbounded). cmd/pimatch loads it but does not pass it to the engine.
	Search SearchConfig `yaml:"search"`

	// Logging controls internal/trace's verbosity.
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig configures the matching engine's search driver.
type SearchConfig struct {
	MaxBacktracks int `yaml:"max_backtracks"`
}

// LoggingConfig configures internal/trace.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration cmd/pimatch starts from absent a
// config file.
func DefaultConfig() *Config {
	return &Config{
		Search:  SearchConfig{MaxBacktracks: 0},
		Logging: LoggingConfig{Verbose: false},
	}
}

// Load reads cfg from path, falling back to DefaultConfig if the file does
// not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the containing directory if
// necessary.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory for %s: %w", path, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PIMATCH_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Verbose = b
		}
	}
	if v := os.Getenv("PIMATCH_MAX_BACKTRACKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.MaxBacktracks = n
		}
	}
}
