// Package config loads the YAML configuration of the wcst tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration. The protocol constants (streak length,
// trial budget, rule schedule) are not configurable.
type Config struct {
	Database string         `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Task     TaskConfig     `yaml:"task"`
	Practice PracticeConfig `yaml:"practice"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// TaskConfig configures scored sessions.
type TaskConfig struct {
	// Seed fixes the deck shuffle. 0 draws a random seed per session.
	Seed int64 `yaml:"seed"`
	// Persist archives finished scored sessions in Database.
	Persist bool `yaml:"persist"`
}

// PracticeConfig configures practice sessions.
type PracticeConfig struct {
	// Trials caps a practice session; 0 runs until the participant quits.
	Trials int `yaml:"trials"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Database: "wcst.db",
		Logging: LoggingConfig{
			Level: "info",
		},
		Task: TaskConfig{
			Persist: true,
		},
		Practice: PracticeConfig{
			Trials: 0,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("config: database path is empty")
	}
	if c.Practice.Trials < 0 {
		return fmt.Errorf("config: practice.trials must be >= 0, got %d", c.Practice.Trials)
	}
	return nil
}

// applyEnvOverrides lets WCST_DB, WCST_LOG_LEVEL and WCST_SEED win over the file.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("WCST_DB"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("WCST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("WCST_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("WCST_SEED: %w", err)
		}
		c.Task.Seed = seed
	}
	return nil
}
