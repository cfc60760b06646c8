// Package config loads process configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

// Config holds the process configuration settings.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Storage  StorageConfig `yaml:"storage"`
	Puzzle   PuzzleConfig  `yaml:"puzzle"`
	LogLevel string        `yaml:"log_level" env:"HOUSE_LEDGER_LOG_LEVEL"`
}

// ServerConfig holds the HTTP command surface configuration.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"HOUSE_LEDGER_LISTEN_ADDR"`
}

// StorageConfig selects and configures the document store backend.
type StorageConfig struct {
	Backend     string `yaml:"backend" env:"HOUSE_LEDGER_STORAGE_BACKEND"`
	DataDir     string `yaml:"data_dir" env:"HOUSE_LEDGER_DATA_DIR"`
	PostgresDSN string `yaml:"postgres_dsn" env:"HOUSE_LEDGER_POSTGRES_DSN"`
}

// PuzzleConfig holds the timer sweep configuration.
type PuzzleConfig struct {
	SweepInterval time.Duration `yaml:"sweep_interval" env:"HOUSE_LEDGER_SWEEP_INTERVAL"`
}

func defaults() Config {
	return Config{
		Server:   ServerConfig{ListenAddr: ":8080"},
		Storage:  StorageConfig{Backend: StorageJSON, DataDir: "data"},
		Puzzle:   PuzzleConfig{SweepInterval: time.Minute},
		LogLevel: "info",
	}
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides. A missing file is not an error; the defaults
// plus environment carry a full configuration.
func LoadConfig(filename string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(filename); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the process cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageJSON:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir is required for the json backend")
		}
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Puzzle.SweepInterval <= 0 {
		return fmt.Errorf("puzzle.sweep_interval must be positive")
	}
	return nil
}

// SlogLevel maps the configured level name to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
