package config

import (
	"fmt"
	"os"
	"path/filepath"

	"genelab/internal/genetics"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all genelab configuration.
type Config struct {
	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Genetic operator rates; validated by Rates.Validate.
	Genetics *genetics.Rates `yaml:"genetics" validate:"required"`

	// Gene pool storage
	Pool PoolConfig `yaml:"pool"`

	// Prometheus exposition
	Metrics MetricsConfig `yaml:"metrics"`
}

// PoolConfig configures the SQLite gene pool.
type PoolConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite sqlite3"` // sqlite (pure Go), sqlite3 (cgo)
	Path   string `yaml:"path" validate:"required"`
}

// MetricsConfig configures the metrics listener. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Dir:    ".genelab/logs",
		},
		Genetics: genetics.DefaultRates(),
		Pool: PoolConfig{
			Driver: "sqlite",
			Path:   ".genelab/pool.db",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
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

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save validates c and writes it to path as YAML. The file is written to a
// sibling temp file first and renamed into place.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".genelab-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("GENELAB_DB"); path != "" {
		c.Pool.Path = path
	}
	if driver := os.Getenv("GENELAB_DB_DRIVER"); driver != "" {
		c.Pool.Driver = driver
	}
	if level := os.Getenv("GENELAB_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if addr := os.Getenv("GENELAB_METRICS_ADDR"); addr != "" {
		c.Metrics.Addr = addr
	}
}

var validate = validator.New()

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Genetics.Validate()
}
