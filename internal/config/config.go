// Package config provides configuration loading for socialsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/socialsim/internal/agents"
	"github.com/talgya/socialsim/internal/engine"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains all socialsim settings.
type Config struct {
	// Simulation contains the parameters of a run.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Storage configures the optional run recorder.
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Logging configures log output.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures one simulation run.
type SimulationConfig struct {
	// Size is the number of agents in the community.
	Size int `json:"size" yaml:"size"`

	// Iterations is the number of pairing rounds.
	Iterations int `json:"iterations" yaml:"iterations"`

	// Pull is the opinion-pull constant. Range: 0.0 to 0.5
	Pull float64 `json:"pull" yaml:"pull"`

	// Seed for the random source. 0 seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed"`

	// BaseRange bounds the uniform draw that seeds derived attachments.
	BaseRange agents.BaseRange `json:"base_range" yaml:"base_range"`
}

// StorageConfig configures where finished runs are recorded.
type StorageConfig struct {
	// Path of the SQLite database. Empty disables recording.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "debug", "info" (default), "warn" or "error".
	// "debug" logs one line per round.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the reference setup: 1000 agents, 250 rounds.
func Default() *Config {
	p := engine.DefaultParams()
	return &Config{
		Simulation: SimulationConfig{
			Size:       p.Size,
			Iterations: 250,
			Pull:       p.Pull,
			Seed:       p.Seed,
			BaseRange:  p.BaseRange,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Load returns the defaults, overlaid by the file at path (when non-empty)
// and then by environment variables.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides settings from SOCIALSIM_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("SOCIALSIM_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SOCIALSIM_SIZE: %w", err)
		}
		c.Simulation.Size = n
	}
	if v := os.Getenv("SOCIALSIM_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SOCIALSIM_ITERATIONS: %w", err)
		}
		c.Simulation.Iterations = n
	}
	if v := os.Getenv("SOCIALSIM_PULL"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SOCIALSIM_PULL: %w", err)
		}
		c.Simulation.Pull = f
	}
	if v := os.Getenv("SOCIALSIM_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SOCIALSIM_SEED: %w", err)
		}
		c.Simulation.Seed = n
	}
	if v := os.Getenv("SOCIALSIM_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("SOCIALSIM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Params converts the simulation settings to engine parameters.
func (c *Config) Params() engine.Params {
	return engine.Params{
		Size:      c.Simulation.Size,
		Pull:      c.Simulation.Pull,
		Seed:      c.Simulation.Seed,
		BaseRange: c.Simulation.BaseRange,
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Simulation.Size <= 0 {
		return fmt.Errorf("%w: simulation.size must be positive, got %d", ErrInvalidConfig, c.Simulation.Size)
	}
	if c.Simulation.Iterations < 0 {
		return fmt.Errorf("%w: simulation.iterations must be non-negative, got %d", ErrInvalidConfig, c.Simulation.Iterations)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps Level to a slog level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, l.Level)
}
