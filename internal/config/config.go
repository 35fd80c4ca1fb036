// Package config loads the YAML configuration of the marshal engine.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"field-marshaller/internal/log"
)

// Config is the root of the configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Engine  EngineConfig  `yaml:"engine"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     log.Config    `yaml:"log"`
}

// EngineConfig tunes the marshaller.
type EngineConfig struct {
	// Workers above 1 run batch items on a pool of that size.
	Workers int `yaml:"workers"`
	// PreAlloc starts every pool worker up front.
	PreAlloc bool `yaml:"prealloc,omitempty"`
	// Prefix requests output key prefixing. Not supported; a non-empty value fails every call.
	Prefix string `yaml:"prefix,omitempty"`
}

// MetricsConfig toggles prometheus collection.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config YAML")
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config

	applyDefaults(&cfg)

	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = 1
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate reports settings that can never work.
func (cfg *Config) Validate() error {
	if cfg.Version != "1" {
		return errors.Newf("unsupported config version %q", cfg.Version)
	}

	if cfg.Engine.Workers < 0 {
		return errors.Newf("engine.workers must not be negative, got %d", cfg.Engine.Workers)
	}

	switch cfg.Log.Format {
	case "json", "console":
	default:
		return errors.Newf("log.format must be json or console, got %q", cfg.Log.Format)
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}
