// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.
//
// go-sskr is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-sskr/internal/encoding"
	"github.com/jeremyhahn/go-sskr/pkg/crypto/rand"
	"github.com/jeremyhahn/go-sskr/pkg/logging"
)

// EnvPrefix prefixes every environment variable read by this package
const EnvPrefix = "SSKR"

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the complete command line configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	RNG     RNGConfig     `yaml:"rng"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format   string `yaml:"format"`
	Encoding string `yaml:"encoding"`
}

// RNGConfig selects the random source used for generation
type RNGConfig struct {
	Mode string `yaml:"mode"`
	Seed string `yaml:"seed"`
}

// MetricsConfig controls the Prometheus textfile export
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn", Format: string(logging.FormatText)},
		Output:  OutputConfig{Format: OutputText, Encoding: string(encoding.FormatHex)},
		RNG:     RNGConfig{Mode: string(rand.ModeSoftware)},
	}
}

// Load reads configuration from a YAML file over the defaults and applies
// environment variable overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 - Config file path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func env(name string) string {
	return os.Getenv(EnvPrefix + "_" + name)
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	// Logging
	if level := env("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := env("LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	// Output
	if format := env("OUTPUT"); format != "" {
		cfg.Output.Format = format
	}
	if enc := env("ENCODING"); enc != "" {
		cfg.Output.Encoding = enc
	}

	// RNG
	if mode := env("RNG_MODE"); mode != "" {
		cfg.RNG.Mode = mode
	}
	if seed := env("SEED"); seed != "" {
		cfg.RNG.Seed = seed
	}

	// Metrics
	if enabled := env("METRICS_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid %s_METRICS_ENABLED: %w", EnvPrefix, err)
		}
		cfg.Metrics.Enabled = v
	}
	if file := env("METRICS_FILE"); file != "" {
		cfg.Metrics.File = file
		cfg.Metrics.Enabled = true
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return err
	}

	switch strings.ToLower(c.Output.Format) {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", c.Output.Format)
	}

	if _, err := encoding.ParseFormat(c.Output.Encoding); err != nil {
		return err
	}

	mode, err := rand.ParseMode(c.RNG.Mode)
	if err != nil {
		return err
	}
	if mode == rand.ModeDeterministic && c.RNG.Seed == "" {
		return rand.ErrSeedRequired
	}

	if c.Metrics.Enabled && c.Metrics.File == "" {
		return fmt.Errorf("metrics file is required when metrics are enabled")
	}

	return nil
}

// RandConfig converts the RNG section to a resolver configuration
func (c *Config) RandConfig() (*rand.Config, error) {
	mode, err := rand.ParseMode(c.RNG.Mode)
	if err != nil {
		return nil, err
	}
	cfg := &rand.Config{Mode: mode}
	if c.RNG.Seed != "" {
		cfg.Seed = []byte(c.RNG.Seed)
	}
	return cfg, nil
}
