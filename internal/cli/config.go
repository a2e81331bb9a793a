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


package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-sskr/internal/config"
)

// Flag names shared by every command
const (
	flagConfig      = "config"
	flagOutput      = "output"
	flagEncoding    = "encoding"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagRNGMode     = "rng-mode"
	flagSeed        = "seed"
	flagMetricsFile = "metrics-file"
	flagVerbose     = "verbose"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the YAML configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json, yaml)
	OutputFormat string

	// Encoding is the textual share encoding (hex, base64, cbor)
	Encoding string

	// LogLevel and LogFormat configure the diagnostic logger on stderr
	LogLevel  string
	LogFormat string

	// RNGMode selects the random source (software, deterministic)
	RNGMode string

	// Seed keys the deterministic random source
	Seed string

	// MetricsFile receives a Prometheus textfile export after each run
	MetricsFile string

	// Verbose enables verbose output
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: config.OutputText,
	}
}

func (c *Config) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.ConfigFile, flagConfig, "",
		"config file (YAML)")
	flags.StringVarP(&c.OutputFormat, flagOutput, "o", c.OutputFormat,
		"output format (text, json, yaml)")
	flags.StringVarP(&c.Encoding, flagEncoding, "e", "",
		"share encoding (hex, base64, cbor)")
	flags.StringVar(&c.LogLevel, flagLogLevel, "",
		"log level (trace, debug, info, warn, error, none)")
	flags.StringVar(&c.LogFormat, flagLogFormat, "",
		"log format (text, json)")
	flags.StringVar(&c.RNGMode, flagRNGMode, "",
		"random source (software, deterministic)")
	flags.StringVar(&c.Seed, flagSeed, "",
		"seed for the deterministic random source")
	flags.StringVar(&c.MetricsFile, flagMetricsFile, "",
		"write Prometheus metrics to this file after the command runs")
	flags.BoolVarP(&c.Verbose, flagVerbose, "v", false,
		"verbose output")
}

// initializeConfig resolves settings with the precedence
// flag > environment > config file > default.
func initializeConfig(cmd *cobra.Command, c *Config) (*config.Config, error) {
	configFile := c.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(config.EnvPrefix + "_CONFIG")
	}

	file, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(flagOutput, file.Output.Format)
	v.SetDefault(flagEncoding, file.Output.Encoding)
	v.SetDefault(flagLogLevel, file.Logging.Level)
	v.SetDefault(flagLogFormat, file.Logging.Format)
	v.SetDefault(flagRNGMode, file.RNG.Mode)
	v.SetDefault(flagSeed, file.RNG.Seed)
	v.SetDefault(flagMetricsFile, file.Metrics.File)

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return nil, err
	}

	resolved := &config.Config{
		Logging: config.LoggingConfig{Level: c.LogLevel, Format: c.LogFormat},
		Output:  config.OutputConfig{Format: strings.ToLower(c.OutputFormat), Encoding: c.Encoding},
		RNG:     config.RNGConfig{Mode: c.RNGMode, Seed: c.Seed},
		Metrics: config.MetricsConfig{
			Enabled: file.Metrics.Enabled || c.MetricsFile != "",
			File:    c.MetricsFile,
		},
	}
	if err := resolved.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return resolved, nil
}

// bindFlags copies viper values into every flag the user did not set
// explicitly.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == flagConfig || !v.IsSet(f.Name) {
			return
		}
		// Only scalar flags are taken from the environment
		if strings.HasSuffix(f.Value.Type(), "Array") || strings.HasSuffix(f.Value.Type(), "Slice") {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
			errs = append(errs, fmt.Errorf("flag --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}
