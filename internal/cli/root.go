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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-sskr/internal/config"
	"github.com/jeremyhahn/go-sskr/internal/encoding"
	"github.com/jeremyhahn/go-sskr/pkg/correlation"
	"github.com/jeremyhahn/go-sskr/pkg/crypto/rand"
	"github.com/jeremyhahn/go-sskr/pkg/logging"
	"github.com/jeremyhahn/go-sskr/pkg/metrics"
)

// app carries the state resolved before a command runs
type app struct {
	config   *Config
	settings *config.Config
	logger   *logging.Logger
	rng      rand.Resolver
	encoding encoding.Format
	stderr   io.Writer
}

// NewRootCommand builds the sskr command tree
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{
		config: NewConfig(),
		logger: logging.Nop(),
		stderr: os.Stderr,
	}

	rootCmd := &cobra.Command{
		Use:   "sskr",
		Short: "sskr - Sharded Secret Key Reconstruction",
		Long: `sskr splits a 16 to 32 byte secret into shares organized in groups and
recombines them. A quorum of groups, each with a quorum of members, is
needed to recover the secret.

Shares are printed as hex, base64 or CBOR (tag 40309) text. Settings are
read from flags, SSKR_* environment variables and an optional YAML file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	a.config.addFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newGenerateCommand(a))
	rootCmd.AddCommand(newCombineCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newVersionCommand(a))

	return rootCmd, a
}

// Execute runs the command line against the process arguments and returns
// the exit code
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes the command line with the given arguments and streams and
// returns the exit code
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCommand()
	a.stderr = stderr
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	ctx := correlation.WithRunID(context.Background(), correlation.NewID())
	err := rootCmd.ExecuteContext(ctx)
	err = errors.Join(err, a.finish())
	if err != nil {
		a.handleError(err)
		return 1
	}
	return 0
}

// setup resolves configuration and builds the logger and random source
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := initializeConfig(cmd, a.config)
	if err != nil {
		return err
	}
	a.settings = settings

	logFormat, err := logging.ParseFormat(settings.Logging.Format)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(logging.Config{
		Level:  settings.Logging.Level,
		Format: logFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger = logger.
		With("command", cmd.Name()).
		With("run_id", correlation.GetOrGenerate(cmd.Context()))

	if a.encoding, err = encoding.ParseFormat(settings.Output.Encoding); err != nil {
		return err
	}

	randConfig, err := settings.RandConfig()
	if err != nil {
		return err
	}
	if a.rng, err = rand.NewResolver(randConfig); err != nil {
		return fmt.Errorf("failed to create random source: %w", err)
	}
	if a.rng.Mode() == rand.ModeDeterministic {
		a.logger.Warn("deterministic random source in use, shares are reproducible from the seed")
	}

	if settings.Metrics.Enabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}

	a.printVerbose("config file: %q, output: %s, encoding: %s, rng: %s",
		a.config.ConfigFile, settings.Output.Format, a.encoding, a.rng.Mode())
	return nil
}

// finish releases the random source and exports metrics
func (a *app) finish() error {
	var errs []error
	if a.rng != nil {
		errs = append(errs, a.rng.Close())
		a.rng = nil
	}
	if a.settings != nil && a.settings.Metrics.Enabled {
		if err := metrics.WriteTextfile(a.settings.Metrics.File); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		} else {
			a.printVerbose("metrics written to %s", a.settings.Metrics.File)
		}
	}
	return errors.Join(errs...)
}

// printer returns a Printer for the resolved output format
func (a *app) printer(w io.Writer) *Printer {
	return NewPrinter(a.outputFormat(), w)
}

func (a *app) outputFormat() string {
	if a.settings != nil {
		return a.settings.Output.Format
	}
	return a.config.OutputFormat
}

// handleError prints an error on stderr
func (a *app) handleError(err error) {
	_ = a.printer(a.stderr).PrintError(err) // Error printing to stderr is best-effort
}

// printVerbose prints a message if verbose mode is enabled
func (a *app) printVerbose(format string, args ...interface{}) {
	if a.config.Verbose {
		fmt.Fprintf(a.stderr, "[VERBOSE] "+format+"\n", args...)
	}
}
