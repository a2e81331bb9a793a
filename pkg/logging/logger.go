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

// Package logging provides a simple leveled logger backed by zerolog
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log line encoding
type Format string

const (
	// FormatText writes human readable console lines
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line
	FormatJSON Format = "json"
)

var (
	// ErrInvalidLevel is returned for an unrecognized level name
	ErrInvalidLevel = errors.New("logging: invalid log level")
	// ErrInvalidFormat is returned for an unrecognized format
	ErrInvalidFormat = errors.New("logging: invalid log format")
)

// Config configures a Logger
type Config struct {
	// Level is one of trace, debug, info, warn, error or none. Empty means info.
	Level string
	// Format is text or json. Empty means text.
	Format Format
	// Output defaults to os.Stderr
	Output io.Writer
	// NoTimestamp omits the time field
	NoTimestamp bool
}

// Logger provides logging functionality for sskr operations
type Logger struct {
	zl zerolog.Logger
}

// ParseLevel converts a level name to a zerolog level
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "disabled", "off":
		return zerolog.Disabled, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info", "information":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "err", "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// ParseFormat converts a format name to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// NewLogger creates a new logger instance
func NewLogger(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if format == FormatText {
		out = zerolog.ConsoleWriter{
			Out:          out,
			NoColor:      true,
			TimeFormat:   time.RFC3339,
			PartsExclude: partsExclude(cfg.NoTimestamp),
		}
	}

	ctx := zerolog.New(out).Level(level).With()
	if !cfg.NoTimestamp {
		ctx = ctx.Timestamp()
	}
	return &Logger{zl: ctx.Logger()}, nil
}

func partsExclude(noTimestamp bool) []string {
	if noTimestamp {
		return []string{zerolog.TimestampFieldName}
	}
	return nil
}

// DefaultLogger returns a text logger at info level writing to stderr
func DefaultLogger() *Logger {
	l, _ := NewLogger(Config{})
	return l
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger that adds key=value to every line
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Info logs an informational message with optional key/value pairs
func (l *Logger) Info(msg string, args ...any) {
	l.zl.Info().Fields(args).Msg(msg)
}

// Infof logs a formatted informational message
func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Debug logs a debug message with optional key/value pairs
func (l *Logger) Debug(msg string, args ...any) {
	l.zl.Debug().Fields(args).Msg(msg)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

// Warn logs a warning message with optional key/value pairs
func (l *Logger) Warn(msg string, args ...any) {
	l.zl.Warn().Fields(args).Msg(msg)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs an error
func (l *Logger) Error(err error) {
	l.zl.Error().Err(err).Send()
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

// MaybeError logs an error if it's not nil
func (l *Logger) MaybeError(err error) {
	if err != nil {
		l.Error(err)
	}
}
