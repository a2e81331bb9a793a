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

// Package rand provides the random number sources used when generating
// shares.
//
// # Overview
//
// Share generation consumes randomness for the share set identifier and for
// the polynomial coefficients of every split. The source is always passed in
// explicitly as an io.Reader; this package supplies the readers:
//
//   - Software: crypto/rand (the default, and the only mode suitable for
//     real secrets)
//   - Deterministic: a ChaCha20 keystream keyed by a seed, for reproducible
//     test vectors and fixtures
//
// # Usage
//
//	// Process-wide secure source
//	shares, err := sskr.GenerateUsing(spec, secret, rand.Default())
//
//	// Reproducible output, never for real secrets
//	rng, _ := rand.NewResolver(&rand.Config{
//	    Mode: rand.ModeDeterministic,
//	    Seed: []byte("test vector 1"),
//	})
//	shares, err := sskr.GenerateUsing(spec, secret, rng)
//
// # Thread Safety
//
// All Resolver implementations are safe for concurrent use. Concurrent reads
// from a deterministic resolver interleave its keystream, so reproducible
// output additionally requires a single reader.
package rand

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// Mode specifies which RNG source to use.
type Mode string

const (
	// ModeSoftware uses crypto/rand (stdlib secure random)
	ModeSoftware Mode = "software"

	// ModeDeterministic uses a ChaCha20 keystream derived from Config.Seed.
	// The output is fully predictable from the seed.
	ModeDeterministic Mode = "deterministic"
)

var (
	// ErrUnknownMode is returned for an unsupported Mode.
	ErrUnknownMode = errors.New("rand: unknown RNG mode")

	// ErrSeedRequired is returned when ModeDeterministic is requested without a seed.
	ErrSeedRequired = errors.New("rand: deterministic mode requires a seed")

	// ErrClosed is returned when reading from a closed resolver.
	ErrClosed = errors.New("rand: resolver closed")
)

// Config contains RNG configuration.
type Config struct {
	// Mode specifies the RNG source to use.
	// Defaults to ModeSoftware if not specified.
	Mode Mode

	// Seed keys the deterministic source. Required for ModeDeterministic,
	// ignored otherwise.
	Seed []byte
}

// Resolver provides random bytes from the configured source.
//
// Resolver implements io.Reader, making it usable anywhere crypto/rand.Reader
// is expected.
type Resolver interface {
	io.Reader

	// Rand returns n random bytes.
	Rand(n int) ([]byte, error)

	// Mode returns the mode this resolver was created with.
	Mode() Mode

	// Close releases any resources. Reads after Close fail.
	Close() error
}

var defaultResolver Resolver = &SoftwareResolver{}

// Default returns the process-wide secure resolver backed by crypto/rand.
func Default() Resolver {
	return defaultResolver
}

// ParseMode converts a string (case-insensitive) into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSoftware:
		return ModeSoftware, nil
	case ModeDeterministic:
		return ModeDeterministic, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
	}
}

// NewResolver creates a new RNG resolver with the given configuration.
// config may be nil, a Mode or a *Config; nil selects ModeSoftware.
func NewResolver(config interface{}) (Resolver, error) {
	cfg := normalizeConfig(config)

	switch cfg.Mode {
	case ModeSoftware:
		return &SoftwareResolver{}, nil
	case ModeDeterministic:
		return newDeterministicResolver(cfg.Seed)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, cfg.Mode)
	}
}

// normalizeConfig converts various config types to *Config.
func normalizeConfig(config interface{}) *Config {
	switch v := config.(type) {
	case Mode:
		return &Config{Mode: v}
	case *Config:
		if v == nil {
			return &Config{Mode: ModeSoftware}
		}
		cfg := *v
		if cfg.Mode == "" {
			cfg.Mode = ModeSoftware
		}
		return &cfg
	default:
		return &Config{Mode: ModeSoftware}
	}
}

// SoftwareResolver uses crypto/rand from the Go standard library.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

// Read implements io.Reader.
func (s *SoftwareResolver) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

func (s *SoftwareResolver) Mode() Mode {
	return ModeSoftware
}

func (s *SoftwareResolver) Close() error {
	return nil
}

// DeterministicResolver produces the ChaCha20 keystream for
// key = SHA-256(seed) and an all-zero nonce.
type DeterministicResolver struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
}

var _ Resolver = (*DeterministicResolver)(nil)

func newDeterministicResolver(seed []byte) (*DeterministicResolver, error) {
	if len(seed) == 0 {
		return nil, ErrSeedRequired
	}
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to create keystream: %w", err)
	}
	return &DeterministicResolver{cipher: c}, nil
}

func (d *DeterministicResolver) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := d.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Read implements io.Reader. It always fills p unless the resolver is closed.
func (d *DeterministicResolver) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cipher == nil {
		return 0, ErrClosed
	}
	clear(p)
	d.cipher.XORKeyStream(p, p)
	return len(p), nil
}

func (d *DeterministicResolver) Mode() Mode {
	return ModeDeterministic
}

func (d *DeterministicResolver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cipher = nil
	return nil
}
