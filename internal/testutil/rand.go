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

// Package testutil provides deterministic random sources and helpers shared
// by the package tests. Nothing here is suitable for real secrets.
package testutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/jeremyhahn/go-sskr/pkg/crypto/rand"
)

// ErrInjected is returned by FailingReader once its budget is exhausted.
var ErrInjected = errors.New("testutil: injected read failure")

// FakeReader fills every Read with the sequence 0, 17, 34, ... (wrapping),
// restarting from 0 on each call. Every split therefore consumes the same
// "random" bytes, which keeps expected share values reproducible.
type FakeReader struct{}

func (FakeReader) Read(p []byte) (int, error) {
	var b byte
	for i := range p {
		p[i] = b
		b += 17
	}
	return len(p), nil
}

// FailingReader serves N bytes from R (or zeros when R is nil) and then
// returns ErrInjected.
type FailingReader struct {
	R io.Reader
	N int
}

func (f *FailingReader) Read(p []byte) (int, error) {
	if f.N <= 0 {
		return 0, ErrInjected
	}
	if len(p) > f.N {
		p = p[:f.N]
	}
	var n int
	if f.R == nil {
		clear(p)
		n = len(p)
	} else {
		var err error
		n, err = f.R.Read(p)
		if err != nil {
			return n, err
		}
	}
	f.N -= n
	return n, nil
}

// SeededReader returns a deterministic reader keyed by seed.
func SeededReader(tb testing.TB, seed string) rand.Resolver {
	tb.Helper()
	r, err := rand.NewResolver(&rand.Config{Mode: rand.ModeDeterministic, Seed: []byte(seed)})
	if err != nil {
		tb.Fatalf("failed to create seeded reader: %v", err)
	}
	return r
}

// IdentifierReader prefixes r with the big-endian bytes of id, so the next
// share set generated from it carries that identifier.
func IdentifierReader(id uint16, r io.Reader) io.Reader {
	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], id)
	return io.MultiReader(bytes.NewReader(prefix[:]), r)
}

// IntInRange returns a value in the closed range [lo, hi] read from r.
func IntInRange(tb testing.TB, r io.Reader, lo, hi int) int {
	tb.Helper()
	if hi < lo {
		tb.Fatalf("invalid range [%d, %d]", lo, hi)
	}
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		tb.Fatalf("failed to read random range: %v", err)
	}
	return lo + int(binary.BigEndian.Uint32(buf[:])%uint32(hi-lo+1))
}

// Shuffle permutes s in place (Fisher-Yates) using r.
func Shuffle[T any](tb testing.TB, r io.Reader, s []T) {
	tb.Helper()
	for i := len(s) - 1; i > 0; i-- {
		j := IntInRange(tb, r, 0, i)
		s[i], s[j] = s[j], s[i]
	}
}
