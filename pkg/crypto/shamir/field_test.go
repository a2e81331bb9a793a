// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.

package shamir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGF256_Tables(t *testing.T) {
	seen := make(map[byte]bool, 255)
	for i := 0; i < 255; i++ {
		seen[gfExpTable[i]] = true
	}
	assert.Len(t, seen, 255, "generator must be primitive")
	assert.False(t, seen[0])

	for a := 1; a < 256; a++ {
		assert.Equal(t, byte(a), gfExpTable[gfLogTable[a]])
	}
}

func TestGF256_MulMatchesPeasant(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			require.Equal(t, gfMultiply(byte(a), byte(b)), gfMul(byte(a), byte(b)), "%d*%d", a, b)
		}
	}
}

func TestGF256_KnownProducts(t *testing.T) {
	// FIPS-197 section 4.2
	assert.Equal(t, byte(0xC1), gfMul(0x57, 0x83))
	assert.Equal(t, byte(0xFE), gfMul(0x57, 0x13))
}

func TestGF256_DivInverse(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 1; b < 256; b++ {
			q := gfDiv(byte(a), byte(b))
			require.Equal(t, byte(a), gfMul(q, byte(b)))
		}
	}
	assert.Panics(t, func() { gfDiv(1, 0) })
}

func TestInterpolate(t *testing.T) {
	// y = 5x + 9 over GF(256), per byte
	line := func(x byte) byte { return gfMul(5, x) ^ 9 }

	xs := []byte{1, 2}
	ys := [][]byte{{line(1), line(1)}, {line(2), line(2)}}

	for _, x := range []byte{0, 3, 200, 255} {
		got, err := interpolate(xs, ys, x)
		require.NoError(t, err)
		assert.Equal(t, []byte{line(x), line(x)}, got)
	}

	t.Run("known point is copied", func(t *testing.T) {
		got, err := interpolate(xs, ys, 2)
		require.NoError(t, err)
		assert.Equal(t, ys[1], got)
		got[0] ^= 0xFF
		assert.NotEqual(t, ys[1][0], got[0])
	})

	t.Run("duplicate x", func(t *testing.T) {
		_, err := interpolate([]byte{1, 1}, ys, 0)
		assert.ErrorIs(t, err, ErrDuplicateIndex)
	})

	t.Run("unequal lengths", func(t *testing.T) {
		_, err := interpolate(xs, [][]byte{{1}, {1, 2}}, 0)
		assert.ErrorIs(t, err, ErrSharesUnequalLength)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := interpolate(nil, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})
}
