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

package shamir

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// GF(256) arithmetic using AES's finite field representation.
// The field is defined by the irreducible polynomial x^8 + x^4 + x^3 + x + 1.
// Addition and subtraction are both XOR.

var (
	gfLogTable [256]byte
	gfExpTable [256]byte
)

func init() {
	// Generator 0x03 is primitive for the AES polynomial
	var x byte = 1
	for i := 0; i < 255; i++ {
		gfExpTable[i] = x
		gfLogTable[x] = byte(i)
		x = gfMultiply(x, 0x03)
	}
	gfExpTable[255] = gfExpTable[0]
}

// gfMultiply performs multiplication in GF(256) using the peasant algorithm.
// This is used only during table initialization.
func gfMultiply(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return p
}

// gfMul performs multiplication in GF(256).
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[(int(gfLogTable[a])+int(gfLogTable[b]))%255]
}

// gfDiv divides a by b in GF(256). b must not be zero.
func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("division by zero in GF(256)")
	}
	if a == 0 {
		return 0
	}
	return gfExpTable[(int(gfLogTable[a])+255-int(gfLogTable[b]))%255]
}

// interpolate evaluates, at x, the unique polynomial of degree len(xs)-1
// passing through the points (xs[i], ys[i][k]) for every byte position k.
// All ys must have the same length and all xs must be distinct.
func interpolate(xs []byte, ys [][]byte, x byte) ([]byte, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, ErrInvalidThreshold
	}

	coords := mapset.NewSetWithSize[byte](len(xs))
	for _, xi := range xs {
		coords.Add(xi)
	}
	if coords.Cardinality() != len(xs) {
		return nil, ErrDuplicateIndex
	}

	length := len(ys[0])
	for _, y := range ys {
		if len(y) != length {
			return nil, ErrSharesUnequalLength
		}
	}

	if coords.Contains(x) {
		for i, xi := range xs {
			if xi == x {
				out := make([]byte, length)
				copy(out, ys[i])
				return out, nil
			}
		}
	}

	result := make([]byte, length)
	for i, xi := range xs {
		// Lagrange basis polynomial l_i evaluated at x:
		// prod_{j != i} (x - x_j) / (x_i - x_j)
		var numerator, denominator byte = 1, 1
		for j, xj := range xs {
			if i == j {
				continue
			}
			numerator = gfMul(numerator, x^xj)
			denominator = gfMul(denominator, xi^xj)
		}
		basis := gfDiv(numerator, denominator)

		for k, yk := range ys[i] {
			result[k] ^= gfMul(yk, basis)
		}
	}

	return result, nil
}
