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

// Package shamir implements the single-level Shamir secret sharing primitive
// used by SSKR.
//
// A secret of 16 to 32 bytes (even length) is split into at most 16 shares,
// any threshold of which recover it. Each byte of the secret is shared
// independently over GF(2^8), using the same field as AES (irreducible
// polynomial x^8 + x^4 + x^3 + x + 1).
//
// # Share Layout
//
// Shares are plain byte slices of the same length as the secret. A share's
// x coordinate is its position in the slice returned by [SplitSecret]
// (0, 1, 2, ...) and must be supplied again to [RecoverSecret].
//
// For a threshold t > 1 the polynomial is fixed by t points:
//
//   - x = 0 .. t-3: random shares
//   - x = 254: a digest share, HMAC-SHA256(key=R, msg=secret)[:4] || R, where
//     R is len(secret)-4 random bytes
//   - x = 255: the secret itself
//
// The remaining shares are obtained by interpolating at their x coordinate.
// When recovering, both the secret (x = 255) and the digest share (x = 254)
// are interpolated, and the digest is checked. Recovery from fewer shares
// than the threshold, or from corrupted shares, therefore fails with
// [ErrChecksumFailure] with overwhelming probability instead of silently
// returning a wrong secret.
//
// A threshold of 1 carries no secrecy: every share is a copy of the secret.
//
// # Compatibility
//
// The share values are byte-for-byte compatible with the Blockchain Commons
// Shamir implementation used by SSKR (BCR-2020-011), given the same random
// input.
//
// # Usage Example
//
//	shares, err := shamir.SplitSecret(2, 3, secret, rand.Reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Any two shares, with their indexes
//	recovered, err := shamir.RecoverSecret([]int{0, 2}, [][]byte{shares[0], shares[2]})
package shamir
