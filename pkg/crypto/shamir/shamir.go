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
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

const (
	// MinSecretLen is the minimum length of a secret in bytes.
	MinSecretLen = 16

	// MaxSecretLen is the maximum length of a secret in bytes.
	MaxSecretLen = 32

	// MaxShareCount is the maximum number of shares a secret can be split into.
	MaxShareCount = 16

	secretIndex  = 255
	digestIndex  = 254
	digestLength = 4
)

var (
	// ErrTooManyShares is returned when more than MaxShareCount shares are requested.
	ErrTooManyShares = errors.New("shamir: too many shares")

	// ErrInvalidThreshold is returned when the threshold is zero or exceeds the share count.
	ErrInvalidThreshold = errors.New("shamir: invalid threshold")

	// ErrSecretTooLong is returned when the secret exceeds MaxSecretLen.
	ErrSecretTooLong = errors.New("shamir: secret is too long")

	// ErrSecretTooShort is returned when the secret is shorter than MinSecretLen.
	ErrSecretTooShort = errors.New("shamir: secret is too short")

	// ErrSecretNotEvenLen is returned when the secret length is odd.
	ErrSecretNotEvenLen = errors.New("shamir: secret is not of even length")

	// ErrSharesUnequalLength is returned when shares passed to RecoverSecret differ in length.
	ErrSharesUnequalLength = errors.New("shamir: shares have unequal length")

	// ErrInvalidIndex is returned when a share index is outside [0, MaxShareCount).
	ErrInvalidIndex = errors.New("shamir: invalid share index")

	// ErrDuplicateIndex is returned when two shares have the same index.
	ErrDuplicateIndex = errors.New("shamir: duplicate share index")

	// ErrChecksumFailure is returned when the recovered secret does not match its digest.
	ErrChecksumFailure = errors.New("shamir: checksum failure")

	// ErrRandom is returned when the random source fails.
	ErrRandom = errors.New("shamir: random source failure")
)

// SplitSecret splits secret into shareCount shares, any threshold of which
// can be combined with RecoverSecret to reconstruct it. Randomness is read
// from rng.
//
// The share at position i of the result has index i.
func SplitSecret(threshold, shareCount int, secret []byte, rng io.Reader) ([][]byte, error) {
	if err := validateParameters(threshold, shareCount, len(secret)); err != nil {
		return nil, err
	}

	shares := make([][]byte, shareCount)

	if threshold == 1 {
		for i := range shares {
			shares[i] = make([]byte, len(secret))
			copy(shares[i], secret)
		}
		return shares, nil
	}

	xs := make([]byte, 0, threshold)
	ys := make([][]byte, 0, threshold)

	for i := 0; i < threshold-2; i++ {
		shares[i] = make([]byte, len(secret))
		if _, err := io.ReadFull(rng, shares[i]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandom, err)
		}
		xs = append(xs, byte(i))
		ys = append(ys, shares[i])
	}

	digest := make([]byte, len(secret))
	if _, err := io.ReadFull(rng, digest[digestLength:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandom, err)
	}
	copy(digest[:digestLength], createDigest(digest[digestLength:], secret))

	xs = append(xs, digestIndex, secretIndex)
	ys = append(ys, digest, secret)

	for i := threshold - 2; i < shareCount; i++ {
		share, err := interpolate(xs, ys, byte(i))
		if err != nil {
			return nil, err
		}
		shares[i] = share
	}

	return shares, nil
}

// RecoverSecret reconstructs a secret from shares and their indexes, as
// returned by SplitSecret. The number of shares is taken to be the threshold
// the secret was split with.
//
// For thresholds above 1 the embedded digest is verified, so too few or
// corrupted shares yield ErrChecksumFailure.
func RecoverSecret(indexes []int, shares [][]byte) ([]byte, error) {
	threshold := len(shares)
	if threshold == 0 || len(indexes) != threshold {
		return nil, ErrInvalidThreshold
	}

	shareLength := len(shares[0])
	if err := validateParameters(threshold, threshold, shareLength); err != nil {
		return nil, err
	}
	for _, share := range shares {
		if len(share) != shareLength {
			return nil, ErrSharesUnequalLength
		}
	}

	xs := make([]byte, threshold)
	for i, index := range indexes {
		if index < 0 || index >= MaxShareCount {
			return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
		}
		xs[i] = byte(index)
	}

	if threshold == 1 {
		secret := make([]byte, shareLength)
		copy(secret, shares[0])
		return secret, nil
	}

	digest, err := interpolate(xs, shares, digestIndex)
	if err != nil {
		return nil, err
	}
	secret, err := interpolate(xs, shares, secretIndex)
	if err != nil {
		return nil, err
	}

	expected := createDigest(digest[digestLength:], secret)
	if !hmac.Equal(digest[:digestLength], expected) {
		return nil, ErrChecksumFailure
	}

	return secret, nil
}

// createDigest returns the first four bytes of HMAC-SHA256(randomData, secret).
func createDigest(randomData, secret []byte) []byte {
	mac := hmac.New(sha256.New, randomData)
	mac.Write(secret)
	return mac.Sum(nil)[:digestLength]
}

func validateParameters(threshold, shareCount, secretLength int) error {
	switch {
	case shareCount > MaxShareCount:
		return ErrTooManyShares
	case threshold < 1 || threshold > shareCount:
		return ErrInvalidThreshold
	case secretLength > MaxSecretLen:
		return ErrSecretTooLong
	case secretLength < MinSecretLen:
		return ErrSecretTooShort
	case secretLength&1 != 0:
		return ErrSecretNotEvenLen
	}
	return nil
}
