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

package sskr

import (
	"errors"

	"github.com/jeremyhahn/go-sskr/pkg/crypto/shamir"
)

// Spec errors
var (
	// ErrNotEnoughShares indicates a zero threshold or an empty group.
	ErrNotEnoughShares = errors.New("sskr: not enough shares")

	// ErrTooManyShares indicates more than 16 groups or members.
	ErrTooManyShares = errors.New("sskr: too many shares")

	// ErrGroupThresholdInvalid indicates a threshold larger than its count.
	ErrGroupThresholdInvalid = errors.New("sskr: invalid group threshold")

	// ErrGroupSpecSyntax indicates a group spec string could not be parsed.
	ErrGroupSpecSyntax = errors.New("sskr: invalid group spec syntax")
)

// Secret errors
var (
	// ErrSecretTooShort indicates a secret shorter than MinSecretLen.
	ErrSecretTooShort = errors.New("sskr: secret is too short")

	// ErrSecretTooLong indicates a secret longer than MaxSecretLen.
	ErrSecretTooLong = errors.New("sskr: secret is too long")

	// ErrSecretLengthNotEven indicates a secret of odd length.
	ErrSecretLengthNotEven = errors.New("sskr: secret is not of even length")
)

// Wire errors
var (
	// ErrShareLengthInvalid indicates a serialized share shorter than its metadata.
	ErrShareLengthInvalid = errors.New("sskr: invalid share length")

	// ErrShareReservedBitsInvalid indicates non-zero reserved metadata bits.
	ErrShareReservedBitsInvalid = errors.New("sskr: invalid reserved bits")
)

// Combine errors
var (
	// ErrSharesEmpty indicates Combine was called without shares.
	ErrSharesEmpty = errors.New("sskr: empty share set")

	// ErrShareSetInvalid indicates shares from different runs or specs.
	ErrShareSetInvalid = errors.New("sskr: invalid share set")

	// ErrMemberThresholdInvalid indicates shares of one group disagree on the member threshold.
	ErrMemberThresholdInvalid = errors.New("sskr: invalid member threshold")

	// ErrDuplicateMemberIndex indicates the same member share was supplied twice.
	ErrDuplicateMemberIndex = errors.New("sskr: duplicate member index")

	// ErrNotEnoughGroups indicates fewer complete groups than the group threshold.
	ErrNotEnoughGroups = errors.New("sskr: not enough groups")
)

var (
	// ErrShamir wraps errors returned by the single-level split and recover.
	ErrShamir = errors.New("sskr: shamir")

	// ErrRandom indicates the random source failed.
	ErrRandom = errors.New("sskr: random source failure")
)

// ParseError is returned when a serialized share cannot be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Kind classifies an error returned by this package.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfig is an invalid Spec or GroupSpec.
	KindConfig
	// KindSecret is a secret of invalid length.
	KindSecret
	// KindWire is a malformed serialized share.
	KindWire
	// KindQuorum is a share set that cannot satisfy the quorum.
	KindQuorum
	// KindShamir is an error from the single-level primitive.
	KindShamir
	// KindRandom is a failing random source.
	KindRandom
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindConfig:  "config",
	KindSecret:  "secret",
	KindWire:    "wire",
	KindQuorum:  "quorum",
	KindShamir:  "shamir",
	KindRandom:  "random",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// KindOf reports the Kind of err. Any error from ParseShare is KindWire,
// including secret length errors of the share value.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var parseErr *ParseError
	switch {
	case errors.As(err, &parseErr):
		return KindWire
	case errors.Is(err, ErrRandom), errors.Is(err, shamir.ErrRandom):
		return KindRandom
	case errors.Is(err, ErrShamir):
		return KindShamir
	case errors.Is(err, ErrNotEnoughShares),
		errors.Is(err, ErrTooManyShares),
		errors.Is(err, ErrGroupThresholdInvalid),
		errors.Is(err, ErrGroupSpecSyntax):
		return KindConfig
	case errors.Is(err, ErrSecretTooShort),
		errors.Is(err, ErrSecretTooLong),
		errors.Is(err, ErrSecretLengthNotEven):
		return KindSecret
	case errors.Is(err, ErrShareLengthInvalid),
		errors.Is(err, ErrShareReservedBitsInvalid):
		return KindWire
	case errors.Is(err, ErrSharesEmpty),
		errors.Is(err, ErrShareSetInvalid),
		errors.Is(err, ErrMemberThresholdInvalid),
		errors.Is(err, ErrDuplicateMemberIndex),
		errors.Is(err, ErrNotEnoughGroups):
		return KindQuorum
	}
	return KindUnknown
}
