// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.

package sskr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeremyhahn/go-sskr/pkg/crypto/shamir"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{errors.New("other"), KindUnknown},
		{ErrNotEnoughShares, KindConfig},
		{ErrTooManyShares, KindConfig},
		{ErrGroupThresholdInvalid, KindConfig},
		{ErrGroupSpecSyntax, KindConfig},
		{ErrSecretTooShort, KindSecret},
		{ErrSecretTooLong, KindSecret},
		{ErrSecretLengthNotEven, KindSecret},
		{ErrShareLengthInvalid, KindWire},
		{ErrShareReservedBitsInvalid, KindWire},
		{&ParseError{Err: ErrGroupThresholdInvalid}, KindWire},
		{&ParseError{Err: ErrSecretTooLong}, KindWire},
		{fmt.Errorf("share 3: %w", &ParseError{Err: ErrSecretTooShort}), KindWire},
		{ErrSharesEmpty, KindQuorum},
		{ErrShareSetInvalid, KindQuorum},
		{ErrMemberThresholdInvalid, KindQuorum},
		{ErrDuplicateMemberIndex, KindQuorum},
		{fmt.Errorf("%w: have 1, need 2", ErrNotEnoughGroups), KindQuorum},
		{fmt.Errorf("%w: %w", ErrShamir, shamir.ErrChecksumFailure), KindShamir},
		{fmt.Errorf("%w: %w", ErrShamir, shamir.ErrRandom), KindRandom},
		{ErrRandom, KindRandom},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "config", KindConfig.String())
	assert.Equal(t, "wire", KindWire.String())
	assert.Equal(t, "quorum", KindQuorum.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestParseError_Unwrap(t *testing.T) {
	err := error(&ParseError{Err: ErrShareLengthInvalid})
	assert.ErrorIs(t, err, ErrShareLengthInvalid)
	assert.Equal(t, ErrShareLengthInvalid.Error(), err.Error())
}
