// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.

package sskr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-sskr/internal/testutil"
)

var secretComparer = cmp.Comparer(func(a, b Secret) bool { return a.Equal(b) })

func TestShare_MarshalLayout(t *testing.T) {
	value := mustSecret(t, bytes.Repeat([]byte{0xAB}, 16))
	share := Share{
		identifier:      0xBEEF,
		groupIndex:      3,
		groupThreshold:  2,
		groupCount:      5,
		memberIndex:     9,
		memberThreshold: 4,
		value:           value,
	}

	data, err := share.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, MetadataSizeBytes+16)

	assert.Equal(t, []byte{0xBE, 0xEF, 0x14, 0x33, 0x09}, data[:MetadataSizeBytes])
	assert.Equal(t, value.Bytes(), data[MetadataSizeBytes:])

	parsed, err := ParseShare(data)
	require.NoError(t, err)
	if diff := cmp.Diff(share, parsed, cmp.AllowUnexported(Share{}), secretComparer); diff != "" {
		t.Errorf("parsed share mismatch (-want +got):\n%s", diff)
	}
}

func TestShare_MarshalLimits(t *testing.T) {
	share := Share{
		identifier:      0xFFFF,
		groupIndex:      15,
		groupThreshold:  16,
		groupCount:      16,
		memberIndex:     15,
		memberThreshold: 16,
		value:           mustSecret(t, make([]byte, 32)),
	}

	data, err := share.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}, data[:MetadataSizeBytes])

	parsed, err := ParseShare(data)
	require.NoError(t, err)
	assert.Equal(t, 16, parsed.GroupThreshold())
	assert.Equal(t, 16, parsed.GroupCount())
	assert.Equal(t, 15, parsed.GroupIndex())
	assert.Equal(t, 16, parsed.MemberThreshold())
	assert.Equal(t, 15, parsed.MemberIndex())
}

func TestParseShare_Errors(t *testing.T) {
	valid := append([]byte{0x00, 0x11, 0x12, 0x01, 0x02}, make([]byte, 16)...)

	mutate := func(f func([]byte) []byte) []byte {
		return f(bytes.Clone(valid))
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrShareLengthInvalid},
		{"four bytes", valid[:4], ErrShareLengthInvalid},
		{"metadata only", valid[:MetadataSizeBytes], ErrSecretTooShort},
		{"truncated value", valid[:len(valid)-2], ErrSecretTooShort},
		{"odd value", append(bytes.Clone(valid), 0x00), ErrSecretLengthNotEven},
		{"value too long", append(bytes.Clone(valid), make([]byte, 18)...), ErrSecretTooLong},
		{"group threshold above count", mutate(func(b []byte) []byte { b[2] = 0x20; return b }), ErrGroupThresholdInvalid},
		{"reserved bits", mutate(func(b []byte) []byte { b[4] |= 0x10; return b }), ErrShareReservedBitsInvalid},
		{"all reserved bits", mutate(func(b []byte) []byte { b[4] |= 0xF0; return b }), ErrShareReservedBitsInvalid},
		// Checked in order: group threshold before reserved bits before value
		{"threshold before reserved", mutate(func(b []byte) []byte { b[2] = 0x20; b[4] |= 0x10; return b[:7] }), ErrGroupThresholdInvalid},
		{"reserved before value", mutate(func(b []byte) []byte { b[4] |= 0x10; return b[:7] }), ErrShareReservedBitsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShare(tt.data)
			require.ErrorIs(t, err, tt.want)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, KindWire, KindOf(err))
		})
	}
}

func TestShare_UnmarshalBinary(t *testing.T) {
	spec := mustSpec(t, 2, mustGroup(t, 2, 3), mustGroup(t, 3, 5))
	groups, err := GenerateShares(spec, randomSecret(t, 32), testutil.SeededReader(t, "unmarshal"))
	require.NoError(t, err)

	for _, members := range groups {
		for _, want := range members {
			data, err := want.MarshalBinary()
			require.NoError(t, err)

			var got Share
			require.NoError(t, got.UnmarshalBinary(data))
			if diff := cmp.Diff(want, got, cmp.AllowUnexported(Share{}), secretComparer); diff != "" {
				t.Errorf("share mismatch (-want +got):\n%s", diff)
			}
		}
	}

	var s Share
	err = s.UnmarshalBinary([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrShareLengthInvalid)
	assert.Equal(t, Share{}, s)
}

func TestShare_StringOmitsValue(t *testing.T) {
	value := bytes.Repeat([]byte("zq"), 8)
	share := Share{
		identifier:      0x0011,
		groupThreshold:  1,
		groupCount:      1,
		memberThreshold: 1,
		value:           mustSecret(t, value),
	}
	assert.Equal(t, "share 0011 group 0 (1 of 1) member 0 (threshold 1), 16 bytes", share.String())
	assert.NotContains(t, share.String(), string(value))
}
