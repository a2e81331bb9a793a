// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.

package sskr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroupSpec(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		count     int
		want      error
	}{
		{"1-of-1", 1, 1, nil},
		{"3-of-5", 3, 5, nil},
		{"16-of-16", 16, 16, nil},
		{"zero count", 0, 0, ErrNotEnoughShares},
		{"negative count", 1, -1, ErrNotEnoughShares},
		{"count above limit", 1, 17, ErrTooManyShares},
		{"threshold above count", 3, 2, ErrGroupThresholdInvalid},
		{"zero threshold", 0, 3, ErrNotEnoughShares},
		{"negative threshold", -1, 3, ErrNotEnoughShares},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGroupSpec(tt.threshold, tt.count)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, KindConfig, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.threshold, g.MemberThreshold())
			assert.Equal(t, tt.count, g.MemberCount())
		})
	}
}

func TestNewSpec(t *testing.T) {
	g := mustGroup(t, 2, 3)
	seventeen := make([]GroupSpec, 17)
	for i := range seventeen {
		seventeen[i] = g
	}

	tests := []struct {
		name      string
		threshold int
		groups    []GroupSpec
		want      error
	}{
		{"single group", 1, []GroupSpec{g}, nil},
		{"sixteen groups", 16, seventeen[:16], nil},
		{"zero threshold", 0, []GroupSpec{g}, ErrNotEnoughShares},
		{"no groups", 1, nil, ErrGroupThresholdInvalid},
		{"threshold above count", 2, []GroupSpec{g}, ErrGroupThresholdInvalid},
		{"too many groups", 1, seventeen, ErrTooManyShares},
		{"too many groups high threshold", 17, seventeen, ErrTooManyShares},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSpec(tt.threshold, tt.groups)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.threshold, s.GroupThreshold())
			assert.Equal(t, len(tt.groups), s.GroupCount())
		})
	}
}

func TestSpec_Accessors(t *testing.T) {
	groups := []GroupSpec{mustGroup(t, 2, 3), mustGroup(t, 3, 5)}
	s := mustSpec(t, 2, groups...)

	assert.Equal(t, 2, s.GroupThreshold())
	assert.Equal(t, 2, s.GroupCount())
	assert.Equal(t, 8, s.ShareCount())
	assert.Equal(t, "2 of [2-of-3 3-of-5]", s.String())
	assert.Equal(t, groups, s.Groups())

	// Neither the input nor the returned slice alias the spec
	groups[0] = mustGroup(t, 1, 1)
	out := s.Groups()
	out[1] = mustGroup(t, 1, 1)
	assert.Equal(t, "2 of [2-of-3 3-of-5]", s.String())
}

func TestParseGroupSpec(t *testing.T) {
	tests := []struct {
		in        string
		threshold int
		count     int
		want      error
	}{
		{"2-of-3", 2, 3, nil},
		{" 3-OF-5 ", 3, 5, nil},
		{"1/1", 1, 1, nil},
		{"16 / 16", 16, 16, nil},
		{"", 0, 0, ErrGroupSpecSyntax},
		{"2of3", 0, 0, ErrGroupSpecSyntax},
		{"a-of-3", 0, 0, ErrGroupSpecSyntax},
		{"2-of-x", 0, 0, ErrGroupSpecSyntax},
		{"2/3/4", 0, 0, ErrGroupSpecSyntax},
		{"4-of-3", 0, 0, ErrGroupThresholdInvalid},
		{"0/3", 0, 0, ErrNotEnoughShares},
		{"2-of-17", 0, 0, ErrTooManyShares},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, err := ParseGroupSpec(tt.in)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, KindConfig, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.threshold, g.MemberThreshold())
			assert.Equal(t, tt.count, g.MemberCount())
		})
	}
}

func TestGroupSpec_StringRoundTrip(t *testing.T) {
	g := mustGroup(t, 7, 11)
	parsed, err := ParseGroupSpec(g.String())
	require.NoError(t, err)
	assert.Equal(t, g, parsed)
}
