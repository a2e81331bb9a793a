// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.

package sskr

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-sskr/internal/testutil"
)

// roundTrip generates a random spec and secret, picks a random quorum of
// shuffled shares and checks that they recombine.
func roundTrip(t *testing.T, rng io.Reader) {
	t.Helper()

	secretLen := testutil.IntInRange(t, rng, MinSecretLen, MaxSecretLen) &^ 1
	data := make([]byte, secretLen)
	_, err := io.ReadFull(rng, data)
	require.NoError(t, err)
	secret := mustSecret(t, data)

	groupCount := testutil.IntInRange(t, rng, 1, MaxGroupsCount)
	groups := make([]GroupSpec, groupCount)
	for i := range groups {
		count := testutil.IntInRange(t, rng, 1, MaxShareCount)
		threshold := testutil.IntInRange(t, rng, 1, count)
		groups[i] = mustGroup(t, threshold, count)
	}
	groupThreshold := testutil.IntInRange(t, rng, 1, groupCount)
	spec := mustSpec(t, groupThreshold, groups...)

	shares, err := GenerateUsing(spec, secret, rng)
	require.NoError(t, err)

	groupIndexes := make([]int, groupCount)
	for i := range groupIndexes {
		groupIndexes[i] = i
	}
	testutil.Shuffle(t, rng, groupIndexes)

	var selected [][]byte
	for _, groupIndex := range groupIndexes[:groupThreshold] {
		group := groups[groupIndex]
		memberIndexes := make([]int, group.MemberCount())
		for i := range memberIndexes {
			memberIndexes[i] = i
		}
		testutil.Shuffle(t, rng, memberIndexes)
		for _, memberIndex := range memberIndexes[:group.MemberThreshold()] {
			selected = append(selected, shares[groupIndex][memberIndex])
		}
	}
	testutil.Shuffle(t, rng, selected)

	recovered, err := Combine(selected)
	require.NoError(t, err, "spec %s, %d shares", spec, len(selected))
	assert.True(t, secret.Equal(recovered), "spec %s", spec)
}

func TestRoundTrip_RandomSpecs(t *testing.T) {
	iterations := 100
	if testing.Short() {
		iterations = 10
	}

	rng := testutil.SeededReader(t, "sskr round trip")
	for i := 0; i < iterations; i++ {
		roundTrip(t, rng)
	}
}

func FuzzParseShare(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x11, 0x00, 0x00, 0x00})
	f.Add(append([]byte{0x00, 0x11, 0x12, 0x01, 0x02}, make([]byte, 16)...))
	f.Add(append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}, make([]byte, 32)...))

	f.Fuzz(func(t *testing.T, data []byte) {
		share, err := ParseShare(data)
		if err != nil {
			assert.Equal(t, KindWire, KindOf(err))
			return
		}

		encoded, err := share.MarshalBinary()
		require.NoError(t, err)
		if !bytes.Equal(data, encoded) {
			t.Fatalf("re-encoding changed share: %x != %x", data, encoded)
		}
	})
}

func FuzzCombine(f *testing.F) {
	secret := bytes.Repeat([]byte{0x5A}, 16)
	spec, err := NewSpec(1, []GroupSpec{{threshold: 2, count: 3}})
	if err != nil {
		f.Fatal(err)
	}
	s, err := NewSecret(secret)
	if err != nil {
		f.Fatal(err)
	}
	shares, err := GenerateUsing(spec, s, testutil.FakeReader{})
	if err != nil {
		f.Fatal(err)
	}
	f.Add(shares[0][0], shares[0][1])
	f.Add(shares[0][2], shares[0][2])

	f.Fuzz(func(t *testing.T, a, b []byte) {
		recovered, err := Combine([][]byte{a, b})
		if err != nil {
			assert.NotEqual(t, KindUnknown, KindOf(err), err.Error())
			return
		}
		assert.Equal(t, len(a)-MetadataSizeBytes, recovered.Len())
	})
}
