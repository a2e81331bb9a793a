// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.

package sskr

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustGroup(t testing.TB, threshold, count int) GroupSpec {
	t.Helper()
	g, err := NewGroupSpec(threshold, count)
	require.NoError(t, err)
	return g
}

func mustSpec(t testing.TB, groupThreshold int, groups ...GroupSpec) Spec {
	t.Helper()
	s, err := NewSpec(groupThreshold, groups)
	require.NoError(t, err)
	return s
}

func mustSecret(t testing.TB, data []byte) Secret {
	t.Helper()
	s, err := NewSecret(data)
	require.NoError(t, err)
	return s
}

func randomSecret(t testing.TB, n int) Secret {
	t.Helper()
	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)
	return mustSecret(t, data)
}

// pick selects shares[group][member] for each {group, member} pair.
func pick(shares [][][]byte, refs ...[2]int) [][]byte {
	out := make([][]byte, len(refs))
	for i, ref := range refs {
		out[i] = shares[ref[0]][ref[1]]
	}
	return out
}

func flatten(shares [][][]byte) [][]byte {
	var out [][]byte
	for _, group := range shares {
		out = append(out, group...)
	}
	return out
}
