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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-sskr/pkg/crypto/rand"
	"github.com/jeremyhahn/go-sskr/pkg/crypto/shamir"
)

// Generate splits secret according to spec using the default secure random
// source. The result holds one slice of serialized shares per group, in
// group and member order.
func Generate(spec Spec, secret Secret) ([][][]byte, error) {
	return GenerateUsing(spec, secret, rand.Default())
}

// GenerateUsing is Generate with an explicit random source. A nil rng
// selects the default source.
func GenerateUsing(spec Spec, secret Secret, rng io.Reader) ([][][]byte, error) {
	groups, err := GenerateShares(spec, secret, rng)
	if err != nil {
		return nil, err
	}

	result := make([][][]byte, len(groups))
	for i, members := range groups {
		result[i] = make([][]byte, len(members))
		for j, share := range members {
			data, err := share.MarshalBinary()
			if err != nil {
				return nil, err
			}
			result[i][j] = data
		}
	}
	return result, nil
}

// GenerateShares is GenerateUsing without serialization.
//
// Randomness is consumed in a fixed order: two bytes of identifier, then the
// group level split, then each group's member split in group order.
func GenerateShares(spec Spec, secret Secret, rng io.Reader) ([][]Share, error) {
	if rng == nil {
		rng = rand.Default()
	}

	var id [2]byte
	if _, err := io.ReadFull(rng, id[:]); err != nil {
		return nil, fmt.Errorf("%w: identifier: %w", ErrRandom, err)
	}
	identifier := binary.BigEndian.Uint16(id[:])

	groupSecrets, err := shamir.SplitSecret(spec.groupThreshold, len(spec.groups), secret.data, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: groups: %w", ErrShamir, err)
	}

	result := make([][]Share, len(spec.groups))
	for groupIndex, group := range spec.groups {
		memberSecrets, err := shamir.SplitSecret(group.threshold, group.count, groupSecrets[groupIndex], rng)
		if err != nil {
			return nil, fmt.Errorf("%w: group %d: %w", ErrShamir, groupIndex, err)
		}

		members := make([]Share, len(memberSecrets))
		for memberIndex, memberSecret := range memberSecrets {
			value, err := NewSecret(memberSecret)
			if err != nil {
				return nil, fmt.Errorf("group %d member %d: %w", groupIndex, memberIndex, err)
			}
			members[memberIndex] = Share{
				identifier:      identifier,
				groupIndex:      groupIndex,
				groupThreshold:  spec.groupThreshold,
				groupCount:      len(spec.groups),
				memberIndex:     memberIndex,
				memberThreshold: group.threshold,
				value:           value,
			}
		}
		result[groupIndex] = members
	}

	return result, nil
}
