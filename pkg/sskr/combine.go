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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jeremyhahn/go-sskr/pkg/crypto/shamir"
)

// memberGroup collects the member shares of one group during Combine.
type memberGroup struct {
	index     int
	threshold int
	seen      mapset.Set[int]
	indexes   []int
	values    [][]byte
}

func newMemberGroup(index, threshold int) *memberGroup {
	return &memberGroup{
		index:     index,
		threshold: threshold,
		seen:      mapset.NewThreadUnsafeSetWithSize[int](MaxShareCount),
	}
}

func (g *memberGroup) complete() bool {
	return g.threshold > 0 && len(g.indexes) >= g.threshold
}

// Combine parses serialized shares and recovers the secret. Shares may be
// given in any order and may belong to any mix of groups. A share that
// fails to parse aborts the call.
func Combine(shares [][]byte) (Secret, error) {
	parsed := make([]Share, len(shares))
	for i, data := range shares {
		share, err := ParseShare(data)
		if err != nil {
			return Secret{}, fmt.Errorf("share %d: %w", i, err)
		}
		parsed[i] = share
	}
	return CombineShares(parsed)
}

// CombineShares recovers the secret from decoded shares.
//
// All shares must agree with the first on identifier, group threshold,
// group count and value length. Within a group, shares beyond the member
// threshold are ignored, and groups that never reach their member threshold
// do not count toward the group threshold.
func CombineShares(shares []Share) (Secret, error) {
	if len(shares) == 0 {
		return Secret{}, ErrSharesEmpty
	}

	ref := shares[0]
	var groups []*memberGroup
	byIndex := make(map[int]*memberGroup)

	for i, share := range shares {
		if share.identifier != ref.identifier ||
			share.groupThreshold != ref.groupThreshold ||
			share.groupCount != ref.groupCount ||
			share.value.Len() != ref.value.Len() {
			return Secret{}, fmt.Errorf("%w: share %d does not match share 0", ErrShareSetInvalid, i)
		}

		group, ok := byIndex[share.groupIndex]
		if !ok {
			group = newMemberGroup(share.groupIndex, share.memberThreshold)
			byIndex[share.groupIndex] = group
			groups = append(groups, group)
		} else if share.memberThreshold != group.threshold {
			return Secret{}, fmt.Errorf("%w: group %d", ErrMemberThresholdInvalid, share.groupIndex)
		}

		if group.seen.Contains(share.memberIndex) {
			return Secret{}, fmt.Errorf("%w: group %d member %d",
				ErrDuplicateMemberIndex, share.groupIndex, share.memberIndex)
		}
		if len(group.indexes) < group.threshold {
			group.seen.Add(share.memberIndex)
			group.indexes = append(group.indexes, share.memberIndex)
			group.values = append(group.values, share.value.data)
		}
	}

	complete := make([]*memberGroup, 0, len(groups))
	for _, group := range groups {
		if group.complete() {
			complete = append(complete, group)
		}
	}
	if len(complete) < ref.groupThreshold {
		return Secret{}, fmt.Errorf("%w: have %d complete, need %d",
			ErrNotEnoughGroups, len(complete), ref.groupThreshold)
	}
	complete = complete[:ref.groupThreshold]

	groupIndexes := make([]int, len(complete))
	groupSecrets := make([][]byte, len(complete))
	for i, group := range complete {
		recovered, err := shamir.RecoverSecret(group.indexes, group.values)
		if err != nil {
			return Secret{}, fmt.Errorf("%w: group %d: %w", ErrShamir, group.index, err)
		}
		groupSecret, err := NewSecret(recovered)
		if err != nil {
			return Secret{}, fmt.Errorf("group %d: %w", group.index, err)
		}
		groupIndexes[i] = group.index
		groupSecrets[i] = groupSecret.data
	}

	master, err := shamir.RecoverSecret(groupIndexes, groupSecrets)
	if err != nil {
		return Secret{}, fmt.Errorf("%w: %w", ErrShamir, err)
	}
	return NewSecret(master)
}
