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
	"strconv"
	"strings"
)

// GroupSpec describes one group: any MemberThreshold of MemberCount member
// shares recover the group secret.
type GroupSpec struct {
	threshold int
	count     int
}

// NewGroupSpec validates and returns a group of count members with the
// given threshold.
func NewGroupSpec(threshold, count int) (GroupSpec, error) {
	switch {
	case count <= 0:
		return GroupSpec{}, ErrNotEnoughShares
	case count > MaxShareCount:
		return GroupSpec{}, ErrTooManyShares
	case threshold > count:
		return GroupSpec{}, ErrGroupThresholdInvalid
	case threshold <= 0:
		return GroupSpec{}, ErrNotEnoughShares
	}
	return GroupSpec{threshold: threshold, count: count}, nil
}

// ParseGroupSpec parses "T-of-N" or "T/N", for example "2-of-3".
func ParseGroupSpec(s string) (GroupSpec, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	var sep string
	switch {
	case strings.Contains(s, "-of-"):
		sep = "-of-"
	case strings.Contains(s, "/"):
		sep = "/"
	default:
		return GroupSpec{}, fmt.Errorf("%w: %q", ErrGroupSpecSyntax, s)
	}

	left, right, _ := strings.Cut(s, sep)
	threshold, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return GroupSpec{}, fmt.Errorf("%w: %q: threshold: %w", ErrGroupSpecSyntax, s, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return GroupSpec{}, fmt.Errorf("%w: %q: count: %w", ErrGroupSpecSyntax, s, err)
	}

	return NewGroupSpec(threshold, count)
}

// MemberThreshold returns the number of member shares needed.
func (g GroupSpec) MemberThreshold() int {
	return g.threshold
}

// MemberCount returns the number of member shares generated.
func (g GroupSpec) MemberCount() int {
	return g.count
}

func (g GroupSpec) String() string {
	return fmt.Sprintf("%d-of-%d", g.threshold, g.count)
}

// Spec describes a full split: any GroupThreshold of the groups recover the
// secret. The position of a group in Groups is its group index.
type Spec struct {
	groupThreshold int
	groups         []GroupSpec
}

// NewSpec validates and returns a Spec. The groups slice is copied.
func NewSpec(groupThreshold int, groups []GroupSpec) (Spec, error) {
	switch {
	case groupThreshold <= 0:
		return Spec{}, ErrNotEnoughShares
	case groupThreshold > len(groups):
		return Spec{}, ErrGroupThresholdInvalid
	case len(groups) > MaxGroupsCount:
		return Spec{}, ErrTooManyShares
	}

	s := Spec{
		groupThreshold: groupThreshold,
		groups:         make([]GroupSpec, len(groups)),
	}
	copy(s.groups, groups)
	return s, nil
}

// GroupThreshold returns the number of groups needed.
func (s Spec) GroupThreshold() int {
	return s.groupThreshold
}

// Groups returns a copy of the group specs in group index order.
func (s Spec) Groups() []GroupSpec {
	out := make([]GroupSpec, len(s.groups))
	copy(out, s.groups)
	return out
}

// GroupCount returns the number of groups.
func (s Spec) GroupCount() int {
	return len(s.groups)
}

// ShareCount returns the total number of member shares across all groups.
func (s Spec) ShareCount() int {
	total := 0
	for _, g := range s.groups {
		total += g.count
	}
	return total
}

func (s Spec) String() string {
	parts := make([]string, len(s.groups))
	for i, g := range s.groups {
		parts[i] = g.String()
	}
	return fmt.Sprintf("%d of [%s]", s.groupThreshold, strings.Join(parts, " "))
}
