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

// Package sskr implements Sharded Secret Key Reconstruction.
//
// A secret is split into groups, and each group's intermediate secret is split
// again into member shares. Recovering the secret requires a quorum of groups,
// and every group that counts toward that quorum needs its own quorum of
// member shares.
//
// # Topology
//
// A Spec describes the split: a group threshold and an ordered list of
// GroupSpec values, each a member threshold and member count. Both levels are
// limited to 16 entries, the range a 4-bit wire field can carry.
//
//	g0, _ := sskr.NewGroupSpec(2, 3) // group 0: any 2 of 3
//	g1, _ := sskr.NewGroupSpec(3, 5) // group 1: any 3 of 5
//	spec, _ := sskr.NewSpec(2, []sskr.GroupSpec{g0, g1})
//
// # Wire format
//
// Every share is five metadata bytes followed by the share value:
//
//	byte 0-1  identifier (big endian)
//	byte 2    (groupThreshold-1)<<4 | (groupCount-1)
//	byte 3    groupIndex<<4 | (memberThreshold-1)
//	byte 4    0000 | memberIndex
//	byte 5..  value
//
// The identifier is random per generation run and lets Combine reject shares
// drawn from different runs.
//
// # Combining
//
// Combine accepts shares in any order. Shares beyond a group's member
// threshold are ignored. Groups that never reach their member threshold are
// ignored as well, and Combine fails with ErrNotEnoughGroups only when fewer
// than groupThreshold groups are complete.
//
// The single-level splitting itself is delegated to package shamir.
package sskr
