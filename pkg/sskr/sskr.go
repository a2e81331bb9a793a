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

import "github.com/jeremyhahn/go-sskr/pkg/crypto/shamir"

const (
	// MinSecretLen is the minimum length of a secret in bytes.
	MinSecretLen = shamir.MinSecretLen

	// MaxSecretLen is the maximum length of a secret in bytes.
	MaxSecretLen = shamir.MaxSecretLen

	// MaxShareCount is the maximum number of member shares in a group.
	MaxShareCount = shamir.MaxShareCount

	// MaxGroupsCount is the maximum number of groups in a Spec.
	MaxGroupsCount = MaxShareCount

	// MetadataSizeBytes is the size of the metadata prefix of a serialized share.
	MetadataSizeBytes = 5

	// MinSerializedSizeBytes is the size of the smallest valid serialized share.
	MinSerializedSizeBytes = MetadataSizeBytes + MinSecretLen
)
