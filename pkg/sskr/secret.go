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
	"crypto/subtle"
	"fmt"
)

// Secret is an immutable byte string of even length between MinSecretLen
// and MaxSecretLen. It is used for master secrets, group secrets and share
// values alike.
type Secret struct {
	data []byte
}

// NewSecret copies data into a Secret after validating its length.
func NewSecret(data []byte) (Secret, error) {
	switch n := len(data); {
	case n < MinSecretLen:
		return Secret{}, ErrSecretTooShort
	case n > MaxSecretLen:
		return Secret{}, ErrSecretTooLong
	case n&1 != 0:
		return Secret{}, ErrSecretLengthNotEven
	}

	s := Secret{data: make([]byte, len(data))}
	copy(s.data, data)
	return s, nil
}

// Bytes returns a copy of the secret.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Len returns the length of the secret in bytes.
func (s Secret) Len() int {
	return len(s.data)
}

// Equal reports whether s and other hold the same bytes, in constant time
// for secrets of equal length.
func (s Secret) Equal(other Secret) bool {
	return subtle.ConstantTimeCompare(s.data, other.data) == 1
}

// String never includes the secret bytes.
func (s Secret) String() string {
	return fmt.Sprintf("Secret(%d bytes)", len(s.data))
}

// GoString never includes the secret bytes.
func (s Secret) GoString() string {
	return s.String()
}
