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
	"encoding"
	"encoding/binary"
	"fmt"
)

var (
	_ encoding.BinaryMarshaler   = Share{}
	_ encoding.BinaryUnmarshaler = (*Share)(nil)
)

// Share is one member share of one group. It carries all the metadata
// needed to combine it with its siblings.
type Share struct {
	identifier      uint16
	groupIndex      int
	groupThreshold  int
	groupCount      int
	memberIndex     int
	memberThreshold int
	value           Secret
}

// Identifier returns the random identifier shared by all shares of one run.
func (s Share) Identifier() uint16 { return s.identifier }

// GroupIndex returns the position of the share's group in the Spec.
func (s Share) GroupIndex() int { return s.groupIndex }

// GroupThreshold returns the number of groups needed to recover the secret.
func (s Share) GroupThreshold() int { return s.groupThreshold }

// GroupCount returns the number of groups in the Spec.
func (s Share) GroupCount() int { return s.groupCount }

// MemberIndex returns the position of the share within its group.
func (s Share) MemberIndex() int { return s.memberIndex }

// MemberThreshold returns the number of shares needed to recover the group secret.
func (s Share) MemberThreshold() int { return s.memberThreshold }

// Value returns the share value.
func (s Share) Value() Secret { return s.value }

// MarshalBinary encodes the share in the SSKR wire format. Fields are
// masked to four bits; range checking is the job of Spec and GroupSpec.
func (s Share) MarshalBinary() ([]byte, error) {
	out := make([]byte, MetadataSizeBytes, MetadataSizeBytes+s.value.Len())

	gt := byte(s.groupThreshold-1) & 0xf
	gc := byte(s.groupCount-1) & 0xf
	gi := byte(s.groupIndex) & 0xf
	mt := byte(s.memberThreshold-1) & 0xf
	mi := byte(s.memberIndex) & 0xf

	binary.BigEndian.PutUint16(out[0:2], s.identifier)
	out[2] = gt<<4 | gc
	out[3] = gi<<4 | mt
	out[4] = mi

	return append(out, s.value.data...), nil
}

// UnmarshalBinary decodes a share in the SSKR wire format into s.
func (s *Share) UnmarshalBinary(data []byte) error {
	share, err := ParseShare(data)
	if err != nil {
		return err
	}
	*s = share
	return nil
}

// ParseShare decodes a share in the SSKR wire format. All errors are
// returned as *ParseError.
func ParseShare(data []byte) (Share, error) {
	if len(data) < MetadataSizeBytes {
		return Share{}, &ParseError{Err: ErrShareLengthInvalid}
	}

	groupThreshold := int(data[2]>>4) + 1
	groupCount := int(data[2]&0xf) + 1
	if groupThreshold > groupCount {
		return Share{}, &ParseError{Err: ErrGroupThresholdInvalid}
	}

	if data[4]>>4 != 0 {
		return Share{}, &ParseError{Err: ErrShareReservedBitsInvalid}
	}

	value, err := NewSecret(data[MetadataSizeBytes:])
	if err != nil {
		return Share{}, &ParseError{Err: err}
	}

	return Share{
		identifier:      binary.BigEndian.Uint16(data[0:2]),
		groupIndex:      int(data[3] >> 4),
		groupThreshold:  groupThreshold,
		groupCount:      groupCount,
		memberIndex:     int(data[4] & 0xf),
		memberThreshold: int(data[3]&0xf) + 1,
		value:           value,
	}, nil
}

// String describes the share metadata. The value is never included.
func (s Share) String() string {
	return fmt.Sprintf("share %04x group %d (%d of %d) member %d (threshold %d), %d bytes",
		s.identifier, s.groupIndex, s.groupThreshold, s.groupCount,
		s.memberIndex, s.memberThreshold, s.value.Len())
}
