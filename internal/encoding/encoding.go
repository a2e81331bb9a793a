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

// Package encoding provides textual envelopes for serialized shares and
// secrets.
//
// Shares can be written as plain hex, standard base64, or as hex-encoded
// CBOR carrying the binary share in a byte string under tag 40309
// (crypto-sskr). The legacy tag 309 is accepted when decoding.
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

const (
	// TagSSKRShare is the registered CBOR tag for an SSKR share.
	TagSSKRShare uint64 = 40309

	// TagSSKRShareLegacy is the tag used by early implementations.
	TagSSKRShareLegacy uint64 = 309
)

var (
	// ErrUnknownFormat is returned for an unrecognized format name.
	ErrUnknownFormat = errors.New("encoding: unknown format")

	// ErrInvalidEncoding is returned when input is not valid for its format.
	ErrInvalidEncoding = errors.New("encoding: invalid encoding")

	// ErrUnexpectedTag is returned when a CBOR envelope carries another tag.
	ErrUnexpectedTag = errors.New("encoding: unexpected CBOR tag")

	// ErrUnsupportedFormat is returned when a format does not apply to the data.
	ErrUnsupportedFormat = errors.New("encoding: format not supported for secrets")
)

// Format is a textual encoding.
type Format string

const (
	// FormatAuto detects the encoding when decoding.
	FormatAuto Format = ""
	// FormatHex is lowercase hexadecimal.
	FormatHex Format = "hex"
	// FormatBase64 is standard padded base64.
	FormatBase64 Format = "base64"
	// FormatCBOR is hex-encoded tagged CBOR.
	FormatCBOR Format = "cbor"
)

// Formats lists the formats accepted by ParseFormat.
var Formats = []Format{FormatHex, FormatBase64, FormatCBOR}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("encoding: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("encoding: CBOR decoder initialization failed: " + err.Error())
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == FormatAuto {
		return FormatHex, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// EncodeShare renders a serialized share in format f.
func EncodeShare(f Format, share []byte) (string, error) {
	switch f {
	case FormatHex, FormatAuto:
		return hex.EncodeToString(share), nil
	case FormatBase64:
		return base64.StdEncoding.EncodeToString(share), nil
	case FormatCBOR:
		data, err := MarshalShareCBOR(share)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(data), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// DecodeShare parses a share written by EncodeShare. With FormatAuto the
// encoding is detected: tagged CBOR first, then hex, then base64.
func DecodeShare(f Format, s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	switch f {
	case FormatHex:
		return decodeHex(s)
	case FormatBase64:
		return decodeBase64(s)
	case FormatCBOR:
		data, err := decodeHex(s)
		if err != nil {
			return nil, err
		}
		return UnmarshalShareCBOR(data)
	case FormatAuto:
		return DecodeShare(Detect(s), s)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Detect guesses the format of an encoded share.
func Detect(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))
	data, err := hex.DecodeString(s)
	if err != nil {
		return FormatBase64
	}
	if _, err := UnmarshalShareCBOR(data); err == nil {
		return FormatCBOR
	}
	return FormatHex
}

// EncodeSecret renders a secret in format f. Only hex and base64 apply.
func EncodeSecret(f Format, secret []byte) (string, error) {
	switch f {
	case FormatHex, FormatAuto:
		return hex.EncodeToString(secret), nil
	case FormatBase64:
		return base64.StdEncoding.EncodeToString(secret), nil
	case FormatCBOR:
		return "", ErrUnsupportedFormat
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// DecodeSecret parses a secret written by EncodeSecret. FormatAuto means hex.
func DecodeSecret(f Format, s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	switch f {
	case FormatHex, FormatAuto:
		return decodeHex(s)
	case FormatBase64:
		return decodeBase64(s)
	case FormatCBOR:
		return nil, ErrUnsupportedFormat
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// MarshalShareCBOR wraps a serialized share in a tagged CBOR byte string.
func MarshalShareCBOR(share []byte) ([]byte, error) {
	return encMode.Marshal(cbor.Tag{Number: TagSSKRShare, Content: share})
}

// UnmarshalShareCBOR extracts the serialized share from a tagged CBOR
// byte string.
func UnmarshalShareCBOR(data []byte) ([]byte, error) {
	var tag cbor.RawTag
	if err := decMode.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	if tag.Number != TagSSKRShare && tag.Number != TagSSKRShareLegacy {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedTag, tag.Number)
	}

	var share []byte
	if err := decMode.Unmarshal(tag.Content, &share); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return share, nil
}

// Diagnose returns the CBOR diagnostic notation of a hex-encoded envelope.
func Diagnose(s string) (string, error) {
	data, err := decodeHex(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return cbor.Diagnose(data)
}

func decodeHex(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %w", ErrInvalidEncoding, err)
	}
	return data, nil
}

func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %w", ErrInvalidEncoding, err)
	}
	return data, nil
}
