// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package paideia

import (
	"encoding"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Bytes32 array of 32 bytes. Used for box ids, token ids and hashes.
type Bytes32 [32]byte

var (
	_ encoding.TextMarshaler   = Bytes32{}
	_ encoding.TextUnmarshaler = (*Bytes32)(nil)
)

// String returns the plain hex form, without prefix.
func (b Bytes32) String() string {
	return hex.EncodeToString(b[:])
}

// AbbrevString returns abbrev string presentation.
func (b Bytes32) AbbrevString() string {
	return fmt.Sprintf("%x…%x", b[:4], b[28:])
}

// Bytes returns byte slice form of Bytes32.
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero returns if Bytes32 has all zero bytes.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// MarshalText implements encoding.TextMarshaler.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes32) UnmarshalText(text []byte) error {
	parsed, err := ParseBytes32(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBytes32 converts hex string, with or without 0x prefix, into Bytes32.
func ParseBytes32(s string) (Bytes32, error) {
	switch len(s) {
	case 32 * 2:
	case 32*2 + 2:
		if strings.ToLower(s[:2]) != "0x" {
			return Bytes32{}, errors.New("invalid prefix")
		}
		s = s[2:]
	default:
		return Bytes32{}, errors.New("invalid length")
	}

	var b Bytes32
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// MustParseBytes32 converts hex string into Bytes32, panic on error.
func MustParseBytes32(s string) Bytes32 {
	b32, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b32
}

// BytesToBytes32 converts bytes slice into Bytes32.
// If b is larger than Bytes32 length, b will be cropped (from the left).
// If b is smaller than Bytes32 length, b will be extended (from the left).
func BytesToBytes32(b []byte) (b32 Bytes32) {
	if len(b) > len(b32) {
		b = b[len(b)-len(b32):]
	}
	copy(b32[len(b32)-len(b):], b)
	return
}
