// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package paideia

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// Tree is the serialized guarding script of a box. A box is owned by
// whoever can satisfy its tree; the staking contracts are identified by the
// hash of their trees.
type Tree []byte

// ParseTree decodes a hex encoded tree, 0x prefix optional.
func ParseTree(s string) (Tree, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Tree(b), nil
}

// MustParseTree decodes a hex encoded tree, panic on error.
func MustParseTree(s string) Tree {
	t, err := ParseTree(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tree) String() string {
	return hex.EncodeToString(t)
}

// Hash returns blake2b-256 of the tree bytes.
func (t Tree) Hash() Bytes32 {
	return Blake2b(t)
}

// Equal reports whether two trees are byte-identical.
func (t Tree) Equal(other Tree) bool {
	return bytes.Equal(t, other)
}

func (t Tree) IsEmpty() bool {
	return len(t) == 0
}

// MarshalText implements encoding.TextMarshaler.
func (t Tree) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tree) UnmarshalText(text []byte) error {
	parsed, err := ParseTree(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
