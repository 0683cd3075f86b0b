// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package paideia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes32(t *testing.T) {
	const id = "b682ad9e8c56c5a0ba7fe2d3d9b2fbd40af989e8870628f4a03ae1022d36f091"

	plain, err := ParseBytes32(id)
	require.NoError(t, err)
	prefixed, err := ParseBytes32("0x" + id)
	require.NoError(t, err)
	assert.Equal(t, plain, prefixed)
	assert.Equal(t, id, plain.String())

	_, err = ParseBytes32(id[2:])
	assert.EqualError(t, err, "invalid length")
	_, err = ParseBytes32("zz" + id)
	assert.EqualError(t, err, "invalid prefix")

	assert.Panics(t, func() { MustParseBytes32("nope") })
}

func TestBytes32Text(t *testing.T) {
	encoded := `"00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	require.NoError(t, json.Unmarshal([]byte(encoded), &b))
	assert.Equal(t, BytesToBytes32([]byte("master")), b)

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, encoded, string(out))

	out, err = json.Marshal(&b)
	require.NoError(t, err)
	assert.Equal(t, encoded, string(out))
}

func TestBytesToBytes32(t *testing.T) {
	long := make([]byte, 40)
	long[39] = 7
	long[0] = 1
	b := BytesToBytes32(long)
	assert.Equal(t, byte(7), b[31])
	assert.False(t, b.IsZero())
	assert.True(t, Bytes32{}.IsZero())
}

func TestTree(t *testing.T) {
	tree := MustParseTree("0x0008cd02189359b825e96aa3c7af90c9958d85daf8f86358382db3306e024c5aeea1e8ec")
	assert.Equal(t, "0008cd02189359b825e96aa3c7af90c9958d85daf8f86358382db3306e024c5aeea1e8ec", tree.String())
	assert.Equal(t, Blake2b(tree), tree.Hash())
	assert.True(t, tree.Equal(Tree(append([]byte(nil), tree...))))
	assert.True(t, Tree(nil).IsEmpty())

	var decoded Tree
	require.NoError(t, decoded.UnmarshalText([]byte(tree.String())))
	assert.Equal(t, tree, decoded)

	_, err := ParseTree("xyz")
	assert.Error(t, err)
}

func TestBlake2b(t *testing.T) {
	data := []byte("paideia staking")
	assert.Equal(t, Blake2b(data), Blake2b(data[:7], data[7:]))
	assert.NotEqual(t, Blake2b(data), Blake2b(data[:7]))
}
