// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package box

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/paideia"
)

var (
	nft    = paideia.Blake2b([]byte("nft"))
	staked = paideia.Blake2b([]byte("staked"))
	tree   = paideia.Tree{0x00, 0x08, 0xcd, 0x02}
)

func newStakeLike() *Box {
	return NewBuilder().
		Value(paideia.MinBoxValue).
		Tree(tree).
		Asset(nft, 1).
		Asset(staked, 200_000).
		Asset(staked, 0).
		Register(Longs(0, 1652544797403)).
		Register(Bytes(nft[:])).
		Build()
}

func TestBuilder(t *testing.T) {
	b := newStakeLike()

	assert.Equal(t, paideia.MinBoxValue, b.Value())
	assert.Equal(t, tree, b.Tree())
	assert.Equal(t, Assets{{nft, 1}, {staked, 200_000}}, b.Assets())
	assert.Equal(t, uint64(200_000), b.Asset(staked))
	assert.Equal(t, uint64(0), b.Asset(paideia.Bytes32{}))

	r4, ok := b.Register(R4)
	require.True(t, ok)
	assert.Equal(t, []int64{0, 1652544797403}, r4.Longs())
	assert.Nil(t, r4.Bytes())
	r5, ok := b.Register(5)
	require.True(t, ok)
	assert.Equal(t, nft[:], r5.Bytes())
	_, ok = b.Register(6)
	assert.False(t, ok)
	_, ok = b.Register(3)
	assert.False(t, ok)

	assert.NoError(t, b.Validate())
}

func TestID(t *testing.T) {
	b := newStakeLike()
	assert.False(t, b.HasRef())
	assert.True(t, b.ID().IsZero())

	txID := paideia.Blake2b([]byte("tx"))
	out0 := b.WithRef(txID, 0)
	out1 := b.WithRef(txID, 1)
	assert.True(t, out0.HasRef())
	assert.Equal(t, Ref{txID, 1}, out1.Ref())
	assert.False(t, out0.ID().IsZero())
	assert.NotEqual(t, out0.ID(), out1.ID())
	assert.Equal(t, out0.ID(), b.WithRef(txID, 0).ID())
	assert.True(t, out0.SameContent(out1))
	assert.False(t, out0.SameContent(out0.WithValue(2*paideia.MinBoxValue)))
}

func TestWith(t *testing.T) {
	b := newStakeLike().WithRef(paideia.Bytes32{1}, 0)

	nb := b.WithValue(5).WithTree(paideia.Tree{1}).WithAssets(Assets{{staked, 7}}).WithRegisters(Longs(9))
	assert.False(t, nb.HasRef())
	assert.Equal(t, uint64(5), nb.Value())
	assert.Equal(t, paideia.Tree{1}, nb.Tree())
	assert.Equal(t, uint64(7), nb.Asset(staked))
	r4, _ := nb.Register(R4)
	assert.Equal(t, []int64{9}, r4.Longs())

	// source untouched
	assert.Equal(t, paideia.MinBoxValue, b.Value())
	assert.Equal(t, uint64(1), b.Asset(nft))
}

func TestRLP(t *testing.T) {
	b := NewBuilder().
		Value(3 * paideia.MinBoxValue).
		Tree(tree).
		Asset(nft, 1).
		Register(Longs(-1, 0, 5)).
		Mint("Paideia Stake Key", "{}", 0).
		Build().
		WithRef(paideia.Blake2b([]byte("tx")), 3)

	data, err := rlp.EncodeToBytes(b)
	require.NoError(t, err)

	var decoded Box
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, b.ID(), decoded.ID())
	assert.True(t, b.SameContent(&decoded))

	r4, _ := decoded.Register(R4)
	assert.Equal(t, []int64{-1, 0, 5}, r4.Longs())
	name, _ := decoded.Register(5)
	assert.Equal(t, "Paideia Stake Key", string(name.Bytes()))
	dec, _ := decoded.Register(7)
	assert.Equal(t, "0", string(dec.Bytes()))

	candidate := NewBuilder().Value(paideia.MinBoxValue).Tree(tree).Build()
	data, err = rlp.EncodeToBytes(candidate)
	require.NoError(t, err)
	var decodedCandidate Box
	require.NoError(t, rlp.DecodeBytes(data, &decodedCandidate))
	assert.False(t, decodedCandidate.HasRef())
}

func TestValidate(t *testing.T) {
	assert.ErrorContains(t, NewBuilder().Value(1).Tree(tree).Build().Validate(), "below minimum")
	assert.ErrorContains(t, NewBuilder().Value(paideia.MinBoxValue).Build().Validate(), "empty tree")
	assert.ErrorContains(t,
		NewBuilder().Value(paideia.MinBoxValue).Tree(tree).Asset(nft, 1).Asset(nft, 2).Build().Validate(),
		"duplicated id")

	b := NewBuilder().Value(paideia.MinBoxValue).Tree(tree)
	for range MaxRegisters + 1 {
		b.Register(Longs(1))
	}
	assert.ErrorContains(t, b.Build().Validate(), "too many registers")
}

func TestBalance(t *testing.T) {
	a := NewBuilder().Value(paideia.MinBoxValue).Tree(tree).Asset(nft, 1).Asset(staked, 10).Build()
	b := NewBuilder().Value(paideia.MinBoxValue).Tree(tree).Asset(staked, 5).Build()

	bal, err := BalanceOf(a, b)
	require.NoError(t, err)
	assert.Equal(t, Balance{nft: 1, staked: 15}, bal)
	assert.True(t, bal.Covers(Assets{{staked, 15}}))
	assert.False(t, bal.Covers(Assets{{staked, 16}}))

	assert.Error(t, bal.Add(Assets{{staked, ^uint64(0)}}))
}
