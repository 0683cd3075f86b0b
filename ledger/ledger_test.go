// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/paideia"
)

var (
	userTree  = paideia.Tree{0x00, 0x08, 0xcd, 0x01}
	otherTree = paideia.Tree{0x00, 0x08, 0xcd, 0x02}
	tokenA    = paideia.Blake2b([]byte("token-a"))
)

func utxo(value uint64, tree paideia.Tree, index uint16, assets ...box.Asset) *box.Box {
	return box.NewBuilder().Value(value).Tree(tree).Assets(assets).Build().
		WithRef(paideia.Blake2b([]byte("genesis")), index)
}

func TestBuilderChange(t *testing.T) {
	in := utxo(10_000_000, userTree, 0, box.Asset{ID: tokenA, Amount: 100})
	out := box.NewBuilder().Value(3_000_000).Tree(otherTree).Asset(tokenA, 40).Build()

	tx, err := NewBuilder().Input(in).Output(out).Fee(1_000_000).ChangeTo(userTree).Build()
	require.NoError(t, err)
	require.NoError(t, Verify(tx))

	outs := tx.Outputs()
	require.Len(t, outs, 2)
	assert.Equal(t, uint64(6_000_000), outs[1].Value())
	assert.Equal(t, uint64(60), outs[1].Asset(tokenA))
	assert.True(t, outs[1].Tree().Equal(userTree))
	assert.Equal(t, tx.ID(), outs[0].Ref().TxID)
	assert.Equal(t, uint16(1), outs[1].Ref().Index)
}

func TestBuilderDustToFee(t *testing.T) {
	in := utxo(4_000_500, userTree, 0)
	out := box.NewBuilder().Value(3_000_000).Tree(otherTree).Build()

	tx, err := NewBuilder().Input(in).Output(out).Fee(1_000_000).ChangeTo(userTree).Build()
	require.NoError(t, err)
	assert.Len(t, tx.Outputs(), 1)
	assert.Equal(t, uint64(1_000_500), tx.Fee())
	assert.NoError(t, Verify(tx))
}

func TestBuilderErrors(t *testing.T) {
	in := utxo(10_000_000, userTree, 0, box.Asset{ID: tokenA, Amount: 5})
	candidate := box.NewBuilder().Value(10_000_000).Tree(userTree).Build()

	_, err := NewBuilder().Build()
	assert.Error(t, err)

	_, err = NewBuilder().Input(candidate).Build()
	assert.Error(t, err, "candidate input")

	_, err = NewBuilder().Input(in, in).Output(box.NewBuilder().Value(1_000_000).Tree(otherTree).Build()).ChangeTo(userTree).Build()
	assert.Error(t, err, "double spend")

	_, err = NewBuilder().Input(in).Output(box.NewBuilder().Value(20_000_000).Tree(otherTree).Build()).Build()
	assert.Error(t, err, "not enough value")

	_, err = NewBuilder().Input(in).Output(box.NewBuilder().Value(1_000_000).Tree(otherTree).Asset(tokenA, 6).Build()).ChangeTo(userTree).Build()
	assert.Error(t, err, "not enough tokens")

	_, err = NewBuilder().Input(in).Output(box.NewBuilder().Value(1_000_000).Tree(otherTree).Build()).Build()
	assert.Error(t, err, "leftover without change tree")

	_, err = NewBuilder().Input(in).Output(box.NewBuilder().Value(9_000_000).Tree(otherTree).Build()).Fee(999_000).ChangeTo(userTree).Build()
	assert.Error(t, err, "leftover tokens without enough value")
}

func TestMintAndBurn(t *testing.T) {
	in := utxo(10_000_000, userTree, 0, box.Asset{ID: tokenA, Amount: 5})
	minted := box.NewBuilder().Value(1_000_000).Tree(userTree).Asset(in.ID(), 1).Mint("key", "", 0).Build()

	tx, err := NewBuilder().Input(in).Output(minted).Fee(1_000_000).Burn(box.Assets{{ID: tokenA, Amount: 5}}).ChangeTo(userTree).Build()
	require.NoError(t, err)
	assert.NoError(t, Verify(tx))
	assert.Equal(t, in.ID(), tx.MintID())

	other := paideia.Blake2b([]byte("other"))
	bad := box.NewBuilder().Value(1_000_000).Tree(userTree).Asset(other, 1).Build()
	_, err = NewBuilder().Input(in).Output(bad).ChangeTo(userTree).Build()
	assert.Error(t, err)
}

func TestVerifyRejects(t *testing.T) {
	in := utxo(10_000_000, userTree, 0)
	out := box.NewBuilder().Value(9_000_000).Tree(otherTree).Build()

	tx := &Transaction{body: body{Inputs: []*box.Box{in}, Outputs: []*box.Box{out}, Fee: 500_000}}
	err := Verify(tx)
	require.Error(t, err)
	assert.True(t, IsRejected(err))

	tx = &Transaction{body: body{Inputs: []*box.Box{in}, Outputs: []*box.Box{out}, Fee: 1_000_000, Burn: box.Assets{{ID: tokenA, Amount: 1}}}}
	assert.True(t, IsRejected(Verify(tx)))

	tx = &Transaction{body: body{Inputs: []*box.Box{in, in}, Outputs: []*box.Box{out}, Fee: 11_000_000}}
	assert.True(t, IsRejected(Verify(tx)))
}

func TestTransactionRLP(t *testing.T) {
	in := utxo(10_000_000, userTree, 3, box.Asset{ID: tokenA, Amount: 7})
	tx, err := NewBuilder().Input(in).Output(box.NewBuilder().Value(9_000_000).Tree(otherTree).Asset(tokenA, 7).Build()).Fee(1_000_000).Build()
	require.NoError(t, err)

	data, err := rlp.EncodeToBytes(tx)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, tx.ID(), decoded.ID())
	assert.Equal(t, tx.InputIDs(), decoded.InputIDs())
	assert.Equal(t, tx.Fee(), decoded.Fee())
}

func TestGuardFunc(t *testing.T) {
	in := utxo(10_000_000, userTree, 0)
	tx, err := NewBuilder().Input(in).Output(box.NewBuilder().Value(9_000_000).Tree(otherTree).Build()).Fee(1_000_000).Build()
	require.NoError(t, err)

	var seen *box.Box
	g := GuardFunc(func(ctx *GuardContext) error {
		seen = ctx.Box()
		return Reject("locked")
	})
	err = g.Check(&GuardContext{Tx: tx, Index: 0})
	assert.True(t, IsRejected(err))
	assert.Equal(t, in.ID(), seen.ID())
	assert.Equal(t, "locked", err.(*RejectError).Reason())
}
