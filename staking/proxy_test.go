// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/test/datagen"
)

func TestAssetsRequired(t *testing.T) {
	f := newFixture(100)
	position := f.position(10_000, 0)
	stakeBox := f.utxo(position)

	stake, err := StakeProxyAssets(f.cfg, 5_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(116_000_000), stake.NanoErgs)
	assert.Equal(t, box.Assets{{ID: f.cfg.StakedTokenID(), Amount: 5_000}}, stake.Tokens)

	add, err := AddStakeProxyAssets(f.cfg, stakeBox, 2_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(25_000_000), add.NanoErgs)
	assert.Equal(t, box.Assets{
		{ID: position.StakeKey, Amount: 1},
		{ID: f.cfg.StakedTokenID(), Amount: 2_000},
	}, add.Tokens)

	partial, err := UnstakeProxyAssets(f.cfg, stakeBox, 4_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(115_000_000), partial.NanoErgs)
	assert.Equal(t, box.Assets{{ID: position.StakeKey, Amount: 1}}, partial.Tokens)

	full, err := UnstakeProxyAssets(f.cfg, stakeBox, 50_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(114_000_000), full.NanoErgs)

	_, err = StakeProxyAssets(f.cfg, 10)
	assert.True(t, IsInvalidTransactionConditions(err))
	_, err = AddStakeProxyAssets(f.cfg, f.utxo(Incentive{Value: 1_000_000}), 2_000)
	assert.True(t, IsInvalidInputBox(err))
}

func TestProxyRoundTrip(t *testing.T) {
	f := newFixture(100)
	stakeBox := f.utxo(f.position(10_000, 0))

	b, err := NewStakeProxy(f.cfg, 5_000, f.user, genesisTime)
	require.NoError(t, err)
	sp, err := ReadStakeProxy(f.cfg, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), sp.Amount)
	assert.Equal(t, uint64(genesisTime.UnixMilli()), sp.StakeTime)
	assert.True(t, sp.UserTree.Equal(f.user))

	b, err = NewAddStakeProxy(f.cfg, stakeBox, 2_000, f.user)
	require.NoError(t, err)
	ap, err := ReadAddStakeProxy(f.cfg, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000), ap.Amount)

	b, err = NewUnstakeProxy(f.cfg, stakeBox, 3_000, f.user)
	require.NoError(t, err)
	up, err := ReadUnstakeProxy(f.cfg, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000), up.Amount)

	_, err = ReadUnstakeProxy(f.cfg, stakeBox)
	assert.True(t, IsInvalidInputBox(err))
}

func TestCreateStakeProxy(t *testing.T) {
	f := newFixture(100)
	other := datagen.RandomHash()
	wallet := datagen.WithRandomRef(box.NewBuilder().
		Value(200_000_000).
		Tree(f.user).
		Asset(f.cfg.StakedTokenID(), 10_000).
		Asset(other, 3).
		Build())

	res, err := CreateStakeProxy(f.cfg, []*box.Box{wallet}, 5_000, f.user, genesisTime)
	require.NoError(t, err)
	tx, err := res.Transaction()
	require.NoError(t, err)
	require.NoError(t, ledger.Verify(tx))

	outs := tx.Outputs()
	require.Len(t, outs, 2)
	_, err = ReadStakeProxy(f.cfg, outs[0])
	require.NoError(t, err)
	change := outs[1]
	assert.True(t, change.Tree().Equal(f.user))
	assert.Equal(t, uint64(200_000_000-116_000_000), change.Value())
	assert.Equal(t, uint64(5_000), change.Asset(f.cfg.StakedTokenID()))
	assert.Equal(t, uint64(3), change.Asset(other))

	_, err = CreateStakeProxy(f.cfg, []*box.Box{wallet}, 10_001, f.user, genesisTime)
	assert.True(t, IsInvalidTransactionConditions(err), "not enough tokens")

	poor := datagen.WithRandomRef(box.NewBuilder().Value(50_000_000).Tree(f.user).Asset(f.cfg.StakedTokenID(), 10_000).Build())
	_, err = CreateStakeProxy(f.cfg, []*box.Box{poor}, 5_000, f.user, genesisTime)
	assert.True(t, IsInvalidTransactionConditions(err), "not enough erg")
}

func TestCreateUnstakeProxyClamps(t *testing.T) {
	f := newFixture(100)
	position := f.position(10_000, 0)
	stakeBox := f.utxo(position)
	wallet := datagen.WithRandomRef(box.NewBuilder().
		Value(200_000_000).
		Tree(f.user).
		Asset(position.StakeKey, 1).
		Build())

	res, err := CreateUnstakeProxy(f.cfg, []*box.Box{wallet}, stakeBox, 50_000, f.user)
	require.NoError(t, err)
	proxy, err := ReadUnstakeProxy(f.cfg, res.Outputs[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), proxy.Amount)
	assert.Equal(t, unstakeProxyValue(f.cfg.Params(), true), proxy.Value)

	_, err = CreateUnstakeProxy(f.cfg, []*box.Box{datagen.WithRandomRef(box.NewBuilder().Value(200_000_000).Tree(f.user).Build())}, stakeBox, 1_000, f.user)
	assert.True(t, IsInvalidTransactionConditions(err), "stake key missing")

	res, err = CreateAddStakeProxy(f.cfg, []*box.Box{wallet}, stakeBox, 1_000, f.user)
	assert.True(t, IsInvalidTransactionConditions(err), "staked tokens missing")
	assert.Nil(t, res)
}
