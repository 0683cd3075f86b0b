// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utxo_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/lvldb"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
	"github.com/paideiadao/paideia-contracts/test/datagen"
	"github.com/paideiadao/paideia-contracts/test/testchain"
	"github.com/paideiadao/paideia-contracts/utxo"
)

func newChain(t *testing.T, feeDenominator uint64) *testchain.Chain {
	c, err := testchain.New(feeDenominator)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func newLedger(t *testing.T) *utxo.Ledger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return utxo.New(db, nil, nil)
}

func transfer(t *testing.T, from *box.Box, to paideia.Tree, value uint64) *ledger.Transaction {
	tx, err := ledger.NewBuilder().
		Input(from).
		Output(box.NewBuilder().Value(value).Tree(to).Build()).
		Fee(paideia.MinBoxValue).
		ChangeTo(from.Tree()).
		Build()
	require.NoError(t, err)
	return tx
}

func TestSubmitMovesBoxes(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	alice, bob := datagen.RandomTree(), datagen.RandomTree()

	boxes, err := l.Genesis(box.NewBuilder().Value(10_000_000).Tree(alice).Build())
	require.NoError(t, err)
	funding := boxes[0]

	var notified []paideia.Bytes32
	l.Subscribe(func(tx *ledger.Transaction, _ time.Time) { notified = append(notified, tx.ID()) })
	waiter := l.Committed()

	tx := transfer(t, funding, bob, 4_000_000)
	require.NoError(t, l.Submit(ctx, tx))
	assert.Equal(t, []paideia.Bytes32{tx.ID()}, notified)
	select {
	case <-waiter.C():
	default:
		t.Fatal("commit not signalled")
	}

	_, err = l.Box(ctx, funding.ID())
	assert.True(t, ledger.IsNotFound(err))
	spender, err := l.SpentBy(ctx, funding.ID())
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), spender)

	got, err := l.ByTree(ctx, bob)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(4_000_000), got[0].Value())

	got, err = l.ByTree(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(5_000_000), got[0].Value())

	stored, err := l.Transaction(ctx, tx.ID())
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), stored.ID())
}

func TestSubmitRejects(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	alice := datagen.RandomTree()

	boxes, err := l.Genesis(box.NewBuilder().Value(10_000_000).Tree(alice).Build())
	require.NoError(t, err)

	tx := transfer(t, boxes[0], datagen.RandomTree(), 2_000_000)
	require.NoError(t, l.Submit(ctx, tx))

	t.Run("double spend", func(t *testing.T) {
		again := transfer(t, boxes[0], datagen.RandomTree(), 3_000_000)
		err := l.Submit(ctx, again)
		assert.True(t, errors.Is(err, utxo.ErrDoubleSpend))
		assert.True(t, ledger.IsRejected(err))
	})

	t.Run("unknown input", func(t *testing.T) {
		ghost := datagen.WithRandomRef(box.NewBuilder().Value(10_000_000).Tree(alice).Build())
		err := l.Submit(ctx, transfer(t, ghost, alice, 2_000_000))
		assert.True(t, errors.Is(err, utxo.ErrUnknownInput))
	})

	t.Run("forged input content", func(t *testing.T) {
		change := tx.Outputs()[1]
		forged := change.WithValue(change.Value() * 2).WithRef(tx.ID(), 1)
		err := l.Submit(ctx, transfer(t, forged, alice, 2_000_000))
		assert.True(t, ledger.IsRejected(err))
	})

	t.Run("genesis twice", func(t *testing.T) {
		again, err := l.Genesis(box.NewBuilder().Value(10_000_000).Tree(alice).Build())
		require.NoError(t, err)
		assert.NotEqual(t, boxes[0].ID(), again[0].ID())

		_, err = l.Genesis(box.NewBuilder().Value(1).Tree(alice).Build())
		assert.Error(t, err, "below minimum value")
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := l.Submit(cctx, transfer(t, tx.Outputs()[1], alice, 2_000_000))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStakingLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newChain(t, 100)
	cfg := c.Config()
	view := c.View()

	alice, bob := datagen.RandomTree(), datagen.RandomTree()
	aliceKey, err := c.Stake(ctx, alice, 1_000_000)
	require.NoError(t, err)
	_, err = c.Stake(ctx, bob, 3_000_000)
	require.NoError(t, err)

	_, state, err := view.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4_000_000), state.AmountStaked)
	assert.Equal(t, uint64(2), state.Stakers)

	// first emission is due at deployment start
	stateBox, _, err := view.State(ctx)
	require.NoError(t, err)
	poolBox, pool, err := view.Pool(ctx)
	require.NoError(t, err)
	emissionBox, _, err := view.Emission(ctx)
	require.NoError(t, err)
	incentives, err := view.Incentives(ctx)
	require.NoError(t, err)
	res, err := staking.Emit(cfg, stateBox, poolBox, emissionBox, incentives[0], c.Executor, c.Now())
	require.NoError(t, err)
	_, err = c.Apply(ctx, res)
	require.NoError(t, err)

	fee := pool.EmissionAmount / 100
	_, emission, err := view.Emission(ctx)
	require.NoError(t, err)
	assert.Equal(t, pool.EmissionAmount-fee, emission.EmissionRemaining)
	assert.Equal(t, uint64(2), emission.Stakers)

	// a second emit before compounding finishes is refused by the guard too
	stateBox, _, _ = view.State(ctx)
	poolBox, _, _ = view.Pool(ctx)
	emissionBox, _, _ = view.Emission(ctx)
	incentives, _ = view.Incentives(ctx)
	c.Advance(testchain.Cycle)
	_, err = staking.Emit(cfg, stateBox, poolBox, emissionBox, incentives[0], c.Executor, c.Now())
	assert.True(t, staking.IsInvalidTransactionConditions(err))

	stakes, err := view.Stakes(ctx)
	require.NoError(t, err)
	require.Len(t, stakes, 2)
	res, err = staking.Compound(cfg, emissionBox, stakes, incentives[0], c.Executor)
	require.NoError(t, err)
	_, err = c.Apply(ctx, res)
	require.NoError(t, err)

	_, emission, err = view.Emission(ctx)
	require.NoError(t, err)
	assert.Zero(t, emission.Stakers)

	_, alicePos, err := view.Stake(ctx, aliceKey)
	require.NoError(t, err)
	distributed := pool.EmissionAmount - fee
	assert.Equal(t, uint64(1_000_000)+distributed/4, alicePos.AmountStaked)

	// partial unstake through a proxy
	aliceBoxes, err := c.Ledger().ByToken(ctx, aliceKey)
	require.NoError(t, err)
	var keyBox, stakeBox *box.Box
	for _, b := range aliceBoxes {
		if b.Tree().Equal(alice) {
			keyBox = b
		} else {
			stakeBox = b
		}
	}
	require.NotNil(t, keyBox)
	require.Nil(t, stakeBox, "stake record does not hold the key")
	stakeBox, _, err = view.Stake(ctx, aliceKey)
	require.NoError(t, err)

	assets, err := staking.UnstakeProxyAssets(cfg, stakeBox, 500_000)
	require.NoError(t, err)
	wallet, err := c.Fund(alice, assets.NanoErgs, 0)
	require.NoError(t, err)
	res, err = staking.CreateUnstakeProxy(cfg, []*box.Box{wallet, keyBox}, stakeBox, 500_000, alice)
	require.NoError(t, err)
	outs, err := c.Apply(ctx, res)
	require.NoError(t, err)

	stateBox, _, _ = view.State(ctx)
	res, err = staking.Unstake(cfg, stateBox, stakeBox, outs[0], c.Executor)
	require.NoError(t, err)
	_, err = c.Apply(ctx, res)
	require.NoError(t, err)

	_, alicePos2, err := view.Stake(ctx, aliceKey)
	require.NoError(t, err)
	assert.Equal(t, alicePos.AmountStaked-500_000, alicePos2.AmountStaked)
	_, state, err = view.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), state.Stakers)
}

func TestGuardsProtectRecords(t *testing.T) {
	ctx := context.Background()
	c := newChain(t, 0)
	cfg := c.Config()
	thief := datagen.RandomTree()

	key, err := c.Stake(ctx, datagen.RandomTree(), 100_000)
	require.NoError(t, err)
	stakeBox, position, err := c.View().Stake(ctx, key)
	require.NoError(t, err)

	t.Run("steal stake", func(t *testing.T) {
		tx, err := ledger.NewBuilder().
			Input(stakeBox).
			Output(box.NewBuilder().
				Value(paideia.MinOutputValue).
				Tree(thief).
				Asset(cfg.StakeTokenID(), 1).
				Asset(cfg.StakedTokenID(), position.AmountStaked).
				Build()).
			ChangeTo(thief).
			Build()
		require.NoError(t, err)
		err = c.Ledger().Submit(ctx, tx)
		assert.True(t, ledger.IsRejected(err))

		_, err = c.Ledger().Box(ctx, stakeBox.ID())
		assert.NoError(t, err, "stake record still unspent")
	})

	t.Run("drain incentive", func(t *testing.T) {
		incentives, err := c.View().Incentives(ctx)
		require.NoError(t, err)
		tx, err := ledger.NewBuilder().
			Input(incentives[0]).
			Output(box.NewBuilder().Value(incentives[0].Value() - paideia.MinBoxValue).Tree(thief).Build()).
			Fee(paideia.MinBoxValue).
			Build()
		require.NoError(t, err)
		assert.True(t, ledger.IsRejected(c.Ledger().Submit(ctx, tx)))
	})

	t.Run("emit waits for compound", func(t *testing.T) {
		v := c.View()
		stateBox, _, _ := v.State(ctx)
		poolBox, _, _ := v.Pool(ctx)
		emissionBox, _, _ := v.Emission(ctx)
		incentives, _ := v.Incentives(ctx)
		res, err := staking.Emit(cfg, stateBox, poolBox, emissionBox, incentives[0], c.Executor, c.Now())
		require.NoError(t, err)
		_, err = c.Apply(ctx, res)
		require.NoError(t, err)

		stateBox, _, _ = v.State(ctx)
		poolBox, _, _ = v.Pool(ctx)
		emissionBox, _, _ = v.Emission(ctx)
		incentives, _ = v.Incentives(ctx)
		_, err = staking.Emit(cfg, stateBox, poolBox, emissionBox, incentives[0], c.Executor, c.Now().Add(testchain.Cycle))
		assert.True(t, staking.IsInvalidTransactionConditions(err))
	})

	t.Run("pool withdrawal with key", func(t *testing.T) {
		poolBox, pool, err := c.View().Pool(ctx)
		require.NoError(t, err)
		keyBox := c.Deployment().PoolKey
		tx, err := ledger.NewBuilder().
			Input(keyBox, poolBox).
			Output(box.NewBuilder().
				Value(paideia.MinOutputValue).
				Tree(c.Owner).
				Asset(cfg.StakedTokenID(), pool.Remaining).
				Build()).
			Fee(paideia.MinOutputValue).
			ChangeTo(c.Owner).
			Build()
		require.NoError(t, err)
		require.NoError(t, c.Ledger().Submit(ctx, tx))
	})
}
