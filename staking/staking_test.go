// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/test/datagen"
)

const cycle = uint64(24 * time.Hour / time.Millisecond)

var genesisTime = time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	cfg  *config.Config
	exec paideia.Tree
	user paideia.Tree
}

func newFixture(feeDenominator uint64) *fixture {
	cfg := config.NewBuilder().
		Tokens(datagen.RandomHash(), datagen.RandomHash(), datagen.RandomHash(),
			datagen.RandomHash(), datagen.RandomHash(), datagen.RandomHash()).
		StakedToken("Paideia", 4).
		EmitFee(feeDenominator, config.DefaultEmitFeeTree).
		MustBuild()
	return &fixture{
		cfg:  cfg,
		exec: datagen.RandomTree(),
		user: datagen.RandomTree(),
	}
}

type record interface {
	Box(cfg *config.Config) *box.Box
}

// utxo returns the record as an unspent ledger box.
func (f *fixture) utxo(r record) *box.Box {
	return datagen.WithRandomRef(r.Box(f.cfg))
}

func (f *fixture) state(amount uint64, checkpoint int64, stakers uint64) State {
	return State{
		AmountStaked:   amount,
		Checkpoint:     checkpoint,
		Stakers:        stakers,
		CheckpointTime: uint64(genesisTime.UnixMilli()),
		CycleDuration:  cycle,
		Value:          paideia.MinBoxValue,
	}
}

func (f *fixture) position(amount uint64, checkpoint int64) Position {
	return Position{
		Checkpoint:   checkpoint,
		StakeTime:    uint64(genesisTime.UnixMilli()),
		AmountStaked: amount,
		StakeKey:     datagen.RandomHash(),
		Value:        paideia.StakeBoxValue,
	}
}

// proxyUTXO places a freshly built proxy on the ledger.
func (f *fixture) proxyUTXO(t *testing.T) func(*box.Box, error) *box.Box {
	return func(b *box.Box, err error) *box.Box {
		require.NoError(t, err)
		return datagen.WithRandomRef(b)
	}
}

// apply commits res the way a ledger would: it builds and verifies the
// transaction, runs the contract guards and returns the created boxes.
func (f *fixture) apply(t *testing.T, res *Result, now time.Time) []*box.Box {
	t.Helper()
	tx, err := res.Transaction()
	require.NoError(t, err)
	require.NoError(t, ledger.Verify(tx))
	require.NoError(t, f.check(tx, now))
	action, ok := Classify(f.cfg, tx)
	require.True(t, ok)
	require.Equal(t, res.Action, action)
	return tx.Outputs()
}

func (f *fixture) check(tx *ledger.Transaction, now time.Time) error {
	guards := Guards(f.cfg)
	for i, in := range tx.Inputs() {
		if g, ok := guards[in.Tree().Hash()]; ok {
			if err := g.Check(&ledger.GuardContext{Tx: tx, Index: i, Now: now}); err != nil {
				return err
			}
		}
	}
	return nil
}

func TestStakeEmitCompoundUnstake(t *testing.T) {
	tests := []struct {
		name           string
		feeDenominator uint64
		distributed    uint64
	}{
		{"no emission fee", 0, 293_000},
		{"emission fee", 100, 290_070},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.feeDenominator)
			cfg := f.cfg

			stateBox := f.utxo(f.state(0, 0, 0))
			poolBox := f.utxo(Pool{EmissionAmount: 293_000, Remaining: 100_000_000, Value: paideia.MinBoxValue})
			emissionBox := f.utxo(Emission{Checkpoint: -1, Value: paideia.EmissionValue})
			incentiveBox := f.utxo(Incentive{Value: 1_000_000_000})

			// stake
			proxy := f.proxyUTXO(t)(NewStakeProxy(cfg, 200_000, f.user, genesisTime))
			res, err := Stake(cfg, stateBox, proxy, f.exec)
			require.NoError(t, err)
			outs := f.apply(t, res, genesisTime)
			state, err := ReadState(cfg, outs[0])
			require.NoError(t, err)
			assert.Equal(t, uint64(200_000), state.AmountStaked)
			assert.Equal(t, uint64(1), state.Stakers)
			assert.Equal(t, paideia.MaxStakeTokens-1, outs[0].Asset(cfg.StakeTokenID()))
			position, err := ReadPosition(cfg, outs[1])
			require.NoError(t, err)
			assert.Equal(t, res.StakeKey, position.StakeKey)
			assert.Equal(t, uint64(1), outs[2].Asset(position.StakeKey))
			stateBox, stakeBox := outs[0], outs[1]

			// emit
			_, err = Emit(cfg, stateBox, poolBox, emissionBox, incentiveBox, f.exec, genesisTime)
			assert.True(t, IsInvalidTransactionConditions(err))

			now := genesisTime.Add(24 * time.Hour)
			res, err = Emit(cfg, stateBox, poolBox, emissionBox, incentiveBox, f.exec, now)
			require.NoError(t, err)
			outs = f.apply(t, res, now)
			state, err = ReadState(cfg, outs[0])
			require.NoError(t, err)
			assert.Equal(t, int64(1), state.Checkpoint)
			emission, err := ReadEmission(cfg, outs[2])
			require.NoError(t, err)
			assert.Equal(t, tt.distributed, emission.EmissionRemaining)
			assert.Equal(t, int64(0), emission.Checkpoint)
			assert.Equal(t, uint64(1), emission.Stakers)
			stateBox, emissionBox, incentiveBox = outs[0], outs[2], outs[len(outs)-2]

			// compound
			res, err = Compound(cfg, emissionBox, []*box.Box{stakeBox}, incentiveBox, f.exec)
			require.NoError(t, err)
			outs = f.apply(t, res, now)
			position, err = ReadPosition(cfg, outs[1])
			require.NoError(t, err)
			assert.Equal(t, 200_000+tt.distributed, position.AmountStaked)
			assert.Equal(t, int64(1), position.Checkpoint)
			emission, err = ReadEmission(cfg, outs[0])
			require.NoError(t, err)
			assert.Zero(t, emission.Stakers)
			assert.Zero(t, emission.EmissionRemaining)
			stakeBox = outs[1]

			// unstake everything
			proxy = f.proxyUTXO(t)(NewUnstakeProxy(cfg, stakeBox, position.AmountStaked, f.user))
			res, err = Unstake(cfg, stateBox, stakeBox, proxy, f.exec)
			require.NoError(t, err)
			outs = f.apply(t, res, now)
			require.Len(t, outs, 4)
			state, err = ReadState(cfg, outs[0])
			require.NoError(t, err)
			assert.Zero(t, state.Stakers)
			assert.Zero(t, state.AmountStaked)
			assert.Equal(t, paideia.MaxStakeTokens, outs[0].Asset(cfg.StakeTokenID()))
			assert.Equal(t, 200_000+tt.distributed, outs[1].Asset(cfg.StakedTokenID()))
			assert.False(t, outs[1].Assets().Has(position.StakeKey))
			assert.Equal(t, box.Assets{{ID: position.StakeKey, Amount: 1}}, res.Burn)
		})
	}
}
