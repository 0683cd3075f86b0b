// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"time"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Emit advances the checkpoint and moves one emission from the pool to the
// emission record. Reward left unclaimed by the previous emission is dust
// and returns to the pool.
//
// Outputs: stake state, stake pool, emission, emission fee (when charged),
// incentive, executor.
func Emit(cfg *config.Config, stateBox, poolBox, emissionBox, incentiveBox *box.Box, executor paideia.Tree, now time.Time) (*Result, error) {
	state, err := ReadState(cfg, stateBox)
	if err != nil {
		return nil, err
	}
	pool, err := ReadPool(cfg, poolBox)
	if err != nil {
		return nil, err
	}
	emission, err := ReadEmission(cfg, emissionBox)
	if err != nil {
		return nil, err
	}
	incentive, err := ReadIncentive(cfg, incentiveBox)
	if err != nil {
		return nil, err
	}

	if ms := now.UnixMilli(); ms < 0 || uint64(ms) < state.NextEmissionTime() {
		return nil, invalidConditions("emission time not reached yet")
	}
	if emission.Stakers > 0 {
		return nil, invalidConditions("previous emission not finished yet")
	}

	fee := cfg.EmitFee(pool.EmissionAmount)
	distributable := pool.EmissionAmount - fee
	dust := emission.EmissionRemaining

	if pool.Remaining < pool.EmissionAmount {
		return nil, invalidConditions("stake pool depleted: %d remaining, %d per emission", pool.Remaining, pool.EmissionAmount)
	}
	if pool.Remaining, err = add("pool remaining", pool.Remaining-pool.EmissionAmount, dust); err != nil {
		return nil, err
	}

	next := Emission{
		EmissionRemaining: distributable,
		AmountStaked:      state.AmountStaked,
		Checkpoint:        state.Checkpoint,
		Stakers:           state.Stakers,
		EmissionAmount:    distributable,
		Value:             emission.Value,
	}

	if state.AmountStaked, err = add("amount staked", state.AmountStaked, distributable); err != nil {
		return nil, err
	}
	if state.AmountStaked, err = sub("amount staked", state.AmountStaked, dust); err != nil {
		return nil, err
	}
	state.Checkpoint++
	if state.CheckpointTime, err = add("checkpoint time", state.CheckpointTime, state.CycleDuration); err != nil {
		return nil, err
	}

	p := cfg.Params()
	cost := p.EmitReward + p.EmitMinerFee
	outputs := []*box.Box{state.Box(cfg), pool.Box(cfg), next.Box(cfg)}
	if fee > 0 {
		cost += paideia.EmissionFeeValue
		outputs = append(outputs, box.NewBuilder().
			Value(paideia.EmissionFeeValue).
			Tree(cfg.EmitFeeTree()).
			Asset(cfg.StakedTokenID(), fee).
			Build())
	}
	if incentive.Value < cost || incentive.Value-cost < paideia.MinBoxValue {
		return nil, invalidConditions("not enough incentive: %d, need %d", incentive.Value, cost+paideia.MinBoxValue)
	}
	incentive.Value -= cost
	outputs = append(outputs, incentive.Box(cfg), executorBox(executor, p.EmitReward))

	logger.Debug("emit",
		"checkpoint", state.Checkpoint,
		"distributable", distributable,
		"fee", fee,
		"dust", dust,
		"stakers", next.Stakers,
		"poolRemaining", pool.Remaining,
	)
	return &Result{
		Action:  ActionEmit,
		Inputs:  []*box.Box{stateBox, poolBox, emissionBox, incentiveBox},
		Outputs: outputs,
		Fee:     p.EmitMinerFee,
	}, nil
}
