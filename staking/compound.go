// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Compound folds the active emission into each given position:
//
//	reward = floor(amountStaked * emissionAmount / emission.amountStaked)
//
// and moves it to the next checkpoint. Operator reward and miner fee grow
// linearly with the number of positions.
//
// Outputs: emission, stakes in input order, incentive, executor.
func Compound(cfg *config.Config, emissionBox *box.Box, stakeBoxes []*box.Box, incentiveBox *box.Box, executor paideia.Tree) (*Result, error) {
	emission, err := ReadEmission(cfg, emissionBox)
	if err != nil {
		return nil, err
	}
	incentive, err := ReadIncentive(cfg, incentiveBox)
	if err != nil {
		return nil, err
	}
	n := uint64(len(stakeBoxes))
	if n == 0 {
		return nil, invalidConditions("no stake boxes to compound")
	}
	if n > emission.Stakers {
		return nil, invalidConditions("%d stake boxes, %d stakers left to compound", n, emission.Stakers)
	}

	seen := make(map[paideia.Bytes32]struct{}, n)
	positions := make([]*box.Box, 0, n)
	var total uint64
	for i, b := range stakeBoxes {
		if b.HasRef() {
			if _, dup := seen[b.ID()]; dup {
				return nil, invalidInput("stake box #%d given twice", i)
			}
			seen[b.ID()] = struct{}{}
		}
		position, err := ReadPosition(cfg, b)
		if err != nil {
			return nil, err
		}
		if position.Checkpoint != emission.Checkpoint {
			return nil, invalidConditions("stake box not on same checkpoint as emission box: %d != %d",
				position.Checkpoint, emission.Checkpoint)
		}
		reward, err := share(position.AmountStaked, emission.EmissionAmount, emission.AmountStaked)
		if err != nil {
			return nil, err
		}
		if position.AmountStaked, err = add("stake amount", position.AmountStaked, reward); err != nil {
			return nil, err
		}
		if total, err = add("compound rewards", total, reward); err != nil {
			return nil, err
		}
		position.Checkpoint++
		positions = append(positions, position.Box(cfg))
	}
	if total > emission.EmissionRemaining {
		return nil, invalidConditions("rewards %d exceed emission remaining %d", total, emission.EmissionRemaining)
	}
	emission.EmissionRemaining -= total
	emission.Stakers -= n

	p := cfg.Params()
	reward := p.BaseCompoundReward + p.VariableCompoundReward*n
	fee := p.BaseCompoundMinerFee + p.VariableCompoundMinerFee*n
	cost, err := add("compound cost", reward, fee)
	if err != nil {
		return nil, err
	}
	if incentive.Value < cost || incentive.Value-cost < paideia.MinBoxValue {
		return nil, invalidConditions("not enough incentive: %d, need %d", incentive.Value, cost+paideia.MinBoxValue)
	}
	incentive.Value -= cost

	outputs := make([]*box.Box, 0, n+3)
	outputs = append(outputs, emission.Box(cfg))
	outputs = append(outputs, positions...)
	outputs = append(outputs, incentive.Box(cfg), executorBox(executor, reward))

	inputs := make([]*box.Box, 0, n+2)
	inputs = append(inputs, emissionBox)
	inputs = append(inputs, stakeBoxes...)
	inputs = append(inputs, incentiveBox)

	logger.Debug("compound", "checkpoint", emission.Checkpoint, "positions", n, "rewards", total, "stakersLeft", emission.Stakers)
	return &Result{
		Action:  ActionCompound,
		Inputs:  inputs,
		Outputs: outputs,
		Fee:     fee,
	}, nil
}
