// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Stake opens a position from a stake proxy. The stake key is minted with
// the id of the stake state box, which is spent first.
//
// Outputs: stake state, stake, user key, incentive, executor.
func Stake(cfg *config.Config, stateBox, proxyBox *box.Box, executor paideia.Tree) (*Result, error) {
	state, err := ReadState(cfg, stateBox)
	if err != nil {
		return nil, err
	}
	proxy, err := ReadStakeProxy(cfg, proxyBox)
	if err != nil {
		return nil, err
	}
	if !stateBox.HasRef() {
		return nil, invalidInput("stake state is not a ledger box")
	}
	if state.Stakers >= paideia.MaxStakeTokens {
		return nil, invalidConditions("no stake tokens left")
	}
	if state.AmountStaked, err = add("amount staked", state.AmountStaked, proxy.Amount); err != nil {
		return nil, err
	}
	state.Stakers++

	key := stateBox.ID()
	position := Position{
		Checkpoint:   state.Checkpoint,
		StakeTime:    proxy.StakeTime,
		AmountStaked: proxy.Amount,
		StakeKey:     key,
		Value:        paideia.StakeBoxValue,
	}
	userOutput := box.NewBuilder().
		Value(paideia.UserOutputValue).
		Tree(proxy.UserTree).
		Asset(key, 1).
		Mint(cfg.StakedTokenName()+" Stake Key", stakeKeyDescription(cfg, proxy), paideia.StakeKeyDecimals).
		Build()

	p := cfg.Params()
	logger.Debug("stake", "key", key.AbbrevString(), "amount", proxy.Amount, "stakers", state.Stakers)
	return &Result{
		Action: ActionStake,
		Inputs: []*box.Box{stateBox, proxyBox},
		Outputs: []*box.Box{
			state.Box(cfg),
			position.Box(cfg),
			userOutput,
			Incentive{Value: p.ProxyToStakingIncentive}.Box(cfg),
			executorBox(executor, p.ProxyExecutorReward),
		},
		Fee:      p.ProxyMinerFee,
		StakeKey: key,
	}, nil
}

func stakeKeyDescription(cfg *config.Config, proxy StakeProxy) string {
	stakeTime := time.UnixMilli(int64(proxy.StakeTime)).UTC().Format("2006-01-02 15:04:05.000000")
	return fmt.Sprintf(`{"originalAmountStaked": %s, "stakeTime": "%s"}`,
		formatAmount(proxy.Amount, cfg.StakedTokenDecimals()), stakeTime)
}

// formatAmount renders base units as a decimal token amount.
func formatAmount(amount uint64, decimals int) string {
	s := strconv.FormatUint(amount, 10)
	if decimals <= 0 {
		return s
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	whole, frac := s[:len(s)-decimals], strings.TrimRight(s[len(s)-decimals:], "0")
	if frac == "" {
		frac = "0"
	}
	return whole + "." + frac
}

// readTarget reads the stake state and the position a proxy operates on,
// and checks they are on the same checkpoint.
func readTarget(cfg *config.Config, stateBox, stakeBox *box.Box, key paideia.Bytes32) (State, Position, error) {
	state, err := ReadState(cfg, stateBox)
	if err != nil {
		return State{}, Position{}, err
	}
	position, err := ReadPosition(cfg, stakeBox)
	if err != nil {
		return State{}, Position{}, err
	}
	if key != position.StakeKey {
		return State{}, Position{}, invalidInput("proxy stake key %v does not match stake box", key.AbbrevString())
	}
	if position.Checkpoint != state.Checkpoint {
		return State{}, Position{}, invalidConditions("stake box checkpoint %d does not match stake state checkpoint %d",
			position.Checkpoint, state.Checkpoint)
	}
	return state, position, nil
}

// AddStake adds the proxy amount to an existing position.
//
// Outputs: stake state, stake, user key, incentive, executor.
func AddStake(cfg *config.Config, stateBox, stakeBox, proxyBox *box.Box, executor paideia.Tree) (*Result, error) {
	proxy, err := ReadAddStakeProxy(cfg, proxyBox)
	if err != nil {
		return nil, err
	}
	state, position, err := readTarget(cfg, stateBox, stakeBox, proxy.StakeKey)
	if err != nil {
		return nil, err
	}
	if state.AmountStaked, err = add("amount staked", state.AmountStaked, proxy.Amount); err != nil {
		return nil, err
	}
	if position.AmountStaked, err = add("stake amount", position.AmountStaked, proxy.Amount); err != nil {
		return nil, err
	}

	p := cfg.Params()
	logger.Debug("add stake", "key", position.StakeKey.AbbrevString(), "amount", proxy.Amount, "total", position.AmountStaked)
	return &Result{
		Action: ActionAddStake,
		Inputs: []*box.Box{stateBox, stakeBox, proxyBox},
		Outputs: []*box.Box{
			state.Box(cfg),
			position.Box(cfg),
			box.NewBuilder().Value(paideia.UserOutputValue).Tree(proxy.UserTree).Asset(position.StakeKey, 1).Build(),
			Incentive{Value: p.ProxyAddToStakingIncentive}.Box(cfg),
			executorBox(executor, p.ProxyExecutorReward),
		},
		Fee: p.ProxyMinerFee,
	}, nil
}

// Unstake withdraws the proxy amount from a position. Withdrawing the whole
// amount closes the position and burns its key; otherwise the remainder
// must stay at or above the minimum stake.
//
// Outputs, full: stake state, user, incentive, executor.
// Outputs, partial: stake state, user, stake, incentive, executor.
func Unstake(cfg *config.Config, stateBox, stakeBox, proxyBox *box.Box, executor paideia.Tree) (*Result, error) {
	proxy, err := ReadUnstakeProxy(cfg, proxyBox)
	if err != nil {
		return nil, err
	}
	state, position, err := readTarget(cfg, stateBox, stakeBox, proxy.StakeKey)
	if err != nil {
		return nil, err
	}
	if proxy.Amount > position.AmountStaked {
		return nil, invalidConditions("unstake amount %d exceeds staked amount %d", proxy.Amount, position.AmountStaked)
	}
	full := proxy.Amount == position.AmountStaked
	if !full && position.AmountStaked-proxy.Amount < paideia.MinStakeAmount {
		return nil, invalidConditions("remaining stake %d below minimum %d", position.AmountStaked-proxy.Amount, paideia.MinStakeAmount)
	}
	p := cfg.Params()
	if want := unstakeProxyValue(p, full); proxy.Value != want {
		return nil, invalidInput("unstake proxy value %d, want %d", proxy.Value, want)
	}

	if state.AmountStaked, err = sub("amount staked", state.AmountStaked, proxy.Amount); err != nil {
		return nil, err
	}
	user := box.NewBuilder().
		Value(paideia.UserOutputValue).
		Tree(proxy.UserTree).
		Asset(cfg.StakedTokenID(), proxy.Amount)

	res := &Result{
		Action: ActionUnstake,
		Inputs: []*box.Box{stateBox, stakeBox, proxyBox},
		Fee:    p.ProxyMinerFee,
	}
	if full {
		state.Stakers--
		res.Burn = box.Assets{{ID: position.StakeKey, Amount: 1}}
		res.Outputs = []*box.Box{state.Box(cfg), user.Build()}
	} else {
		position.AmountStaked -= proxy.Amount
		user.Asset(position.StakeKey, 1)
		res.Outputs = []*box.Box{state.Box(cfg), user.Build(), position.Box(cfg)}
	}
	res.Outputs = append(res.Outputs,
		Incentive{Value: p.ProxyToStakingIncentive}.Box(cfg),
		executorBox(executor, p.ProxyExecutorReward),
	)
	logger.Debug("unstake", "key", position.StakeKey.AbbrevString(), "amount", proxy.Amount, "full", full)
	return res, nil
}
