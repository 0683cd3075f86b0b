// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Guards returns the spending rules of every contract of the deployment,
// keyed by tree hash. A transaction spending a contract box must be exactly
// what the matching transition computes over the same inputs; only the
// executor tree, taken from the last output, is free.
func Guards(cfg *config.Config) ledger.Guards {
	g := &guards{cfg: cfg}
	return ledger.Guards{
		cfg.StakeStateContract().Hash():    ledger.GuardFunc(g.stakeState),
		cfg.StakeContract().Hash():         ledger.GuardFunc(g.stake),
		cfg.StakePoolContract().Hash():     ledger.GuardFunc(g.stakePool),
		cfg.EmissionContract().Hash():      ledger.GuardFunc(g.emission),
		cfg.IncentiveContract().Hash():     ledger.GuardFunc(g.incentive),
		cfg.StakeProxyContract().Hash():    ledger.GuardFunc(g.proxy),
		cfg.AddStakeProxyContract().Hash(): ledger.GuardFunc(g.proxy),
		cfg.UnstakeProxyContract().Hash():  ledger.GuardFunc(g.proxy),
	}
}

type guards struct {
	cfg *config.Config
}

// kindAt returns the contract kind guarding input i, zero for user boxes.
func (g *guards) kindAt(tx *ledger.Transaction, i int) contract.Kind {
	if i < 0 || i >= len(tx.Inputs()) {
		return 0
	}
	if c := g.cfg.ContractOf(tx.Input(i).Tree()); c != nil {
		return c.Kind()
	}
	return 0
}

func executorOf(tx *ledger.Transaction) paideia.Tree {
	outs := tx.Outputs()
	if len(outs) == 0 {
		return nil
	}
	return outs[len(outs)-1].Tree()
}

// replay checks tx is exactly the result of a transition.
func replay(tx *ledger.Transaction, res *Result, err error) error {
	if err != nil {
		return ledger.RejectWith(err, "")
	}
	inputs := tx.Inputs()
	if len(inputs) != len(res.Inputs) {
		return ledger.Reject("%v: %d inputs, want %d", res.Action, len(inputs), len(res.Inputs))
	}
	for i := range inputs {
		if inputs[i].ID() != res.Inputs[i].ID() {
			return ledger.Reject("%v: unexpected input #%d", res.Action, i)
		}
	}
	outputs := tx.Outputs()
	if len(outputs) != len(res.Outputs) {
		return ledger.Reject("%v: %d outputs, want %d", res.Action, len(outputs), len(res.Outputs))
	}
	for i := range outputs {
		if !outputs[i].SameContent(res.Outputs[i]) {
			return ledger.Reject("%v: unexpected output #%d", res.Action, i)
		}
	}
	if tx.Fee() != res.Fee {
		return ledger.Reject("%v: fee %d, want %d", res.Action, tx.Fee(), res.Fee)
	}
	if !sameAssets(tx.Burn(), res.Burn) {
		return ledger.Reject("%v: unexpected burn", res.Action)
	}
	return nil
}

func sameAssets(a, b box.Assets) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// stakeState recognizes the transition from the inputs following the state
// and replays it.
func (g *guards) stakeState(ctx *ledger.GuardContext) error {
	tx := ctx.Tx
	if ctx.Index != 0 {
		return ledger.Reject("stake state spent at input %d", ctx.Index)
	}
	in := tx.Inputs()
	exec := executorOf(tx)
	switch g.kindAt(tx, 1) {
	case contract.StakeProxy:
		if len(in) != 2 {
			break
		}
		res, err := Stake(g.cfg, in[0], in[1], exec)
		return replay(tx, res, err)
	case contract.Stake:
		if len(in) != 3 {
			break
		}
		switch g.kindAt(tx, 2) {
		case contract.AddStakeProxy:
			res, err := AddStake(g.cfg, in[0], in[1], in[2], exec)
			return replay(tx, res, err)
		case contract.UnstakeProxy:
			res, err := Unstake(g.cfg, in[0], in[1], in[2], exec)
			return replay(tx, res, err)
		}
	case contract.StakePool:
		if len(in) != 4 {
			break
		}
		res, err := Emit(g.cfg, in[0], in[1], in[2], in[3], exec, ctx.Now)
		return replay(tx, res, err)
	}
	return ledger.Reject("stake state spent outside a staking transition")
}

// stake lets the stake state or the emission guard decide.
func (g *guards) stake(ctx *ledger.GuardContext) error {
	n := len(ctx.Tx.Inputs())
	switch g.kindAt(ctx.Tx, 0) {
	case contract.StakeState:
		if ctx.Index == 1 {
			return nil
		}
	case contract.Emission:
		if ctx.Index >= 1 && ctx.Index < n-1 {
			return nil
		}
	}
	return ledger.Reject("stake box spent at input %d outside a staking transition", ctx.Index)
}

// stakePool is spent by Emit or withdrawn by the pool key holder.
func (g *guards) stakePool(ctx *ledger.GuardContext) error {
	if ctx.Index == 1 && g.kindAt(ctx.Tx, 0) == contract.StakeState {
		return nil
	}
	key := g.cfg.StakePoolKey()
	for _, in := range ctx.Tx.Inputs() {
		if in.Asset(key) > 0 {
			return nil
		}
	}
	return ledger.Reject("stake pool spent without stake pool key")
}

// emission is spent by Emit, checked by the stake state guard, or by
// Compound, replayed here.
func (g *guards) emission(ctx *ledger.GuardContext) error {
	tx := ctx.Tx
	switch {
	case ctx.Index == 2 && g.kindAt(tx, 0) == contract.StakeState:
		return nil
	case ctx.Index == 0:
		in := tx.Inputs()
		if len(in) < 3 {
			return ledger.Reject("compound without stake boxes")
		}
		res, err := Compound(g.cfg, in[0], in[1:len(in)-1], in[len(in)-1], executorOf(tx))
		return replay(tx, res, err)
	}
	return ledger.Reject("emission spent at input %d outside a staking transition", ctx.Index)
}

// incentive pays for Emit and Compound as last input, or is merged by a
// dust consolidation made of incentive records only.
func (g *guards) incentive(ctx *ledger.GuardContext) error {
	tx := ctx.Tx
	in := tx.Inputs()
	last := len(in) - 1
	switch g.kindAt(tx, 0) {
	case contract.StakeState:
		if ctx.Index == 3 && last == 3 {
			return nil
		}
	case contract.Emission:
		if ctx.Index == last && last >= 2 {
			return nil
		}
	case contract.Incentive:
		for i := range in {
			if g.kindAt(tx, i) != contract.Incentive {
				return ledger.Reject("dust consolidation with non incentive input #%d", i)
			}
		}
		if ctx.Index > 0 {
			return nil
		}
		res, err := ConsolidateDust(g.cfg, in, executorOf(tx))
		return replay(tx, res, err)
	}
	return ledger.Reject("incentive spent at input %d outside a staking transition", ctx.Index)
}

// proxy boxes are only consumed by their transition, checked by the stake
// state guard.
func (g *guards) proxy(ctx *ledger.GuardContext) error {
	if ctx.Index >= 1 && g.kindAt(ctx.Tx, 0) == contract.StakeState {
		return nil
	}
	return ledger.Reject("proxy spent at input %d outside its transition", ctx.Index)
}
