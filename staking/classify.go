// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/ledger"
)

// Classify names the transition tx performs from the contracts of its
// inputs and outputs. It returns false for transactions that touch no
// staking record. The result is a label only; guards decide validity.
func Classify(cfg *config.Config, tx *ledger.Transaction) (Action, bool) {
	g := &guards{cfg: cfg}
	switch g.kindAt(tx, 0) {
	case contract.StakeState:
		switch g.kindAt(tx, 1) {
		case contract.StakeProxy:
			return ActionStake, true
		case contract.StakePool:
			return ActionEmit, true
		case contract.Stake:
			switch g.kindAt(tx, 2) {
			case contract.AddStakeProxy:
				return ActionAddStake, true
			case contract.UnstakeProxy:
				return ActionUnstake, true
			}
		}
		return 0, false
	case contract.Emission:
		return ActionCompound, true
	case contract.Incentive:
		return ActionConsolidateDust, true
	}
	for _, out := range tx.Outputs() {
		c := cfg.ContractOf(out.Tree())
		if c == nil {
			continue
		}
		switch c.Kind() {
		case contract.StakeProxy:
			return ActionCreateStakeProxy, true
		case contract.AddStakeProxy:
			return ActionCreateAddStakeProxy, true
		case contract.UnstakeProxy:
			return ActionCreateUnstakeProxy, true
		}
	}
	return 0, false
}
