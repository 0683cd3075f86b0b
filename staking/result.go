// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/paideia"
)

var logger = log.WithContext("pkg", "staking")

// Action names a transition.
type Action uint8

const (
	ActionStake Action = iota + 1
	ActionAddStake
	ActionUnstake
	ActionEmit
	ActionCompound
	ActionConsolidateDust
	ActionCreateStakeProxy
	ActionCreateAddStakeProxy
	ActionCreateUnstakeProxy
)

var actionNames = map[Action]string{
	ActionStake:               "stake",
	ActionAddStake:            "addStake",
	ActionUnstake:             "unstake",
	ActionEmit:                "emit",
	ActionCompound:            "compound",
	ActionConsolidateDust:     "consolidateDust",
	ActionCreateStakeProxy:    "createStakeProxy",
	ActionCreateAddStakeProxy: "createAddStakeProxy",
	ActionCreateUnstakeProxy:  "createUnstakeProxy",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return 0, false
}

// MarshalText encodes the action name.
func (a Action) MarshalText() ([]byte, error) {
	if _, ok := actionNames[a]; !ok {
		return nil, fmt.Errorf("unknown action %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(text []byte) error {
	v, ok := ParseAction(string(text))
	if !ok {
		return fmt.Errorf("unknown action %q", text)
	}
	*a = v
	return nil
}

// Result is the output of a transition: the ordered inputs it spends and
// the output candidates, fee and burn it produces. Applying a result is all
// or nothing.
type Result struct {
	Action  Action
	Inputs  []*box.Box
	Outputs []*box.Box
	Fee     uint64
	Burn    box.Assets
	// Change receives leftovers. Only proxy creation leaves any.
	Change paideia.Tree
	// StakeKey is the key minted by a Stake.
	StakeKey paideia.Bytes32
}

// Transaction builds the ledger transaction of the result.
func (r *Result) Transaction() (*ledger.Transaction, error) {
	return ledger.NewBuilder().
		Input(r.Inputs...).
		Output(r.Outputs...).
		Fee(r.Fee).
		Burn(r.Burn).
		ChangeTo(r.Change).
		Build()
}

func executorBox(tree paideia.Tree, value uint64) *box.Box {
	return box.NewBuilder().Value(value).Tree(tree).Build()
}
