// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package journal

import (
	"time"

	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
)

// Entry is one applied transition.
type Entry struct {
	Seq           int64           `json:"seq"`
	TxID          paideia.Bytes32 `json:"txID"`
	Kind          staking.Action  `json:"kind"`
	Checkpoint    int64           `json:"checkpoint"`
	AmountStaked  uint64          `json:"amountStaked"`
	Stakers       uint64          `json:"stakers"`
	PoolRemaining uint64          `json:"poolRemaining"`
	Fee           uint64          `json:"fee"`
	Time          time.Time       `json:"time"`
}

// NewEntry summarizes tx, applied at now. It returns false when tx is not a
// staking transition. Counters come from the record each transition
// rewrites: the stake state, or the emission for Compound.
func NewEntry(cfg *config.Config, tx *ledger.Transaction, now time.Time) (*Entry, bool) {
	kind, ok := staking.Classify(cfg, tx)
	if !ok {
		return nil, false
	}
	e := &Entry{
		TxID: tx.ID(),
		Kind: kind,
		Fee:  tx.Fee(),
		Time: now,
	}
	outs := tx.Outputs()
	switch kind {
	case staking.ActionStake, staking.ActionAddStake, staking.ActionUnstake, staking.ActionEmit:
		if s, err := staking.ReadState(cfg, outs[0]); err == nil {
			e.Checkpoint = s.Checkpoint
			e.AmountStaked = s.AmountStaked
			e.Stakers = s.Stakers
		}
		if kind == staking.ActionEmit && len(outs) > 1 {
			if p, err := staking.ReadPool(cfg, outs[1]); err == nil {
				e.PoolRemaining = p.Remaining
			}
		}
	case staking.ActionCompound:
		if em, err := staking.ReadEmission(cfg, outs[0]); err == nil {
			e.Checkpoint = em.Checkpoint
			e.AmountStaked = em.AmountStaked
			e.Stakers = em.Stakers
		}
	}
	return e, true
}

// Order of query results.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive checkpoint range.
type Range struct {
	From int64
	To   int64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects entries. A nil field matches everything.
type Filter struct {
	Kind    *staking.Action
	Range   *Range
	Options *Options
	Order   Order // default asc
}
