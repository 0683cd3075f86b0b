// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// ConsolidateDust merges small incentive records into one. Records whose
// value is not below the merged amount are left out; filtering repeats until
// the merged amount is stable. The executor earns a reward per merged record.
//
// Outputs: incentive, executor.
func ConsolidateDust(cfg *config.Config, incentiveBoxes []*box.Box, executor paideia.Tree) (*Result, error) {
	seen := make(map[paideia.Bytes32]struct{}, len(incentiveBoxes))
	for i, b := range incentiveBoxes {
		if _, err := ReadIncentive(cfg, b); err != nil {
			return nil, err
		}
		if b.Value() > paideia.MaxDustValue {
			return nil, invalidInput("too much erg in incentive box #%d: %d", i, b.Value())
		}
		if b.HasRef() {
			if _, dup := seen[b.ID()]; dup {
				return nil, invalidInput("incentive box #%d given twice", i)
			}
			seen[b.ID()] = struct{}{}
		}
	}

	p := cfg.Params()
	reward, minerFee := int64(p.DustCollectionReward), int64(p.DustCollectionMinerFee)
	candidates := incentiveBoxes
	collected := int64(math.MaxInt64)
	for done := false; !done; {
		done = true
		current := -minerFee
		kept := candidates[:0:0]
		for _, b := range candidates {
			if v := int64(b.Value()); v < collected {
				current += v - reward
				kept = append(kept, b)
			} else {
				done = false
			}
		}
		candidates = kept
		if current != collected {
			done = false
		}
		collected = current
	}

	// the merged record must still be a valid ledger output
	if len(candidates) < 2 || collected < int64(paideia.MinOutputValue) {
		return nil, invalidConditions("not enough dust")
	}
	logger.Debug("consolidate dust", "records", len(candidates), "collected", collected)
	return &Result{
		Action: ActionConsolidateDust,
		Inputs: candidates,
		Outputs: []*box.Box{
			Incentive{Value: uint64(collected)}.Box(cfg),
			executorBox(executor, p.DustCollectionReward*uint64(len(candidates))),
		},
		Fee: p.DustCollectionMinerFee,
	}, nil
}
