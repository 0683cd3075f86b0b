// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
)

type State struct {
	BoxID            paideia.Bytes32 `json:"boxID"`
	Checkpoint       int64           `json:"checkpoint"`
	AmountStaked     uint64          `json:"amountStaked"`
	Stakers          uint64          `json:"stakers"`
	CheckpointTime   uint64          `json:"checkpointTime"`
	CycleDuration    uint64          `json:"cycleDuration"`
	NextEmissionTime uint64          `json:"nextEmissionTime"`
	Pool             Pool            `json:"pool"`
	Emission         Emission        `json:"emission"`
}

type Pool struct {
	BoxID          paideia.Bytes32 `json:"boxID"`
	Remaining      uint64          `json:"remaining"`
	EmissionAmount uint64          `json:"emissionAmount"`
}

type Emission struct {
	BoxID             paideia.Bytes32 `json:"boxID"`
	Checkpoint        int64           `json:"checkpoint"`
	AmountStaked      uint64          `json:"amountStaked"`
	EmissionRemaining uint64          `json:"emissionRemaining"`
	Stakers           uint64          `json:"stakers"`
	EmissionAmount    uint64          `json:"emissionAmount"`
}

type Stake struct {
	BoxID        paideia.Bytes32 `json:"boxID"`
	StakeKey     paideia.Bytes32 `json:"stakeKey"`
	Checkpoint   int64           `json:"checkpoint"`
	StakeTime    uint64          `json:"stakeTime"`
	AmountStaked uint64          `json:"amountStaked"`
}

type Contract struct {
	Kind string          `json:"kind"`
	Hash paideia.Bytes32 `json:"hash"`
	Tree paideia.Tree    `json:"tree"`
}

func convertStake(id paideia.Bytes32, p staking.Position) *Stake {
	return &Stake{
		BoxID:        id,
		StakeKey:     p.StakeKey,
		Checkpoint:   p.Checkpoint,
		StakeTime:    p.StakeTime,
		AmountStaked: p.AmountStaked,
	}
}
