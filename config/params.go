// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Params are the raw deployment parameters. Amounts are in nanoerg.
type Params struct {
	StakeStateNFT paideia.Bytes32 `yaml:"stakeStateNFT"`
	StakePoolNFT  paideia.Bytes32 `yaml:"stakePoolNFT"`
	EmissionNFT   paideia.Bytes32 `yaml:"emissionNFT"`
	StakeTokenID  paideia.Bytes32 `yaml:"stakeTokenId"`
	StakedTokenID paideia.Bytes32 `yaml:"stakedTokenId"`
	StakePoolKey  paideia.Bytes32 `yaml:"stakePoolKey"`

	StakedTokenName     string `yaml:"stakedTokenName"`
	StakedTokenDecimals int    `yaml:"stakedTokenDecimals"`

	ProxyToStakingIncentive    uint64 `yaml:"proxyToStakingIncentive"`
	ProxyAddToStakingIncentive uint64 `yaml:"proxyAddToStakingIncentive"`
	ProxyExecutorReward        uint64 `yaml:"proxyExecutorReward"`
	ProxyMinerFee              uint64 `yaml:"proxyMinerFee"`
	DustCollectionReward       uint64 `yaml:"dustCollectionReward"`
	DustCollectionMinerFee     uint64 `yaml:"dustCollectionMinerFee"`
	EmitReward                 uint64 `yaml:"emitReward"`
	EmitMinerFee               uint64 `yaml:"emitMinerFee"`
	BaseCompoundReward         uint64 `yaml:"baseCompoundReward"`
	BaseCompoundMinerFee       uint64 `yaml:"baseCompoundMinerFee"`
	VariableCompoundReward     uint64 `yaml:"variableCompoundReward"`
	VariableCompoundMinerFee   uint64 `yaml:"variableCompoundMinerFee"`

	// EmitFeeDenominator sets the protocol fee taken on each emission to
	// emissionAmount/EmitFeeDenominator. Zero disables the fee.
	EmitFeeDenominator uint64       `yaml:"emitFeeDenominator"`
	EmitFeeTree        paideia.Tree `yaml:"emitFeeTree"`
}

// DefaultEmitFeeTree receives the emission protocol fee.
var DefaultEmitFeeTree = paideia.MustParseTree("0008cd02189359b825e96aa3c7af90c9958d85daf8f86358382db3306e024c5aeea1e8ec")

// DefaultParams returns params with the reward and fee constants used by the
// public deployments and no token ids.
func DefaultParams() Params {
	return Params{
		ProxyToStakingIncentive:    100_000_000,
		ProxyAddToStakingIncentive: 10_000_000,
		ProxyExecutorReward:        2_000_000,
		ProxyMinerFee:              2_000_000,
		DustCollectionReward:       500_000,
		DustCollectionMinerFee:     1_000_000,
		EmitReward:                 3_000_000,
		EmitMinerFee:               1_000_000,
		BaseCompoundReward:         500_000,
		BaseCompoundMinerFee:       1_000_000,
		VariableCompoundReward:     150_000,
		VariableCompoundMinerFee:   100_000,
		EmitFeeDenominator:         100,
		EmitFeeTree:                DefaultEmitFeeTree,
	}
}

func (p Params) copy() Params {
	p.EmitFeeTree = append(paideia.Tree(nil), p.EmitFeeTree...)
	return p
}
