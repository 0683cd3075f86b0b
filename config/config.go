// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Config is an immutable staking deployment: its parameters and the
// contracts compiled from them.
type Config struct {
	params Params

	stake         *contract.Contract
	stakeState    *contract.Contract
	stakePool     *contract.Contract
	emission      *contract.Contract
	incentive     *contract.Contract
	stakeProxy    *contract.Contract
	addStakeProxy *contract.Contract
	unstakeProxy  *contract.Contract
}

// Params returns a copy of the deployment parameters.
func (c *Config) Params() Params {
	return c.params.copy()
}

func (c *Config) StakeStateNFT() paideia.Bytes32 { return c.params.StakeStateNFT }
func (c *Config) StakePoolNFT() paideia.Bytes32  { return c.params.StakePoolNFT }
func (c *Config) EmissionNFT() paideia.Bytes32   { return c.params.EmissionNFT }
func (c *Config) StakeTokenID() paideia.Bytes32  { return c.params.StakeTokenID }
func (c *Config) StakedTokenID() paideia.Bytes32 { return c.params.StakedTokenID }
func (c *Config) StakePoolKey() paideia.Bytes32  { return c.params.StakePoolKey }

func (c *Config) StakedTokenName() string  { return c.params.StakedTokenName }
func (c *Config) StakedTokenDecimals() int { return c.params.StakedTokenDecimals }

// EmitFee returns the protocol fee taken from an emission of the given amount.
func (c *Config) EmitFee(emissionAmount uint64) uint64 {
	if c.params.EmitFeeDenominator == 0 {
		return 0
	}
	return emissionAmount / c.params.EmitFeeDenominator
}

func (c *Config) EmitFeeTree() paideia.Tree {
	return append(paideia.Tree(nil), c.params.EmitFeeTree...)
}

func (c *Config) StakeContract() *contract.Contract         { return c.stake }
func (c *Config) StakeStateContract() *contract.Contract    { return c.stakeState }
func (c *Config) StakePoolContract() *contract.Contract     { return c.stakePool }
func (c *Config) EmissionContract() *contract.Contract      { return c.emission }
func (c *Config) IncentiveContract() *contract.Contract     { return c.incentive }
func (c *Config) StakeProxyContract() *contract.Contract    { return c.stakeProxy }
func (c *Config) AddStakeProxyContract() *contract.Contract { return c.addStakeProxy }
func (c *Config) UnstakeProxyContract() *contract.Contract  { return c.unstakeProxy }

// Contracts returns every contract of the deployment, in build order.
func (c *Config) Contracts() []*contract.Contract {
	return []*contract.Contract{
		c.stake,
		c.stakeState,
		c.stakePool,
		c.emission,
		c.incentive,
		c.stakeProxy,
		c.addStakeProxy,
		c.unstakeProxy,
	}
}

// ContractOf returns the contract guarding the tree, nil if none does.
func (c *Config) ContractOf(tree paideia.Tree) *contract.Contract {
	if !contract.IsContractTree(tree) {
		return nil
	}
	for _, ct := range c.Contracts() {
		if ct.Guards(tree) {
			return ct
		}
	}
	return nil
}
