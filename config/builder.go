// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Binding names compiled into the contracts.
const (
	BindStakeStateNFT = "stakeStateNFT"
	BindStakePoolNFT  = "stakePoolNFT"
	BindEmissionNFT   = "emissionNFT"
	BindStakeTokenID  = "stakeTokenId"
	BindStakedTokenID = "stakedTokenId"
	BindStakePoolKey  = "stakePoolKey"
	BindStakeHash     = "stakeContractHash"
	BindIncentiveHash = "incentiveContractHash"
	BindEmitFeeTree   = "emitFeeTree"
	BindEmitFeeDenom  = "emitFeeDenominator"
	BindIncentive     = "toIncentive"
	BindExecutor      = "executorReward"
	BindMinerFee      = "minerFee"
)

// Builder helper to build a deployment config. Contracts are compiled in
// dependency order: stake, stake state, pool, emission, incentive, proxies.
type Builder struct {
	params Params
}

// NewBuilder creates a builder preloaded with DefaultParams.
func NewBuilder() *Builder {
	return &Builder{params: DefaultParams()}
}

// Params replaces all parameters.
func (b *Builder) Params(p Params) *Builder {
	b.params = p.copy()
	return b
}

// Tokens sets the identity and token ids.
func (b *Builder) Tokens(stakeStateNFT, stakePoolNFT, emissionNFT, stakeTokenID, stakedTokenID, stakePoolKey paideia.Bytes32) *Builder {
	b.params.StakeStateNFT = stakeStateNFT
	b.params.StakePoolNFT = stakePoolNFT
	b.params.EmissionNFT = emissionNFT
	b.params.StakeTokenID = stakeTokenID
	b.params.StakedTokenID = stakedTokenID
	b.params.StakePoolKey = stakePoolKey
	return b
}

// StakedToken sets the display name and decimals of the staked token.
func (b *Builder) StakedToken(name string, decimals int) *Builder {
	b.params.StakedTokenName = name
	b.params.StakedTokenDecimals = decimals
	return b
}

// EmitFee sets the emission fee policy. A zero denominator disables it.
func (b *Builder) EmitFee(denominator uint64, tree paideia.Tree) *Builder {
	b.params.EmitFeeDenominator = denominator
	b.params.EmitFeeTree = append(paideia.Tree(nil), tree...)
	return b
}

func (b *Builder) validate() error {
	p := &b.params
	ids := []struct {
		name string
		id   paideia.Bytes32
	}{
		{BindStakeStateNFT, p.StakeStateNFT},
		{BindStakePoolNFT, p.StakePoolNFT},
		{BindEmissionNFT, p.EmissionNFT},
		{BindStakeTokenID, p.StakeTokenID},
		{BindStakedTokenID, p.StakedTokenID},
		{BindStakePoolKey, p.StakePoolKey},
	}
	seen := make(map[paideia.Bytes32]string, len(ids))
	for _, id := range ids {
		if id.id.IsZero() {
			return errors.Errorf("%s not set", id.name)
		}
		if other, ok := seen[id.id]; ok {
			return errors.Errorf("%s equals %s", id.name, other)
		}
		seen[id.id] = id.name
	}
	if p.StakedTokenName == "" {
		return errors.New("stakedTokenName not set")
	}
	if p.StakedTokenDecimals < 0 || p.StakedTokenDecimals > 18 {
		return errors.Errorf("stakedTokenDecimals out of range: %d", p.StakedTokenDecimals)
	}

	fees := []struct {
		name  string
		value uint64
	}{
		{"proxyToStakingIncentive", p.ProxyToStakingIncentive},
		{"proxyAddToStakingIncentive", p.ProxyAddToStakingIncentive},
		{"proxyExecutorReward", p.ProxyExecutorReward},
		{"proxyMinerFee", p.ProxyMinerFee},
		{"dustCollectionReward", p.DustCollectionReward},
		{"dustCollectionMinerFee", p.DustCollectionMinerFee},
		{"emitReward", p.EmitReward},
		{"emitMinerFee", p.EmitMinerFee},
		{"baseCompoundReward", p.BaseCompoundReward},
		{"baseCompoundMinerFee", p.BaseCompoundMinerFee},
		{"variableCompoundReward", p.VariableCompoundReward},
		{"variableCompoundMinerFee", p.VariableCompoundMinerFee},
	}
	for _, f := range fees {
		if f.value == 0 {
			return errors.Errorf("%s must be positive", f.name)
		}
	}
	if p.ProxyToStakingIncentive < paideia.MinBoxValue || p.ProxyAddToStakingIncentive < paideia.MinBoxValue {
		return errors.New("incentive allocations must cover a minimum box value")
	}
	if p.ProxyExecutorReward < paideia.MinBoxValue || p.EmitReward < paideia.MinBoxValue {
		return errors.New("executor rewards must cover a minimum box value")
	}
	if p.EmitFeeDenominator > 0 && len(p.EmitFeeTree) == 0 {
		return errors.New("emitFeeTree required when emission fee is enabled")
	}
	return nil
}

// Build validates the params and compiles the contracts.
func (b *Builder) Build() (*Config, error) {
	if err := b.validate(); err != nil {
		return nil, errors.Wrap(err, "build config")
	}
	p := b.params.copy()
	cfg := &Config{params: p}

	var err error
	compile := func(kind contract.Kind, bindings ...contract.Binding) *contract.Contract {
		if err != nil {
			return nil
		}
		var c *contract.Contract
		c, err = contract.New(kind, bindings...)
		return c
	}

	cfg.stake = compile(contract.Stake,
		contract.BindBytes32(BindStakeStateNFT, p.StakeStateNFT),
		contract.BindBytes32(BindStakeTokenID, p.StakeTokenID),
		contract.BindBytes32(BindStakedTokenID, p.StakedTokenID),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build config")
	}
	cfg.stakeState = compile(contract.StakeState,
		contract.BindBytes32(BindStakeStateNFT, p.StakeStateNFT),
		contract.BindBytes32(BindStakeTokenID, p.StakeTokenID),
		contract.BindBytes32(BindStakeHash, cfg.stake.Hash()),
	)
	cfg.stakePool = compile(contract.StakePool,
		contract.BindBytes32(BindStakePoolNFT, p.StakePoolNFT),
		contract.BindBytes32(BindStakeStateNFT, p.StakeStateNFT),
		contract.BindBytes32(BindStakePoolKey, p.StakePoolKey),
		contract.BindBytes32(BindStakedTokenID, p.StakedTokenID),
		contract.BindTree(BindEmitFeeTree, p.EmitFeeTree),
		contract.BindUint(BindEmitFeeDenom, p.EmitFeeDenominator),
	)
	cfg.emission = compile(contract.Emission,
		contract.BindBytes32(BindEmissionNFT, p.EmissionNFT),
		contract.BindBytes32(BindStakeStateNFT, p.StakeStateNFT),
		contract.BindBytes32(BindStakeTokenID, p.StakeTokenID),
		contract.BindBytes32(BindStakedTokenID, p.StakedTokenID),
	)
	cfg.incentive = compile(contract.Incentive,
		contract.BindBytes32(BindStakeStateNFT, p.StakeStateNFT),
		contract.BindBytes32(BindEmissionNFT, p.EmissionNFT),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build config")
	}
	incentiveHash := cfg.incentive.Hash()

	proxy := func(kind contract.Kind, toIncentive uint64) *contract.Contract {
		return compile(kind,
			contract.BindBytes32(BindStakeStateNFT, p.StakeStateNFT),
			contract.BindBytes32(BindStakedTokenID, p.StakedTokenID),
			contract.BindBytes32(BindIncentiveHash, incentiveHash),
			contract.BindUint(BindIncentive, toIncentive),
			contract.BindUint(BindExecutor, p.ProxyExecutorReward),
			contract.BindUint(BindMinerFee, p.ProxyMinerFee),
		)
	}
	cfg.stakeProxy = proxy(contract.StakeProxy, p.ProxyToStakingIncentive)
	cfg.addStakeProxy = proxy(contract.AddStakeProxy, p.ProxyAddToStakingIncentive)
	cfg.unstakeProxy = proxy(contract.UnstakeProxy, p.ProxyToStakingIncentive)
	if err != nil {
		return nil, errors.Wrap(err, "build config")
	}
	return cfg, nil
}

// MustBuild builds the config, panic on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}
