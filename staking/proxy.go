// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"time"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// StakeProxy is a user's request to open a stake position.
type StakeProxy struct {
	Amount    uint64
	StakeTime uint64 // unix ms
	UserTree  paideia.Tree
	Value     uint64
}

// AddStakeProxy is a user's request to add to an existing position.
type AddStakeProxy struct {
	StakeKey paideia.Bytes32
	Amount   uint64
	UserTree paideia.Tree
	Value    uint64
}

// UnstakeProxy is a user's request to withdraw from a position.
type UnstakeProxy struct {
	StakeKey paideia.Bytes32
	Amount   uint64
	UserTree paideia.Tree
	Value    uint64
}

// AssetsRequired is what a user must supply to create a proxy, the proxy
// creation fee included.
type AssetsRequired struct {
	NanoErgs uint64     `json:"nanoErgs"`
	Tokens   box.Assets `json:"tokens"`
}

func stakeProxyValue(p config.Params) uint64 {
	return paideia.StakeProxyBaseValue + p.ProxyToStakingIncentive + p.ProxyExecutorReward + p.ProxyMinerFee
}

func addStakeProxyValue(p config.Params) uint64 {
	return paideia.ProxyBaseValue + p.ProxyAddToStakingIncentive + p.ProxyExecutorReward + p.ProxyMinerFee
}

// unstakeProxyValue is lowered by the stake record value when the position
// is closed, since that value is released to the user output.
func unstakeProxyValue(p config.Params, full bool) uint64 {
	v := paideia.ProxyBaseValue + p.ProxyToStakingIncentive + p.ProxyExecutorReward + p.ProxyMinerFee
	if full {
		v -= paideia.StakeBoxValue
	}
	return v
}

func readUserTree(kind contract.Kind, b *box.Box) (paideia.Tree, error) {
	data, err := readBytes(kind, b, 5)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, invalidInput("%v: empty user tree", kind)
	}
	return paideia.Tree(data), nil
}

// ReadStakeProxy validates b as a stake proxy.
func ReadStakeProxy(cfg *config.Config, b *box.Box) (StakeProxy, error) {
	const kind = contract.StakeProxy
	if err := expectContract(cfg.StakeProxyContract(), b); err != nil {
		return StakeProxy{}, err
	}
	longs, err := readLongs(kind, b, box.R4, 1)
	if err != nil {
		return StakeProxy{}, err
	}
	var p StakeProxy
	if p.StakeTime, err = unsigned(kind, "stakeTime", longs[0]); err != nil {
		return StakeProxy{}, err
	}
	if p.UserTree, err = readUserTree(kind, b); err != nil {
		return StakeProxy{}, err
	}
	p.Amount = b.Asset(cfg.StakedTokenID())
	if p.Amount < paideia.MinStakeAmount {
		return StakeProxy{}, invalidInput("%v: amount %d below minimum stake", kind, p.Amount)
	}
	if err := expectAssets(kind, b, box.Asset{ID: cfg.StakedTokenID(), Amount: p.Amount}); err != nil {
		return StakeProxy{}, err
	}
	if want := stakeProxyValue(cfg.Params()); b.Value() != want {
		return StakeProxy{}, invalidInput("%v: value %d, want %d", kind, b.Value(), want)
	}
	p.Value = b.Value()
	return p, nil
}

// Box builds the stake proxy candidate.
func (p StakeProxy) Box(cfg *config.Config) *box.Box {
	return box.NewBuilder().
		Value(p.Value).
		Tree(cfg.StakeProxyContract().Tree()).
		Asset(cfg.StakedTokenID(), p.Amount).
		Register(box.Longs(toLong(p.StakeTime))).
		Register(box.Bytes(p.UserTree)).
		Build()
}

// ReadAddStakeProxy validates b as an add-stake proxy.
func ReadAddStakeProxy(cfg *config.Config, b *box.Box) (AddStakeProxy, error) {
	const kind = contract.AddStakeProxy
	if err := expectContract(cfg.AddStakeProxyContract(), b); err != nil {
		return AddStakeProxy{}, err
	}
	if _, err := readLongs(kind, b, box.R4, 1); err != nil {
		return AddStakeProxy{}, err
	}
	userTree, err := readUserTree(kind, b)
	if err != nil {
		return AddStakeProxy{}, err
	}
	assets := b.Assets()
	if len(assets) != 2 {
		return AddStakeProxy{}, invalidInput("%v: unexpected token count %d", kind, len(assets))
	}
	p := AddStakeProxy{
		StakeKey: assets[0].ID,
		Amount:   assets[1].Amount,
		UserTree: userTree,
	}
	if err := expectAssets(kind, b,
		box.Asset{ID: p.StakeKey, Amount: 1},
		box.Asset{ID: cfg.StakedTokenID(), Amount: p.Amount},
	); err != nil {
		return AddStakeProxy{}, err
	}
	if want := addStakeProxyValue(cfg.Params()); b.Value() != want {
		return AddStakeProxy{}, invalidInput("%v: value %d, want %d", kind, b.Value(), want)
	}
	p.Value = b.Value()
	return p, nil
}

// Box builds the add-stake proxy candidate.
func (p AddStakeProxy) Box(cfg *config.Config) *box.Box {
	return box.NewBuilder().
		Value(p.Value).
		Tree(cfg.AddStakeProxyContract().Tree()).
		Asset(p.StakeKey, 1).
		Asset(cfg.StakedTokenID(), p.Amount).
		Register(box.Longs(0)).
		Register(box.Bytes(p.UserTree)).
		Build()
}

// ReadUnstakeProxy validates b as an unstake proxy. Its value depends on the
// position it targets and is checked by Unstake.
func ReadUnstakeProxy(cfg *config.Config, b *box.Box) (UnstakeProxy, error) {
	const kind = contract.UnstakeProxy
	if err := expectContract(cfg.UnstakeProxyContract(), b); err != nil {
		return UnstakeProxy{}, err
	}
	longs, err := readLongs(kind, b, box.R4, 1)
	if err != nil {
		return UnstakeProxy{}, err
	}
	var p UnstakeProxy
	if p.Amount, err = unsigned(kind, "amount", longs[0]); err != nil {
		return UnstakeProxy{}, err
	}
	if p.Amount == 0 {
		return UnstakeProxy{}, invalidInput("%v: zero amount", kind)
	}
	if p.UserTree, err = readUserTree(kind, b); err != nil {
		return UnstakeProxy{}, err
	}
	assets := b.Assets()
	if len(assets) != 1 || assets[0].Amount != 1 {
		return UnstakeProxy{}, invalidInput("%v: stake key missing", kind)
	}
	p.StakeKey = assets[0].ID
	p.Value = b.Value()
	return p, nil
}

// Box builds the unstake proxy candidate.
func (p UnstakeProxy) Box(cfg *config.Config) *box.Box {
	return box.NewBuilder().
		Value(p.Value).
		Tree(cfg.UnstakeProxyContract().Tree()).
		Asset(p.StakeKey, 1).
		Register(box.Longs(toLong(p.Amount))).
		Register(box.Bytes(p.UserTree)).
		Build()
}

// NewStakeProxy returns the proxy candidate staking amount for userTree.
func NewStakeProxy(cfg *config.Config, amount uint64, userTree paideia.Tree, stakeTime time.Time) (*box.Box, error) {
	if amount < paideia.MinStakeAmount {
		return nil, invalidConditions("stake amount %d below minimum %d", amount, paideia.MinStakeAmount)
	}
	if amount > maxLong {
		return nil, invalidConditions("stake amount %d out of range", amount)
	}
	ms := stakeTime.UnixMilli()
	if ms < 0 {
		return nil, invalidConditions("stake time before epoch")
	}
	return StakeProxy{
		Amount:    amount,
		StakeTime: uint64(ms),
		UserTree:  userTree,
		Value:     stakeProxyValue(cfg.Params()),
	}.Box(cfg), nil
}

// NewAddStakeProxy returns the proxy candidate adding amount to the position
// held in stakeBox.
func NewAddStakeProxy(cfg *config.Config, stakeBox *box.Box, amount uint64, userTree paideia.Tree) (*box.Box, error) {
	pos, err := ReadPosition(cfg, stakeBox)
	if err != nil {
		return nil, err
	}
	if amount == 0 || amount > maxLong {
		return nil, invalidConditions("add stake amount %d out of range", amount)
	}
	return AddStakeProxy{
		StakeKey: pos.StakeKey,
		Amount:   amount,
		UserTree: userTree,
		Value:    addStakeProxyValue(cfg.Params()),
	}.Box(cfg), nil
}

// NewUnstakeProxy returns the proxy candidate withdrawing amount from the
// position held in stakeBox. Withdrawing the whole amount closes it.
func NewUnstakeProxy(cfg *config.Config, stakeBox *box.Box, amount uint64, userTree paideia.Tree) (*box.Box, error) {
	pos, err := ReadPosition(cfg, stakeBox)
	if err != nil {
		return nil, err
	}
	if amount == 0 || amount > maxLong {
		return nil, invalidConditions("unstake amount %d out of range", amount)
	}
	return UnstakeProxy{
		StakeKey: pos.StakeKey,
		Amount:   amount,
		UserTree: userTree,
		Value:    unstakeProxyValue(cfg.Params(), amount >= pos.AmountStaked),
	}.Box(cfg), nil
}

func assetsOf(proxy *box.Box) AssetsRequired {
	return AssetsRequired{
		NanoErgs: proxy.Value() + paideia.ProxyCreationFee,
		Tokens:   proxy.Assets(),
	}
}

// StakeProxyAssets returns what a user must supply to stake amount.
func StakeProxyAssets(cfg *config.Config, amount uint64) (AssetsRequired, error) {
	proxy, err := NewStakeProxy(cfg, amount, nil, time.Now())
	if err != nil {
		return AssetsRequired{}, err
	}
	return assetsOf(proxy), nil
}

// AddStakeProxyAssets returns what a user must supply to add amount to the
// position held in stakeBox.
func AddStakeProxyAssets(cfg *config.Config, stakeBox *box.Box, amount uint64) (AssetsRequired, error) {
	proxy, err := NewAddStakeProxy(cfg, stakeBox, amount, nil)
	if err != nil {
		return AssetsRequired{}, err
	}
	return assetsOf(proxy), nil
}

// UnstakeProxyAssets returns what a user must supply to withdraw amount from
// the position held in stakeBox. The amount is not clamped.
func UnstakeProxyAssets(cfg *config.Config, stakeBox *box.Box, amount uint64) (AssetsRequired, error) {
	proxy, err := NewUnstakeProxy(cfg, stakeBox, amount, nil)
	if err != nil {
		return AssetsRequired{}, err
	}
	return assetsOf(proxy), nil
}

func createProxy(action Action, userInputs []*box.Box, proxy *box.Box, userTree paideia.Tree) (*Result, error) {
	if len(userInputs) == 0 {
		return nil, invalidConditions("no user inputs")
	}
	if len(userTree) == 0 {
		return nil, invalidConditions("no user tree")
	}
	need := assetsOf(proxy)
	var value uint64
	for _, in := range userInputs {
		value += in.Value()
	}
	bal, err := box.BalanceOf(userInputs...)
	if err != nil {
		return nil, invalidInput("%v", err)
	}
	if value < need.NanoErgs || !bal.Covers(need.Tokens) {
		return nil, invalidConditions("not enough erg/tokens in the user input boxes")
	}
	logger.Debug("proxy created", "action", action, "value", proxy.Value())
	return &Result{
		Action:  action,
		Inputs:  append([]*box.Box(nil), userInputs...),
		Outputs: []*box.Box{proxy},
		Fee:     paideia.ProxyCreationFee,
		Change:  append(paideia.Tree(nil), userTree...),
	}, nil
}

// CreateStakeProxy funds a stake proxy from the user's boxes. Leftovers go
// back to userTree.
func CreateStakeProxy(cfg *config.Config, userInputs []*box.Box, amount uint64, userTree paideia.Tree, now time.Time) (*Result, error) {
	proxy, err := NewStakeProxy(cfg, amount, userTree, now)
	if err != nil {
		return nil, err
	}
	return createProxy(ActionCreateStakeProxy, userInputs, proxy, userTree)
}

// CreateAddStakeProxy funds an add-stake proxy from the user's boxes, which
// must include the stake key.
func CreateAddStakeProxy(cfg *config.Config, userInputs []*box.Box, stakeBox *box.Box, amount uint64, userTree paideia.Tree) (*Result, error) {
	proxy, err := NewAddStakeProxy(cfg, stakeBox, amount, userTree)
	if err != nil {
		return nil, err
	}
	return createProxy(ActionCreateAddStakeProxy, userInputs, proxy, userTree)
}

// CreateUnstakeProxy funds an unstake proxy from the user's boxes, which
// must include the stake key. The amount is clamped to the position.
func CreateUnstakeProxy(cfg *config.Config, userInputs []*box.Box, stakeBox *box.Box, amount uint64, userTree paideia.Tree) (*Result, error) {
	pos, err := ReadPosition(cfg, stakeBox)
	if err != nil {
		return nil, err
	}
	proxy, err := NewUnstakeProxy(cfg, stakeBox, min(amount, pos.AmountStaked), userTree)
	if err != nil {
		return nil, err
	}
	return createProxy(ActionCreateUnstakeProxy, userInputs, proxy, userTree)
}
