// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bootstrap deploys a staking instance on a ledger: it mints the
// identity tokens and creates the initial singleton records.
package bootstrap

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
)

var logger = log.WithContext("pkg", "bootstrap")

const (
	// MinerFee is paid by every bootstrap transaction.
	MinerFee = paideia.MinBoxValue
	// PoolKeys is the number of stake pool keys minted to the owner.
	PoolKeys = 2
)

// Options describe a deployment.
type Options struct {
	// Params carries the reward and fee constants. Token ids are minted
	// and overwritten.
	Params config.Params
	// StakedTokenID is the existing token being staked. The funding boxes
	// must hold at least Supply whole units of it.
	StakedTokenID paideia.Bytes32
	// Supply is the number of whole tokens placed in the stake pool.
	Supply uint64
	// DailyEmission is the number of whole tokens emitted per cycle.
	DailyEmission uint64
	CycleDuration time.Duration
	// Start is the earliest time of the first emission.
	Start time.Time
	// Incentive is the nanoerg value of the initial incentive record.
	Incentive uint64
	// Owner receives the stake pool key and all change.
	Owner paideia.Tree
}

// Deployment is the result of a successful bootstrap.
type Deployment struct {
	Config    *config.Config
	State     *box.Box
	Pool      *box.Box
	Emission  *box.Box
	Incentive *box.Box
	PoolKey   *box.Box // owner box holding the stake pool key
}

func (o *Options) validate() error {
	if o.StakedTokenID.IsZero() {
		return errors.New("staked token id not set")
	}
	if o.Supply == 0 || o.DailyEmission == 0 {
		return errors.New("supply and daily emission must be positive")
	}
	if o.DailyEmission > o.Supply {
		return errors.New("daily emission exceeds supply")
	}
	if o.CycleDuration <= 0 {
		return errors.New("cycle duration must be positive")
	}
	if o.Incentive < paideia.MinBoxValue {
		return errors.Errorf("incentive below %d", paideia.MinBoxValue)
	}
	if len(o.Owner) == 0 {
		return errors.New("owner tree not set")
	}
	return nil
}

// Scaled converts whole tokens into base units.
func Scaled(whole uint64, decimals int) (uint64, error) {
	v := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	v.Mul(v, new(big.Int).SetUint64(whole))
	if !v.IsUint64() || v.Uint64() > uint64(1<<63-1) {
		return 0, errors.Errorf("%d tokens with %d decimals overflow", whole, decimals)
	}
	return v.Uint64(), nil
}

type token struct {
	name, description string
	amount            uint64
	decimals          int
}

// Deploy mints the identity tokens out of funding, then creates the stake
// state, stake pool, emission and incentive records. The funding boxes must
// be unspent on l and owned by the deployer.
func Deploy(ctx context.Context, l ledger.Ledger, funding []*box.Box, opts Options) (*Deployment, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.WithMessage(err, "bootstrap")
	}
	if len(funding) == 0 {
		return nil, errors.New("bootstrap: no funding boxes")
	}
	name := opts.Params.StakedTokenName
	decimals := opts.Params.StakedTokenDecimals
	supply, err := Scaled(opts.Supply, decimals)
	if err != nil {
		return nil, err
	}
	daily, err := Scaled(opts.DailyEmission, decimals)
	if err != nil {
		return nil, err
	}

	tokens := []token{
		{name + " Stake State", "Identifies the " + name + " stake state", 1, 0},
		{name + " Stake Pool", "Identifies the " + name + " stake pool", 1, 0},
		{name + " Emission", "Identifies the " + name + " emission", 1, 0},
		{name + " Stake Token", "Counts the " + name + " stakers", paideia.MaxStakeTokens, 0},
		{name + " Stake Pool Key", "Withdraws from the " + name + " stake pool", PoolKeys, 0},
	}
	ids := make([]paideia.Bytes32, len(tokens))
	boxes := funding
	for i, t := range tokens {
		ids[i] = boxes[0].ID()
		tx, err := ledger.NewBuilder().
			Input(boxes...).
			Output(box.NewBuilder().
				Value(paideia.MinBoxValue).
				Tree(opts.Owner).
				Asset(ids[i], t.amount).
				Mint(t.name, t.description, t.decimals).
				Build()).
			Fee(MinerFee).
			ChangeTo(opts.Owner).
			Build()
		if err != nil {
			return nil, errors.WithMessagef(err, "mint %s", t.name)
		}
		if err := l.Submit(ctx, tx); err != nil {
			return nil, errors.WithMessagef(err, "mint %s", t.name)
		}
		boxes = tx.Outputs()
		logger.Info("minted", "token", t.name, "id", ids[i])
	}

	params := opts.Params
	params.StakeStateNFT = ids[0]
	params.StakePoolNFT = ids[1]
	params.EmissionNFT = ids[2]
	params.StakeTokenID = ids[3]
	params.StakePoolKey = ids[4]
	params.StakedTokenID = opts.StakedTokenID
	cfg, err := config.NewBuilder().Params(params).Build()
	if err != nil {
		return nil, err
	}

	cycle := uint64(opts.CycleDuration / time.Millisecond)
	records := []*box.Box{
		staking.State{
			CheckpointTime: uint64(opts.Start.UnixMilli()) - cycle,
			CycleDuration:  cycle,
			Value:          paideia.MinBoxValue,
		}.Box(cfg),
		staking.Pool{
			EmissionAmount: daily,
			Remaining:      supply,
			Value:          paideia.MinBoxValue,
		}.Box(cfg),
		staking.Emission{
			Checkpoint: -1,
			Value:      paideia.EmissionValue,
		}.Box(cfg),
		staking.Incentive{Value: opts.Incentive}.Box(cfg),
		box.NewBuilder().
			Value(paideia.MinBoxValue).
			Tree(opts.Owner).
			Asset(cfg.StakePoolKey(), PoolKeys).
			Build(),
	}
	tx, err := ledger.NewBuilder().
		Input(boxes...).
		Output(records...).
		Fee(MinerFee).
		ChangeTo(opts.Owner).
		Build()
	if err != nil {
		return nil, errors.WithMessage(err, "create records")
	}
	if err := l.Submit(ctx, tx); err != nil {
		return nil, errors.WithMessage(err, "create records")
	}
	outs := tx.Outputs()
	logger.Info("staking deployed", "name", name, "state", outs[0].ID(), "supply", supply, "daily", daily)
	return &Deployment{
		Config:    cfg,
		State:     outs[0],
		Pool:      outs[1],
		Emission:  outs[2],
		Incentive: outs[3],
		PoolKey:   outs[4],
	}, nil
}
