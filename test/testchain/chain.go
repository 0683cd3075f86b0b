// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain runs a staking deployment on an in-memory ledger for
// integration tests.
package testchain

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/bootstrap"
	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/lvldb"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
	"github.com/paideiadao/paideia-contracts/test/datagen"
	"github.com/paideiadao/paideia-contracts/utxo"
)

// Genesis is the start time of every test chain.
var Genesis = time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

// Cycle is the emission cycle of every test chain.
const Cycle = 24 * time.Hour

// Deployment amounts, in whole staked tokens.
const (
	Supply   = 10_000_000
	Daily    = 29_300
	Decimals = 4
)

// Chain is a deployed staking instance with a controllable clock.
type Chain struct {
	db         *lvldb.LevelDB
	ledger     *utxo.Ledger
	deployment *bootstrap.Deployment
	view       *staking.View

	lock sync.Mutex
	now  time.Time

	Owner         paideia.Tree
	Executor      paideia.Tree
	StakedTokenID paideia.Bytes32
}

// New deploys a chain with the given emission fee denominator.
func New(feeDenominator uint64) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	c := &Chain{
		db:            db,
		now:           Genesis,
		Owner:         datagen.RandomTree(),
		Executor:      datagen.RandomTree(),
		StakedTokenID: datagen.RandomHash(),
	}

	params := config.DefaultParams()
	params.StakedTokenName = "Paideia"
	params.StakedTokenDecimals = Decimals
	params.EmitFeeDenominator = feeDenominator
	params.EmitFeeTree = config.DefaultEmitFeeTree

	// contract trees are unknown until the tokens are minted, so the
	// deployment runs on an unguarded view of the same store
	boot := utxo.New(db, nil, c.Now)
	funding, err := boot.Genesis(box.NewBuilder().
		Value(10_000_000_000).
		Tree(c.Owner).
		Asset(c.StakedTokenID, Supply*10_000).
		Build())
	if err != nil {
		return nil, err
	}
	dep, err := bootstrap.Deploy(context.Background(), boot, funding, bootstrap.Options{
		Params:        params,
		StakedTokenID: c.StakedTokenID,
		Supply:        Supply,
		DailyEmission: Daily,
		CycleDuration: Cycle,
		Start:         Genesis,
		Incentive:     1_000_000_000,
		Owner:         c.Owner,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "deploy")
	}

	c.deployment = dep
	c.ledger = utxo.New(db, staking.Guards(dep.Config), c.Now)
	c.view = staking.NewView(dep.Config, c.ledger)
	return c, nil
}

// Close releases the database.
func (c *Chain) Close() error {
	return c.db.Close()
}

func (c *Chain) Ledger() *utxo.Ledger              { return c.ledger }
func (c *Chain) Config() *config.Config            { return c.deployment.Config }
func (c *Chain) Deployment() *bootstrap.Deployment { return c.deployment }
func (c *Chain) View() *staking.View               { return c.view }

// Now returns the chain clock.
func (c *Chain) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Chain) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

// Fund creates a user box out of nothing.
func (c *Chain) Fund(tree paideia.Tree, value, staked uint64) (*box.Box, error) {
	b := box.NewBuilder().Value(value).Tree(tree).Asset(c.StakedTokenID, staked)
	boxes, err := c.ledger.Genesis(b.Build())
	if err != nil {
		return nil, err
	}
	return boxes[0], nil
}

// Apply submits the transaction of res and returns the created boxes.
func (c *Chain) Apply(ctx context.Context, res *staking.Result) ([]*box.Box, error) {
	tx, err := res.Transaction()
	if err != nil {
		return nil, err
	}
	if err := c.ledger.Submit(ctx, tx); err != nil {
		return nil, err
	}
	return tx.Outputs(), nil
}

// RequestStake funds user and places a stake proxy for amount on the
// ledger. It returns the proxy box.
func (c *Chain) RequestStake(ctx context.Context, user paideia.Tree, amount uint64) (*box.Box, error) {
	assets, err := staking.StakeProxyAssets(c.Config(), amount)
	if err != nil {
		return nil, err
	}
	wallet, err := c.Fund(user, assets.NanoErgs, amount)
	if err != nil {
		return nil, err
	}
	res, err := staking.CreateStakeProxy(c.Config(), []*box.Box{wallet}, amount, user, c.Now())
	if err != nil {
		return nil, err
	}
	outs, err := c.Apply(ctx, res)
	if err != nil {
		return nil, err
	}
	return outs[0], nil
}

// Stake runs a full stake for user: fund, create the proxy and execute
// it. It returns the stake key.
func (c *Chain) Stake(ctx context.Context, user paideia.Tree, amount uint64) (paideia.Bytes32, error) {
	proxy, err := c.RequestStake(ctx, user, amount)
	if err != nil {
		return paideia.Bytes32{}, err
	}
	stateBox, _, err := c.view.State(ctx)
	if err != nil {
		return paideia.Bytes32{}, err
	}
	res, err := staking.Stake(c.Config(), stateBox, proxy, c.Executor)
	if err != nil {
		return paideia.Bytes32{}, err
	}
	if _, err := c.Apply(ctx, res); err != nil {
		return paideia.Bytes32{}, err
	}
	return res.StakeKey, nil
}
