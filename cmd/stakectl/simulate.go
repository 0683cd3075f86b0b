// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/journal"
	"github.com/paideiadao/paideia-contracts/keeper"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/lvldb"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
	"github.com/paideiadao/paideia-contracts/utxo"
)

// simClock is a manually advanced clock.
type simClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *simClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *simClock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

// simSummary is printed at the end of a simulation.
type simSummary struct {
	Stakers       int             `json:"stakers"`
	Cycles        int             `json:"cycles"`
	Checkpoint    int64           `json:"checkpoint"`
	AmountStaked  uint64          `json:"amountStaked"`
	Deposited     uint64          `json:"deposited"`
	Rewards       uint64          `json:"rewards"`
	PoolRemaining uint64          `json:"poolRemaining"`
	FeesCollected uint64          `json:"feesCollected"`
	Transitions   int             `json:"transitions"`
	Latest        *journal.Entry  `json:"latest,omitempty"`
	Keeper        keeper.Report   `json:"keeper"`
	StakedTokenID paideia.Bytes32 `json:"stakedTokenId"`
}

func simulateAction(ctx *cli.Context) error {
	initLogger(ctx)
	bg := context.Background()

	params := selectParams(ctx)
	params.EmitFeeDenominator = ctx.Uint64(feeDenominatorFlag.Name)
	if params.EmitFeeDenominator > 0 && params.EmitFeeTree.IsEmpty() {
		params.EmitFeeTree = config.DefaultEmitFeeTree
	}
	cycle := 24 * time.Hour
	clock := &simClock{now: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)}

	db, err := lvldb.NewMem()
	if err != nil {
		return err
	}
	defer db.Close()

	owner, executor := userTree(-1), userTree(-2)
	dep, err := deployLocal(bg, db, deployPlan{
		params:    params,
		owner:     owner,
		supply:    ctx.Uint64(supplyFlag.Name),
		daily:     ctx.Uint64(dailyEmissionFlag.Name),
		cycle:     cycle,
		start:     clock.Now(),
		incentive: 1_000_000_000_000,
	})
	if err != nil {
		return errors.WithMessage(err, "deploy")
	}
	cfg := dep.Config

	l := utxo.New(db, staking.Guards(cfg), clock.Now)
	j, err := journal.NewMem()
	if err != nil {
		return err
	}
	defer j.Close()
	l.Subscribe(j.Recorder(cfg))

	stakers := ctx.Int(stakersFlag.Name)
	deposited, err := requestStakes(bg, cfg, l, stakers, clock.Now())
	if err != nil {
		return err
	}

	k := keeper.New(cfg, l, executor, keeper.Options{CompoundBatch: ctx.Int(compoundBatchFlag.Name)})
	cycles := ctx.Int(cyclesFlag.Name)
	bar := pb.New(cycles).
		SetMaxWidth(90).
		Start()
	var total keeper.Report
	for range cycles {
		report, err := k.Round(bg)
		if err != nil {
			bar.NotPrint = true
			return err
		}
		total.Proxies += report.Proxies
		total.Skipped += report.Skipped
		total.Compounded += report.Compounded
		total.Dust += report.Dust
		clock.Advance(cycle)
		bar.Increment()
	}
	bar.Finish()

	view := staking.NewView(cfg, l)
	_, state, err := view.State(bg)
	if err != nil {
		return err
	}
	_, pool, err := view.Pool(bg)
	if err != nil {
		return err
	}
	fees, err := l.ByTree(bg, cfg.EmitFeeTree())
	if err != nil {
		return err
	}
	entries, err := j.Filter(bg, nil)
	if err != nil {
		return err
	}
	latest, err := j.Latest(bg)
	if err != nil {
		return err
	}
	hit, miss := l.CacheStats().Counts()
	log.Debug("box cache", "hit", hit, "miss", miss)

	summary := &simSummary{
		Stakers:       stakers,
		Cycles:        cycles,
		Checkpoint:    state.Checkpoint,
		AmountStaked:  state.AmountStaked,
		Deposited:     deposited,
		Rewards:       state.AmountStaked - deposited,
		PoolRemaining: pool.Remaining,
		FeesCollected: stakedOf(fees, cfg.StakedTokenID()),
		Transitions:   len(entries),
		Latest:        latest,
		Keeper:        total,
		StakedTokenID: cfg.StakedTokenID(),
	}

	if ctx.Bool(dumpFlag.Name) {
		_, emission, err := view.Emission(bg)
		if err != nil {
			return err
		}
		spew.Dump(state, pool, emission)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// requestStakes funds n users and places one stake proxy each. Amounts
// cycle through 1..100 times the minimum stake. It returns the total
// requested.
func requestStakes(ctx context.Context, cfg *config.Config, l *utxo.Ledger, n int, now time.Time) (uint64, error) {
	var total uint64
	for i := range n {
		user := userTree(i)
		amount := paideia.MinStakeAmount * uint64(1+i%100)
		assets, err := staking.StakeProxyAssets(cfg, amount)
		if err != nil {
			return 0, err
		}
		wallets, err := l.Genesis(box.NewBuilder().
			Value(assets.NanoErgs).
			Tree(user).
			Asset(cfg.StakedTokenID(), amount).
			Build())
		if err != nil {
			return 0, err
		}
		res, err := staking.CreateStakeProxy(cfg, wallets, amount, user, now)
		if err != nil {
			return 0, err
		}
		if err := submit(ctx, l, res); err != nil {
			return 0, errors.WithMessagef(err, "stake request #%d", i)
		}
		total += amount
	}
	return total, nil
}

func submit(ctx context.Context, l ledger.Ledger, res *staking.Result) error {
	tx, err := res.Transaction()
	if err != nil {
		return err
	}
	return l.Submit(ctx, tx)
}
