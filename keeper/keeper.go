// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package keeper drives a staking deployment forward: it executes pending
// proxies, emits when a cycle is due, compounds the emission into every
// position and merges dust incentive records.
package keeper

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/co"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
)

var logger = log.WithContext("pkg", "keeper")

const (
	DefaultInterval      = 10 * time.Second
	DefaultCompoundBatch = 50
)

type Options struct {
	// Interval between two rounds.
	Interval time.Duration
	// CompoundBatch is the max number of positions per Compound.
	CompoundBatch int
	// Wake, when set, starts a round early, e.g. on ledger commits.
	Wake co.Waiter
}

// Report counts the transitions committed in one round.
type Report struct {
	Proxies    int  `json:"proxies"`
	Skipped    int  `json:"skipped"`
	Emitted    bool `json:"emitted"`
	Compounded int  `json:"compounded"`
	Dust       int  `json:"dust"`
}

// Keeper submits transitions to a ledger on behalf of an executor.
type Keeper struct {
	cfg      *config.Config
	ledger   ledger.Ledger
	view     *staking.View
	executor paideia.Tree
	opts     Options
	goes     co.Goes
}

// New creates a keeper. Rewards are paid to executor.
func New(cfg *config.Config, l ledger.Ledger, executor paideia.Tree, opts Options) *Keeper {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.CompoundBatch <= 0 {
		opts.CompoundBatch = DefaultCompoundBatch
	}
	return &Keeper{
		cfg:      cfg,
		ledger:   l,
		view:     staking.NewView(cfg, l),
		executor: executor,
		opts:     opts,
	}
}

// Run plays rounds until ctx is done.
func (k *Keeper) Run(ctx context.Context) {
	defer k.goes.Wait()
	k.goes.Go(func() { k.loop(ctx) })
	<-ctx.Done()
}

func (k *Keeper) loop(ctx context.Context) {
	logger.Debug("enter keeper loop")
	defer logger.Debug("leave keeper loop")

	ticker := time.NewTicker(k.opts.Interval)
	defer ticker.Stop()

	var wake <-chan bool
	for {
		report, err := k.Round(ctx)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			logger.Error("keeper round failed", "err", err)
		case report.Proxies > 0 || report.Emitted || report.Compounded > 0 || report.Dust > 0:
			logger.Info("keeper round",
				"proxies", report.Proxies,
				"skipped", report.Skipped,
				"emitted", report.Emitted,
				"compounded", report.Compounded,
				"dust", report.Dust,
			)
		}

		if k.opts.Wake != nil {
			wake = k.opts.Wake.C()
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-wake:
		}
	}
}

// Round runs one pass: proxies, emission, compounding, then dust.
// Transitions the ledger refuses are logged and skipped; other errors
// abort the round.
func (k *Keeper) Round(ctx context.Context) (*Report, error) {
	var report Report
	err := evalRoundMetrics(func() error {
		if err := k.executeProxies(ctx, &report); err != nil {
			return errors.WithMessage(err, "proxies")
		}
		if err := k.emit(ctx, &report); err != nil {
			return errors.WithMessage(err, "emit")
		}
		if err := k.compound(ctx, &report); err != nil {
			return errors.WithMessage(err, "compound")
		}
		if err := k.consolidateDust(ctx, &report); err != nil {
			return errors.WithMessage(err, "consolidate dust")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// submit applies res and returns the committed transaction. It returns a
// nil transaction when the transition was refused, either by the staking
// rules or by the ledger.
func (k *Keeper) submit(ctx context.Context, action staking.Action, res *staking.Result, err error) (*ledger.Transaction, error) {
	var tx *ledger.Transaction
	if err == nil {
		if tx, err = res.Transaction(); err == nil {
			err = k.ledger.Submit(ctx, tx)
		}
	}
	switch {
	case err == nil:
		countTransition(action, "committed")
		return tx, nil
	case staking.IsInvalidInputBox(err), staking.IsInvalidTransactionConditions(err), ledger.IsRejected(err):
		countTransition(action, "refused")
		logger.Debug("transition refused", "action", action, "err", err)
		return nil, nil
	default:
		countTransition(action, "failed")
		return nil, err
	}
}

func (k *Keeper) executeProxies(ctx context.Context, report *Report) error {
	proxies, err := k.view.Proxies(ctx)
	if err != nil {
		return err
	}
	metricPendingProxies().Set(int64(len(proxies)))

	for _, proxy := range proxies {
		action, res, err := k.prepareProxy(ctx, proxy)
		if ledger.IsNotFound(err) {
			logger.Debug("proxy target missing", "proxy", proxy.ID().AbbrevString(), "err", err)
			report.Skipped++
			continue
		}
		tx, err := k.submit(ctx, action, res, err)
		if err != nil {
			return err
		}
		if tx != nil {
			report.Proxies++
		} else {
			report.Skipped++
		}
	}
	return nil
}

// prepareProxy builds the transition executing proxy against the current
// stake state.
func (k *Keeper) prepareProxy(ctx context.Context, proxy *box.Box) (staking.Action, *staking.Result, error) {
	stateBox, _, err := k.view.State(ctx)
	if err != nil {
		return 0, nil, err
	}
	c := k.cfg.ContractOf(proxy.Tree())
	if c == nil {
		return 0, nil, errors.Errorf("box %v is not a proxy", proxy.ID())
	}
	switch c.Kind() {
	case contract.StakeProxy:
		res, err := staking.Stake(k.cfg, stateBox, proxy, k.executor)
		return staking.ActionStake, res, err
	case contract.AddStakeProxy:
		p, err := staking.ReadAddStakeProxy(k.cfg, proxy)
		if err != nil {
			return staking.ActionAddStake, nil, err
		}
		stakeBox, _, err := k.view.Stake(ctx, p.StakeKey)
		if err != nil {
			return staking.ActionAddStake, nil, err
		}
		res, err := staking.AddStake(k.cfg, stateBox, stakeBox, proxy, k.executor)
		return staking.ActionAddStake, res, err
	case contract.UnstakeProxy:
		p, err := staking.ReadUnstakeProxy(k.cfg, proxy)
		if err != nil {
			return staking.ActionUnstake, nil, err
		}
		stakeBox, _, err := k.view.Stake(ctx, p.StakeKey)
		if err != nil {
			return staking.ActionUnstake, nil, err
		}
		res, err := staking.Unstake(k.cfg, stateBox, stakeBox, proxy, k.executor)
		return staking.ActionUnstake, res, err
	}
	return 0, nil, errors.Errorf("box %v is a %v, not a proxy", proxy.ID(), c.Kind())
}

func (k *Keeper) emit(ctx context.Context, report *Report) error {
	snap, err := k.snapshot(ctx)
	if err != nil {
		return err
	}
	now := k.ledger.Now()
	if ms := now.UnixMilli(); ms < 0 || uint64(ms) < snap.state.NextEmissionTime() || snap.emission.Stakers > 0 {
		return nil
	}
	if len(snap.incentives) == 0 {
		logger.Warn("no incentive record to pay the emission")
		return nil
	}
	res, err := staking.Emit(k.cfg, snap.stateBox, snap.poolBox, snap.emissionBox, snap.incentives[0], k.executor, now)
	tx, err := k.submit(ctx, staking.ActionEmit, res, err)
	if err != nil {
		return err
	}
	report.Emitted = tx != nil
	return nil
}

// compound folds the active emission into the positions on its
// checkpoint, CompoundBatch at a time. Each batch spends the emission and
// incentive records committed by the previous one.
func (k *Keeper) compound(ctx context.Context, report *Report) error {
	snap, err := k.snapshot(ctx)
	if err != nil {
		return err
	}
	if snap.emission.Stakers == 0 || len(snap.incentives) == 0 {
		return nil
	}
	var due []*box.Box
	for _, b := range snap.stakes {
		if p, err := staking.ReadPosition(k.cfg, b); err == nil && p.Checkpoint == snap.emission.Checkpoint {
			due = append(due, b)
		}
	}
	// stable order across rounds
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ID().String() < due[j].ID().String()
	})

	emissionBox, incentiveBox := snap.emissionBox, snap.incentives[0]
	for len(due) > 0 {
		n := min(len(due), k.opts.CompoundBatch)
		res, err := staking.Compound(k.cfg, emissionBox, due[:n], incentiveBox, k.executor)
		tx, err := k.submit(ctx, staking.ActionCompound, res, err)
		if err != nil {
			return err
		}
		if tx == nil {
			return nil
		}
		report.Compounded += n
		due = due[n:]
		// outputs: emission, stakes..., incentive, executor, then any change
		outs := tx.Outputs()
		emissionBox, incentiveBox = outs[0], outs[len(res.Outputs)-2]
	}
	return nil
}

func (k *Keeper) consolidateDust(ctx context.Context, report *Report) error {
	incentives, err := k.view.Incentives(ctx)
	if err != nil {
		return err
	}
	var dust []*box.Box
	for _, b := range incentives {
		if b.Value() <= paideia.MaxDustValue {
			dust = append(dust, b)
		}
	}
	if len(dust) < 2 {
		return nil
	}
	res, err := staking.ConsolidateDust(k.cfg, dust, k.executor)
	if staking.IsInvalidTransactionConditions(err) {
		// not enough value to pay for the merge yet
		return nil
	}
	tx, err := k.submit(ctx, staking.ActionConsolidateDust, res, err)
	if err != nil {
		return err
	}
	if tx != nil {
		report.Dust = len(res.Inputs)
	}
	return nil
}
