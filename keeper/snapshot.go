// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keeper

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/staking"
)

// snapshot holds the records a round decides on.
type snapshot struct {
	stateBox    *box.Box
	state       staking.State
	poolBox     *box.Box
	pool        staking.Pool
	emissionBox *box.Box
	emission    staking.Emission
	incentives  []*box.Box // largest first
	stakes      []*box.Box
}

// snapshot loads the records concurrently. Reads are not isolated from
// commits in between; guards reject whatever went stale.
func (k *Keeper) snapshot(ctx context.Context) (*snapshot, error) {
	var s snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.stateBox, s.state, err = k.view.State(ctx)
		return
	})
	g.Go(func() (err error) {
		s.poolBox, s.pool, err = k.view.Pool(ctx)
		return
	})
	g.Go(func() (err error) {
		s.emissionBox, s.emission, err = k.view.Emission(ctx)
		return
	})
	g.Go(func() (err error) {
		s.incentives, err = k.view.Incentives(ctx)
		return
	})
	g.Go(func() (err error) {
		s.stakes, err = k.view.Stakes(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}
