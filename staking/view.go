// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/contract"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// View locates the current records of a deployment on a ledger.
type View struct {
	cfg *config.Config
	r   ledger.Reader
}

// NewView creates a view.
func NewView(cfg *config.Config, r ledger.Reader) *View {
	return &View{cfg: cfg, r: r}
}

// Config returns the deployment config.
func (v *View) Config() *config.Config {
	return v.cfg
}

// singleton returns the unspent box holding nft under c.
func (v *View) singleton(ctx context.Context, nft paideia.Bytes32, c *contract.Contract) (*box.Box, error) {
	boxes, err := v.r.ByToken(ctx, nft)
	if err != nil {
		return nil, err
	}
	for _, b := range boxes {
		if c.Guards(b.Tree()) {
			return b, nil
		}
	}
	return nil, errors.WithMessagef(ledger.ErrNotFound, "%v record", c.Kind())
}

// State returns the stake state box and its view.
func (v *View) State(ctx context.Context) (*box.Box, State, error) {
	b, err := v.singleton(ctx, v.cfg.StakeStateNFT(), v.cfg.StakeStateContract())
	if err != nil {
		return nil, State{}, err
	}
	s, err := ReadState(v.cfg, b)
	return b, s, err
}

// Pool returns the stake pool box and its view.
func (v *View) Pool(ctx context.Context) (*box.Box, Pool, error) {
	b, err := v.singleton(ctx, v.cfg.StakePoolNFT(), v.cfg.StakePoolContract())
	if err != nil {
		return nil, Pool{}, err
	}
	p, err := ReadPool(v.cfg, b)
	return b, p, err
}

// Emission returns the emission box and its view.
func (v *View) Emission(ctx context.Context) (*box.Box, Emission, error) {
	b, err := v.singleton(ctx, v.cfg.EmissionNFT(), v.cfg.EmissionContract())
	if err != nil {
		return nil, Emission{}, err
	}
	e, err := ReadEmission(v.cfg, b)
	return b, e, err
}

// Incentives returns the incentive records, largest first.
func (v *View) Incentives(ctx context.Context) ([]*box.Box, error) {
	boxes, err := v.valid(ctx, v.cfg.IncentiveContract(), func(b *box.Box) error {
		_, err := ReadIncentive(v.cfg, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Value() > boxes[j].Value() })
	return boxes, nil
}

// Stakes returns every valid stake record.
func (v *View) Stakes(ctx context.Context) ([]*box.Box, error) {
	return v.valid(ctx, v.cfg.StakeContract(), func(b *box.Box) error {
		_, err := ReadPosition(v.cfg, b)
		return err
	})
}

// Stake returns the stake record of key.
func (v *View) Stake(ctx context.Context, key paideia.Bytes32) (*box.Box, Position, error) {
	boxes, err := v.r.ByTree(ctx, v.cfg.StakeContract().Tree())
	if err != nil {
		return nil, Position{}, err
	}
	for _, b := range boxes {
		p, err := ReadPosition(v.cfg, b)
		if err == nil && p.StakeKey == key {
			return b, p, nil
		}
	}
	return nil, Position{}, errors.WithMessagef(ledger.ErrNotFound, "stake %v", key)
}

// Proxies returns the pending proxies of every kind, stake proxies first.
func (v *View) Proxies(ctx context.Context) ([]*box.Box, error) {
	var out []*box.Box
	for _, c := range []*contract.Contract{
		v.cfg.StakeProxyContract(),
		v.cfg.AddStakeProxyContract(),
		v.cfg.UnstakeProxyContract(),
	} {
		boxes, err := v.r.ByTree(ctx, c.Tree())
		if err != nil {
			return nil, err
		}
		out = append(out, boxes...)
	}
	return out, nil
}

// valid returns boxes under c that pass check. Malformed boxes anyone can
// send to a contract tree are skipped.
func (v *View) valid(ctx context.Context, c *contract.Contract, check func(*box.Box) error) ([]*box.Box, error) {
	boxes, err := v.r.ByTree(ctx, c.Tree())
	if err != nil {
		return nil, err
	}
	out := boxes[:0]
	for _, b := range boxes {
		if err := check(b); err == nil {
			out = append(out, b)
		}
	}
	return out, nil
}
