// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package box

import (
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/paideia"
)

// Asset is an amount of a fungible token held by a box.
type Asset struct {
	ID     paideia.Bytes32 `json:"tokenId"`
	Amount uint64          `json:"amount"`
}

// Assets is the ordered token list of a box. Ids are unique.
type Assets []Asset

// Amount returns the amount held for id, zero if absent.
func (a Assets) Amount(id paideia.Bytes32) uint64 {
	for _, asset := range a {
		if asset.ID == id {
			return asset.Amount
		}
	}
	return 0
}

// Has returns whether id is present.
func (a Assets) Has(id paideia.Bytes32) bool {
	for _, asset := range a {
		if asset.ID == id {
			return true
		}
	}
	return false
}

// Copy returns a copy of the list.
func (a Assets) Copy() Assets {
	if a == nil {
		return nil
	}
	return append(Assets(nil), a...)
}

// Validate checks ids are unique and amounts positive.
func (a Assets) Validate() error {
	seen := make(map[paideia.Bytes32]struct{}, len(a))
	for i, asset := range a {
		if asset.Amount == 0 {
			return errors.Errorf("asset #%d: zero amount", i)
		}
		if _, ok := seen[asset.ID]; ok {
			return errors.Errorf("asset #%d: duplicated id %v", i, asset.ID.AbbrevString())
		}
		seen[asset.ID] = struct{}{}
	}
	return nil
}

// Balance is an unordered token tally, used to check conservation across
// sets of boxes.
type Balance map[paideia.Bytes32]uint64

// Add accumulates the assets into the balance. It fails on overflow.
func (b Balance) Add(assets Assets) error {
	for _, asset := range assets {
		sum := b[asset.ID] + asset.Amount
		if sum < asset.Amount {
			return errors.Errorf("asset %v: amount overflow", asset.ID.AbbrevString())
		}
		b[asset.ID] = sum
	}
	return nil
}

// Covers reports whether b holds at least the given assets.
func (b Balance) Covers(assets Assets) bool {
	for _, asset := range assets {
		if b[asset.ID] < asset.Amount {
			return false
		}
	}
	return true
}

// BalanceOf tallies the assets of all boxes.
func BalanceOf(boxes ...*Box) (Balance, error) {
	bal := make(Balance)
	for _, b := range boxes {
		if err := bal.Add(b.body.Assets); err != nil {
			return nil, err
		}
	}
	return bal, nil
}
