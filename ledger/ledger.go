// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"time"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Reader fetches confirmed unspent boxes.
type Reader interface {
	// Box returns the unspent box by id, ErrNotFound if unknown or spent.
	Box(ctx context.Context, id paideia.Bytes32) (*box.Box, error)
	// ByToken returns the unspent boxes holding the token.
	ByToken(ctx context.Context, tokenID paideia.Bytes32) ([]*box.Box, error)
	// ByTree returns the unspent boxes guarded by the tree.
	ByTree(ctx context.Context, tree paideia.Tree) ([]*box.Box, error)
}

// Ledger is the ledger as seen by staking: a box reader, a clock and a way
// to commit transactions.
type Ledger interface {
	Reader
	// Now returns the reference time used for precondition checks.
	Now() time.Time
	// Submit validates and commits tx atomically. A *RejectError is returned
	// when tx breaks a ledger or contract rule.
	Submit(ctx context.Context, tx *Transaction) error
}

// GuardContext is passed to a guard for each input it protects.
type GuardContext struct {
	Tx    *Transaction
	Index int
	Now   time.Time
}

// Box returns the guarded input.
func (c *GuardContext) Box() *box.Box {
	return c.Tx.Input(c.Index)
}

// Guard approves or rejects spending a box in a transaction.
type Guard interface {
	Check(ctx *GuardContext) error
}

// GuardFunc adapts a function to Guard.
type GuardFunc func(ctx *GuardContext) error

// Check implements Guard.
func (f GuardFunc) Check(ctx *GuardContext) error {
	return f(ctx)
}

// Guards maps tree hashes to the guard of that tree.
type Guards map[paideia.Bytes32]Guard
