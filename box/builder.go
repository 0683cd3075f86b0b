// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package box

import (
	"strconv"

	"github.com/paideiadao/paideia-contracts/paideia"
)

// Builder to make it easy to build a box candidate.
type Builder struct {
	body body
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Value sets the nanoerg value.
func (b *Builder) Value(v uint64) *Builder {
	b.body.Value = v
	return b
}

// Tree sets the guarding tree.
func (b *Builder) Tree(tree paideia.Tree) *Builder {
	b.body.Tree = append(paideia.Tree(nil), tree...)
	return b
}

// Asset appends an asset. Zero amounts are skipped.
func (b *Builder) Asset(id paideia.Bytes32, amount uint64) *Builder {
	if amount > 0 {
		b.body.Assets = append(b.body.Assets, Asset{id, amount})
	}
	return b
}

// Assets appends a list of assets.
func (b *Builder) Assets(assets Assets) *Builder {
	for _, a := range assets {
		b.Asset(a.ID, a.Amount)
	}
	return b
}

// Register appends the next register, starting at R4.
func (b *Builder) Register(r Register) *Builder {
	b.body.Registers = append(b.body.Registers, r)
	return b
}

// Mint appends the token metadata registers of a minting output:
// R4 name, R5 description, R6 decimals.
func (b *Builder) Mint(name, description string, decimals int) *Builder {
	return b.Register(Bytes([]byte(name))).
		Register(Bytes([]byte(description))).
		Register(Bytes([]byte(strconv.Itoa(decimals))))
}

// Build builds the candidate.
func (b *Builder) Build() *Box {
	nb := Box{body: b.body}
	nb.body.Assets = b.body.Assets.Copy()
	nb.body.Registers = append([]Register(nil), b.body.Registers...)
	return &nb
}
