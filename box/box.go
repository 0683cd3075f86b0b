// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package box

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/paideia"
)

// Box is an immutable ledger record: a value, ordered assets and typed
// registers, guarded by a tree. A box created by a transaction carries a
// reference to it; a box without one is an output candidate.
type Box struct {
	body body
	ref  *Ref

	cache struct {
		id atomic.Pointer[paideia.Bytes32]
	}
}

type body struct {
	Value     uint64
	Tree      paideia.Tree
	Assets    Assets
	Registers []Register
}

// Ref locates a box as an output of a transaction.
type Ref struct {
	TxID  paideia.Bytes32
	Index uint16
}

// Value returns the nanoerg value.
func (b *Box) Value() uint64 {
	return b.body.Value
}

// Tree returns the guarding tree.
func (b *Box) Tree() paideia.Tree {
	return append(paideia.Tree(nil), b.body.Tree...)
}

// Assets returns a copy of the ordered assets.
func (b *Box) Assets() Assets {
	return b.body.Assets.Copy()
}

// Asset returns the amount held for the token id.
func (b *Box) Asset(id paideia.Bytes32) uint64 {
	return b.body.Assets.Amount(id)
}

// Registers returns a copy of the registers, starting at R4.
func (b *Box) Registers() []Register {
	return append([]Register(nil), b.body.Registers...)
}

// Register returns register Rn, n in [R4, R9].
func (b *Box) Register(n int) (Register, bool) {
	i := n - R4
	if i < 0 || i >= len(b.body.Registers) {
		return Register{}, false
	}
	return b.body.Registers[i], true
}

// HasRef returns whether the box was created by a transaction.
func (b *Box) HasRef() bool {
	return b.ref != nil
}

// Ref returns the creating output reference, zero for candidates.
func (b *Box) Ref() Ref {
	if b.ref == nil {
		return Ref{}
	}
	return *b.ref
}

// ID returns the box id, blake2b-256 of the encoded body and its output
// reference. Candidates have a zero id.
func (b *Box) ID() paideia.Bytes32 {
	if b.ref == nil {
		return paideia.Bytes32{}
	}
	if cached := b.cache.id.Load(); cached != nil {
		return *cached
	}

	var index [2]byte
	binary.BigEndian.PutUint16(index[:], b.ref.Index)
	id := paideia.Blake2b(b.encodeBody(), b.ref.TxID[:], index[:])
	b.cache.id.Store(&id)
	return id
}

// SameContent reports whether both boxes have identical value, tree, assets
// and registers, regardless of their references.
func (b *Box) SameContent(other *Box) bool {
	return bytes.Equal(b.encodeBody(), other.encodeBody())
}

func (b *Box) encodeBody() []byte {
	data, err := rlp.EncodeToBytes(&b.body)
	if err != nil {
		panic(err)
	}
	return data
}

// WithRef returns a copy referenced as output index of txID.
func (b *Box) WithRef(txID paideia.Bytes32, index uint16) *Box {
	return &Box{
		body: b.body,
		ref:  &Ref{TxID: txID, Index: index},
	}
}

// WithValue returns a candidate copy with value replaced.
func (b *Box) WithValue(value uint64) *Box {
	nb := Box{body: b.body}
	nb.body.Value = value
	return &nb
}

// WithTree returns a candidate copy with tree replaced.
func (b *Box) WithTree(tree paideia.Tree) *Box {
	nb := Box{body: b.body}
	nb.body.Tree = append(paideia.Tree(nil), tree...)
	return &nb
}

// WithAssets returns a candidate copy with assets replaced.
func (b *Box) WithAssets(assets Assets) *Box {
	nb := Box{body: b.body}
	nb.body.Assets = assets.Copy()
	return &nb
}

// WithRegisters returns a candidate copy with registers replaced.
func (b *Box) WithRegisters(regs ...Register) *Box {
	nb := Box{body: b.body}
	nb.body.Registers = append([]Register(nil), regs...)
	return &nb
}

// Validate checks the structural rules every box must follow.
func (b *Box) Validate() error {
	if b.body.Value < paideia.MinOutputValue {
		return errors.Errorf("value %d below minimum %d", b.body.Value, paideia.MinOutputValue)
	}
	if len(b.body.Tree) == 0 {
		return errors.New("empty tree")
	}
	if len(b.body.Registers) > MaxRegisters {
		return errors.Errorf("too many registers: %d", len(b.body.Registers))
	}
	return b.body.Assets.Validate()
}

type boxRLP struct {
	Body body
	Ref  *Ref `rlp:"nil"`
}

// EncodeRLP implements rlp.Encoder.
func (b *Box) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &boxRLP{Body: b.body, Ref: b.ref})
}

// DecodeRLP implements rlp.Decoder.
func (b *Box) DecodeRLP(s *rlp.Stream) error {
	var dec boxRLP
	if err := s.Decode(&dec); err != nil {
		return err
	}
	b.body = dec.Body
	b.ref = dec.Ref
	b.cache.id.Store(nil)
	return nil
}
