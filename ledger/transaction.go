// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Transaction is an immutable, unsigned transaction: it spends whole input
// boxes and creates output boxes.
type Transaction struct {
	body body

	cache struct {
		id atomic.Pointer[paideia.Bytes32]
	}
}

type body struct {
	Inputs  []*box.Box
	Outputs []*box.Box
	Fee     uint64
	Burn    box.Assets
}

// ID returns the transaction id, blake2b-256 of its encoding.
func (t *Transaction) ID() paideia.Bytes32 {
	if cached := t.cache.id.Load(); cached != nil {
		return *cached
	}
	data, err := rlp.EncodeToBytes(&t.body)
	if err != nil {
		panic(err)
	}
	id := paideia.Blake2b(data)
	t.cache.id.Store(&id)
	return id
}

// Inputs returns the spent boxes, in order.
func (t *Transaction) Inputs() []*box.Box {
	return append([]*box.Box(nil), t.body.Inputs...)
}

// Input returns input i.
func (t *Transaction) Input(i int) *box.Box {
	return t.body.Inputs[i]
}

// InputIDs returns the ids of the spent boxes.
func (t *Transaction) InputIDs() []paideia.Bytes32 {
	ids := make([]paideia.Bytes32, len(t.body.Inputs))
	for i, in := range t.body.Inputs {
		ids[i] = in.ID()
	}
	return ids
}

// Outputs returns the created boxes, referenced to this transaction.
func (t *Transaction) Outputs() []*box.Box {
	id := t.ID()
	outs := make([]*box.Box, len(t.body.Outputs))
	for i, out := range t.body.Outputs {
		outs[i] = out.WithRef(id, uint16(i))
	}
	return outs
}

// Fee returns the miner fee.
func (t *Transaction) Fee() uint64 {
	return t.body.Fee
}

// Burn returns the assets destroyed by this transaction.
func (t *Transaction) Burn() box.Assets {
	return t.body.Burn.Copy()
}

// MintID returns the id a token minted by this transaction must have: the id
// of the first input.
func (t *Transaction) MintID() paideia.Bytes32 {
	if len(t.body.Inputs) == 0 {
		return paideia.Bytes32{}
	}
	return t.body.Inputs[0].ID()
}

// EncodeRLP implements rlp.Encoder.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	t.body = body
	t.cache.id.Store(nil)
	return nil
}
