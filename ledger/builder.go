// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// Builder assembles a transaction from inputs, output candidates, fee and
// change destination. Whatever value and tokens are not claimed by outputs,
// fee or burn go to a change box.
type Builder struct {
	inputs  []*box.Box
	outputs []*box.Box
	fee     uint64
	burn    box.Assets
	change  paideia.Tree
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Input appends boxes to spend.
func (b *Builder) Input(boxes ...*box.Box) *Builder {
	b.inputs = append(b.inputs, boxes...)
	return b
}

// Output appends output candidates.
func (b *Builder) Output(boxes ...*box.Box) *Builder {
	b.outputs = append(b.outputs, boxes...)
	return b
}

// Fee sets the miner fee.
func (b *Builder) Fee(fee uint64) *Builder {
	b.fee = fee
	return b
}

// Burn declares assets destroyed by the transaction.
func (b *Builder) Burn(assets box.Assets) *Builder {
	b.burn = append(b.burn, assets...)
	return b
}

// ChangeTo sets the tree receiving leftovers.
func (b *Builder) ChangeTo(tree paideia.Tree) *Builder {
	b.change = append(paideia.Tree(nil), tree...)
	return b
}

// Build balances and builds the transaction.
func (b *Builder) Build() (*Transaction, error) {
	if len(b.inputs) == 0 {
		return nil, errors.New("no inputs")
	}
	seen := make(map[paideia.Bytes32]struct{}, len(b.inputs))
	var valueIn uint64
	for i, in := range b.inputs {
		if !in.HasRef() {
			return nil, errors.Errorf("input #%d is a candidate", i)
		}
		if _, dup := seen[in.ID()]; dup {
			return nil, errors.Errorf("input #%d spent twice", i)
		}
		seen[in.ID()] = struct{}{}
		if valueIn+in.Value() < valueIn {
			return nil, errors.New("input value overflow")
		}
		valueIn += in.Value()
	}
	tokensIn, err := box.BalanceOf(b.inputs...)
	if err != nil {
		return nil, err
	}

	var valueOut uint64
	for _, out := range b.outputs {
		if valueOut+out.Value() < valueOut {
			return nil, errors.New("output value overflow")
		}
		valueOut += out.Value()
	}
	if valueOut+b.fee < valueOut {
		return nil, errors.New("output value overflow")
	}
	valueOut += b.fee
	if valueOut > valueIn {
		return nil, errors.Errorf("insufficient value: need %d, have %d", valueOut, valueIn)
	}

	tokensOut, err := box.BalanceOf(b.outputs...)
	if err != nil {
		return nil, err
	}
	if err := tokensOut.Add(b.burn); err != nil {
		return nil, err
	}
	mintID := b.inputs[0].ID()
	for id, used := range tokensOut {
		if have := tokensIn[id]; have < used && (id != mintID || have != 0) {
			return nil, errors.Errorf("insufficient token %v", id.AbbrevString())
		}
	}
	var leftover box.Assets
	for _, in := range b.inputs {
		for _, a := range in.Assets() {
			if have, used := tokensIn[a.ID], tokensOut[a.ID]; have > used {
				leftover = append(leftover, box.Asset{ID: a.ID, Amount: have - used})
				tokensOut[a.ID] = have
			}
		}
	}

	fee := b.fee
	outputs := append([]*box.Box(nil), b.outputs...)
	if rest := valueIn - valueOut; rest > 0 || len(leftover) > 0 {
		switch {
		case len(b.change) == 0:
			return nil, errors.New("unbalanced transaction without change tree")
		case rest >= paideia.MinOutputValue:
			outputs = append(outputs, box.NewBuilder().Value(rest).Tree(b.change).Assets(leftover).Build())
		case len(leftover) == 0:
			// dust below the minimum box value goes to the miner
			fee += rest
		default:
			return nil, errors.Errorf("insufficient value for change: %d", rest)
		}
	}

	return &Transaction{body: body{
		Inputs:  append([]*box.Box(nil), b.inputs...),
		Outputs: outputs,
		Fee:     fee,
		Burn:    b.burn.Copy(),
	}}, nil
}
