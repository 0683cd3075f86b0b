// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/paideia"
)

// MaxOutputs bounds the outputs of a transaction.
const MaxOutputs = 1 << 15

// Verify checks the context free rules of tx: input references, value and
// token conservation, the mint rule and output validity.
func Verify(tx *Transaction) error {
	inputs := tx.body.Inputs
	if len(inputs) == 0 {
		return Reject("no inputs")
	}
	if len(tx.body.Outputs) == 0 || len(tx.body.Outputs) > MaxOutputs {
		return Reject("invalid output count %d", len(tx.body.Outputs))
	}

	seen := make(map[paideia.Bytes32]struct{}, len(inputs))
	var valueIn uint64
	for i, in := range inputs {
		if !in.HasRef() {
			return Reject("input #%d is not a ledger box", i)
		}
		if _, dup := seen[in.ID()]; dup {
			return Reject("input #%d spent twice", i)
		}
		seen[in.ID()] = struct{}{}
		if valueIn+in.Value() < valueIn {
			return Reject("input value overflow")
		}
		valueIn += in.Value()
	}

	valueOut := tx.body.Fee
	for i, out := range tx.body.Outputs {
		if out.HasRef() {
			return Reject("output #%d already referenced", i)
		}
		if err := out.Validate(); err != nil {
			return Reject("output #%d: %v", i, err)
		}
		if valueOut+out.Value() < valueOut {
			return Reject("output value overflow")
		}
		valueOut += out.Value()
	}
	if valueIn != valueOut {
		return Reject("value not conserved: in %d, out %d", valueIn, valueOut)
	}

	tokensIn, err := box.BalanceOf(inputs...)
	if err != nil {
		return Reject("%v", err)
	}
	tokensOut, err := box.BalanceOf(tx.body.Outputs...)
	if err != nil {
		return Reject("%v", err)
	}
	if err := tokensOut.Add(tx.body.Burn); err != nil {
		return Reject("%v", err)
	}
	mintID := tx.MintID()
	for id, out := range tokensOut {
		in := tokensIn[id]
		if out > in && (id != mintID || in != 0) {
			return Reject("token %v not conserved: in %d, out %d", id.AbbrevString(), in, out)
		}
	}
	for id, in := range tokensIn {
		if tokensOut[id] != in {
			return Reject("token %v not conserved: in %d, out %d", id.AbbrevString(), in, tokensOut[id])
		}
	}
	for _, a := range tx.body.Burn {
		if tokensIn[a.ID] == 0 {
			return Reject("burning absent token %v", a.ID.AbbrevString())
		}
	}
	return nil
}
