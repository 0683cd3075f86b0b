// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"

	gmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
)

// maxLong is the largest amount a register long can hold.
const maxLong = math.MaxInt64

func add(what string, x, y uint64) (uint64, error) {
	sum, overflow := gmath.SafeAdd(x, y)
	if overflow || sum > maxLong {
		return 0, invalidConditions("%s overflows", what)
	}
	return sum, nil
}

func sub(what string, x, y uint64) (uint64, error) {
	diff, overflow := gmath.SafeSub(x, y)
	if overflow {
		return 0, invalidConditions("%s underflows", what)
	}
	return diff, nil
}

func mul(what string, x, y uint64) (uint64, error) {
	prod, overflow := gmath.SafeMul(x, y)
	if overflow || prod > maxLong {
		return 0, invalidConditions("%s overflows", what)
	}
	return prod, nil
}

// share returns floor(amount * total / base) without intermediate overflow.
func share(amount, total, base uint64) (uint64, error) {
	if base == 0 {
		return 0, invalidConditions("share of empty base")
	}
	var r uint256.Int
	r.Mul(uint256.NewInt(amount), uint256.NewInt(total))
	r.Div(&r, uint256.NewInt(base))
	if !r.IsUint64() {
		return 0, invalidConditions("share overflows")
	}
	return r.Uint64(), nil
}

// toLong converts an amount into a register long. Amounts produced by add
// and mul always fit.
func toLong(v uint64) int64 {
	if v > maxLong {
		panic("amount exceeds register range")
	}
	return int64(v)
}
