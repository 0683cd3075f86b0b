// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"
)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandUint64N returns a random amount in [lo, hi).
func RandUint64N(lo, hi uint64) uint64 {
	return lo + mathrand.N(hi-lo) //#nosec G404
}
