// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"

	"github.com/paideiadao/paideia-contracts/box"
)

// WithRandomRef places a candidate as an output of a random transaction.
func WithRandomRef(b *box.Box) *box.Box {
	return b.WithRef(RandomHash(), uint16(mathrand.N(16))) //#nosec G404
}
