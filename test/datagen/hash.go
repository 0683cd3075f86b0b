// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/paideiadao/paideia-contracts/paideia"
)

func RandomHash() paideia.Bytes32 {
	var b32 paideia.Bytes32

	rand.Read(b32[:])
	return b32
}

// RandomTree returns a random user owner tree.
func RandomTree() paideia.Tree {
	tree := make(paideia.Tree, 36)
	copy(tree, []byte{0x00, 0x08, 0xcd, 0x02})
	rand.Read(tree[4:])
	return tree
}
