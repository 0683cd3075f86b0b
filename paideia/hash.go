// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package paideia

import (
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

var hasherPool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Blake2b returns the blake2b-256 digest of the concatenated parts. Box
// ids, transaction ids and contract hashes are all derived with it.
func Blake2b(parts ...[]byte) (sum Bytes32) {
	if len(parts) == 1 {
		return blake2b.Sum256(parts[0])
	}
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)
	h.Reset()
	for _, p := range parts {
		h.Write(p)
	}
	h.Sum(sum[:0])
	return
}
