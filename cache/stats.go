// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups.
type Stats struct {
	hit, miss atomic.Int64
	permille  atomic.Int32
}

// Hit records a hit and returns the hits so far.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss and returns the misses so far.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Counts returns hits and misses.
func (cs *Stats) Counts() (hit, miss int64) {
	return cs.hit.Load(), cs.miss.Load()
}

// HitRate returns hits over lookups, or 0 before the first lookup.
func (cs *Stats) HitRate() float64 {
	hit, miss := cs.Counts()
	if hit+miss == 0 {
		return 0
	}
	return float64(hit) / float64(hit+miss)
}

// Changed reports whether the hit rate, in permille, differs from the
// one seen by the previous call.
func (cs *Stats) Changed() bool {
	p := int32(cs.HitRate() * 1000)
	return cs.permille.Swap(p) != p
}
