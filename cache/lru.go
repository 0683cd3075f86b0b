// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache holds in-memory caches for hot ledger reads.
package cache

import (
	lru "github.com/hashicorp/golang-lru"
)

// LRU is a size-bounded cache that counts its hits and misses.
type LRU[K comparable, V any] struct {
	c     *lru.Cache
	stats Stats
}

// NewLRU creates a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{c: c}, nil
}

// Get returns the cached value for key.
func (l *LRU[K, V]) Get(key K) (v V, ok bool) {
	raw, ok := l.c.Get(key)
	if !ok {
		l.stats.Miss()
		return v, false
	}
	l.stats.Hit()
	return raw.(V), true
}

// Add caches val under key.
func (l *LRU[K, V]) Add(key K, val V) {
	l.c.Add(key, val)
}

// Remove evicts key.
func (l *LRU[K, V]) Remove(key K) {
	l.c.Remove(key)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.c.Len()
}

// GetOrLoad first tries the cache, and calls load on a miss.
// Failed loads are not cached.
func (l *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := load(key)
	if err != nil {
		return v, err
	}
	l.c.Add(key, v)
	return v, nil
}

// Stats returns the hit/miss counters of the cache.
func (l *LRU[K, V]) Stats() *Stats {
	return &l.stats
}
