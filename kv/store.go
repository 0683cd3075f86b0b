// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value storage abstraction the ledger persists into.
package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Getter defines methods to read kv.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter defines methods to write kv.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Snapshot is a consistent read view of the store.
type Snapshot interface {
	Getter
	Release()
}

// Bulk collects writes and applies them in one shot.
type Bulk interface {
	Putter
	EnableAutoFlush() // if set, the bulk will be non-atomic
	Write() error
}

// Iterator iterates over kv pairs.
type Iterator interface {
	First() bool
	Last() bool
	Next() bool
	Prev() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range is the key range.
type Range struct {
	Start []byte // start of key range (included)
	Limit []byte // limit of key range (excluded)
}

// Prefix returns the range covering all keys with the given prefix.
func Prefix(p []byte) Range {
	r := util.BytesPrefix(p)
	return Range{Start: r.Start, Limit: r.Limit}
}

// Store defines the full functional kv store.
type Store interface {
	Getter
	Putter

	Snapshot() Snapshot
	Bulk() Bulk
	Iterate(r Range) Iterator
}

// ForEach walks every pair in r, stopping early when fn returns false.
func ForEach(s Store, r Range, fn func(key, val []byte) bool) error {
	it := s.Iterate(r)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}
