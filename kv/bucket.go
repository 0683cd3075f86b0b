// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"sync"
)

// Bucket namespaces a store by prefixing every key.
type Bucket string

type buf struct {
	k []byte
}

var bufPool = sync.Pool{
	New: func() any {
		return &buf{}
	},
}

// with runs fn with the bucketed form of key held in a pooled buffer.
func (b Bucket) with(key []byte, fn func(k []byte)) {
	buf := bufPool.Get().(*buf)
	defer bufPool.Put(buf)
	buf.k = append(append(buf.k[:0], b...), key...)
	fn(buf.k)
}

// Key returns the bucketed key in a fresh slice.
func (b Bucket) Key(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
	}{
		func(key []byte) (val []byte, err error) {
			b.with(key, func(k []byte) { val, err = src.Get(k) })
			return
		},
		func(key []byte) (has bool, err error) {
			b.with(key, func(k []byte) { has, err = src.Has(k) })
			return
		},
		src.IsNotFound,
	}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) (err error) {
			b.with(key, func(k []byte) { err = src.Put(k, val) })
			return
		},
		func(key []byte) (err error) {
			b.with(key, func(k []byte) { err = src.Delete(k) })
			return
		},
	}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &struct {
		Getter
		Putter
		SnapshotFunc
		BulkFunc
		IterateFunc
	}{
		b.NewGetter(src),
		b.NewPutter(src),
		func() Snapshot {
			snapshot := src.Snapshot()
			return &struct {
				Getter
				ReleaseFunc
			}{
				b.NewGetter(snapshot),
				snapshot.Release,
			}
		},
		func() Bulk {
			bulk := src.Bulk()
			return &struct {
				Putter
				EnableAutoFlushFunc
				WriteFunc
			}{
				b.NewPutter(bulk),
				bulk.EnableAutoFlush,
				bulk.Write,
			}
		},
		func(r Range) Iterator {
			start := b.Key(r.Start)
			var limit []byte
			if len(r.Limit) == 0 {
				limit = Prefix([]byte(b)).Limit
			} else {
				limit = b.Key(r.Limit)
			}
			iter := src.Iterate(Range{Start: start, Limit: limit})
			return &struct {
				FirstFunc
				LastFunc
				NextFunc
				PrevFunc
				KeyFunc
				ValueFunc
				ReleaseFunc
				ErrorFunc
			}{
				iter.First,
				iter.Last,
				iter.Next,
				iter.Prev,
				// strip the bucket
				func() []byte { return iter.Key()[len(b):] },
				iter.Value,
				iter.Release,
				iter.Error,
			}
		},
	}
}
