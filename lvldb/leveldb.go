// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb backs kv.Store with goleveldb.
package lvldb

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/paideiadao/paideia-contracts/kv"
)

var _ kv.Store = (*LevelDB)(nil)

var (
	writeOpt = opt.WriteOptions{}
	readOpt  = opt.ReadOptions{}
	scanOpt  = opt.ReadOptions{DontFillCache: true}
)

// Options options for creating level db instance.
type Options struct {
	CacheSize              int // MiB
	OpenFilesCacheCapacity int
}

// LevelDB wraps a goleveldb instance.
type LevelDB struct {
	db        *leveldb.DB
	batchPool *sync.Pool
}

// New opens a persistent level db at path, creating it when absent.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open level db storage")
	}
	return open(stg, opts)
}

// NewMem creates a level db in memory.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	if opts.CacheSize < 16 {
		opts.CacheSize = 16
	}
	if opts.OpenFilesCacheCapacity < 16 {
		opts.OpenFilesCacheCapacity = 16
	}

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: opts.OpenFilesCacheCapacity,
		BlockCacheCapacity:     opts.CacheSize / 2 * opt.MiB,
		WriteBuffer:            opts.CacheSize / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{
		db,
		&sync.Pool{
			New: func() any {
				return &leveldb.Batch{}
			},
		},
	}, nil
}

// Close closes the level db. Later operations will all fail.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// IsNotFound reports whether err returned by Get means the key is absent.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	val, err := ldb.db.Get(key, &readOpt)
	// val will be []byte{} if error occurs, which is not expected
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

func (ldb *LevelDB) Put(key, val []byte) error {
	return ldb.db.Put(key, val, &writeOpt)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, &writeOpt)
}

// Snapshot returns a consistent read view. A failure to take the snapshot
// surfaces on the first read.
func (ldb *LevelDB) Snapshot() kv.Snapshot {
	s, err := ldb.db.GetSnapshot()
	return &struct {
		kv.GetFunc
		kv.HasFunc
		kv.IsNotFoundFunc
		kv.ReleaseFunc
	}{
		func(key []byte) ([]byte, error) {
			if err != nil {
				return nil, err
			}
			val, err := s.Get(key, &readOpt)
			if err != nil {
				return nil, err
			}
			return val, nil
		},
		func(key []byte) (bool, error) {
			if err != nil {
				return false, err
			}
			return s.Has(key, &readOpt)
		},
		ldb.IsNotFound,
		func() {
			if s != nil {
				s.Release()
			}
		},
	}
}

// Bulk returns a batch writer. Without auto flush, Write applies every
// queued op atomically.
func (ldb *LevelDB) Bulk() kv.Bulk {
	const idealBatchSize = 128 * 1024
	var (
		batch     *leveldb.Batch
		autoFlush bool
	)

	getBatch := func() *leveldb.Batch {
		if batch == nil {
			batch = ldb.batchPool.Get().(*leveldb.Batch)
			batch.Reset()
		}
		return batch
	}
	flush := func(minSize int) error {
		if batch != nil && len(batch.Dump()) >= minSize {
			if batch.Len() > 0 {
				if err := ldb.db.Write(batch, &writeOpt); err != nil {
					return err
				}
			}
			ldb.batchPool.Put(batch)
			batch = nil
		}
		return nil
	}

	return &struct {
		kv.PutFunc
		kv.DeleteFunc
		kv.EnableAutoFlushFunc
		kv.WriteFunc
	}{
		func(key, val []byte) error {
			getBatch().Put(key, val)
			if autoFlush {
				return flush(idealBatchSize)
			}
			return nil
		},
		func(key []byte) error {
			getBatch().Delete(key)
			if autoFlush {
				return flush(idealBatchSize)
			}
			return nil
		},
		func() { autoFlush = true },
		func() error { return flush(0) },
	}
}

func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator((*util.Range)(&r), &scanOpt)
}
