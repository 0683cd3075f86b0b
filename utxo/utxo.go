// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package utxo is a persistent unspent box set implementing ledger.Ledger.
package utxo

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/cache"
	"github.com/paideiadao/paideia-contracts/co"
	"github.com/paideiadao/paideia-contracts/kv"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/paideia"
)

var logger = log.WithContext("pkg", "utxo")

var _ ledger.Ledger = (*Ledger)(nil)

var (
	// ErrUnknownInput rejects an input the ledger never created.
	ErrUnknownInput = ledger.Reject("unknown input")
	// ErrDoubleSpend rejects an input that was already spent.
	ErrDoubleSpend = ledger.Reject("input already spent")
)

// key spaces
const (
	boxSpace   = kv.Bucket("b") // box id => box
	spentSpace = kv.Bucket("s") // box id => spending tx id
	treeSpace  = kv.Bucket("t") // tree hash + box id => nil
	tokenSpace = kv.Bucket("k") // token id + box id => nil
	txSpace    = kv.Bucket("x") // tx id => tx
	metaSpace  = kv.Bucket("m")
)

var genesisSeqKey = []byte("genesis-seq")

const boxCacheSize = 4096

// Clock returns the reference time of the ledger.
type Clock func() time.Time

// Listener is notified after a transaction is committed.
type Listener func(tx *ledger.Transaction, now time.Time)

// Ledger stores unspent boxes and applies transactions to them one at a
// time. Reads are safe for concurrent use.
type Ledger struct {
	store  kv.Store
	guards ledger.Guards
	clock  Clock
	boxes  *cache.LRU[paideia.Bytes32, *box.Box]

	lock      sync.Mutex
	listeners []Listener
	committed co.Signal
}

// New creates a ledger over store. Spends of boxes whose tree hash has an
// entry in guards must be approved by that guard. A nil clock uses
// time.Now.
func New(store kv.Store, guards ledger.Guards, clock Clock) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	boxes, _ := cache.NewLRU[paideia.Bytes32, *box.Box](boxCacheSize)
	return &Ledger{
		store:  store,
		guards: guards,
		clock:  clock,
		boxes:  boxes,
	}
}

// Subscribe registers l. Listeners run synchronously after each commit, in
// registration order.
func (l *Ledger) Subscribe(fn Listener) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Committed returns a waiter woken after every commit.
func (l *Ledger) Committed() co.Waiter {
	return l.committed.NewWaiter()
}

// CacheStats returns hit/miss counters of the box cache.
func (l *Ledger) CacheStats() *cache.Stats {
	return l.boxes.Stats()
}

// Now implements ledger.Ledger.
func (l *Ledger) Now() time.Time {
	return l.clock()
}

// Genesis creates boxes out of nothing, as outputs of a pseudo transaction
// whose id is derived from the boxes and a sequence number. It returns the
// created boxes.
func (l *Ledger) Genesis(candidates ...*box.Box) ([]*box.Box, error) {
	if len(candidates) == 0 {
		return nil, errors.New("no genesis boxes")
	}
	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, errors.WithMessagef(err, "genesis box #%d", i)
		}
	}
	data, err := rlp.EncodeToBytes(candidates)
	if err != nil {
		return nil, err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	meta := metaSpace.NewStore(l.store)
	var seq [8]byte
	if val, err := meta.Get(genesisSeqKey); err == nil {
		copy(seq[:], val)
	} else if !meta.IsNotFound(err) {
		return nil, err
	}
	txID := paideia.Blake2b([]byte("genesis"), seq[:], data)

	outs := make([]*box.Box, len(candidates))
	bulk := l.store.Bulk()
	for i, c := range candidates {
		outs[i] = c.WithRef(txID, uint16(i))
		if err := putBox(bulk, outs[i]); err != nil {
			return nil, err
		}
	}
	binary.BigEndian.PutUint64(seq[:], binary.BigEndian.Uint64(seq[:])+1)
	if err := metaSpace.NewPutter(bulk).Put(genesisSeqKey, seq[:]); err != nil {
		return nil, err
	}
	if err := bulk.Write(); err != nil {
		return nil, errors.Wrap(err, "write genesis")
	}
	for _, out := range outs {
		l.boxes.Add(out.ID(), out)
	}
	logger.Debug("genesis", "tx", txID, "boxes", len(outs))
	return outs, nil
}

// Submit implements ledger.Ledger.
func (l *Ledger) Submit(ctx context.Context, tx *ledger.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	l.lock.Lock()
	now := l.clock()
	err := l.apply(tx, now)
	listeners := l.listeners
	l.lock.Unlock()

	if err != nil {
		if ledger.IsRejected(err) {
			metricRejected().Add(1)
			logger.Warn("transaction rejected", "tx", tx.ID(), "err", err)
		}
		return err
	}
	metricCommitted().Add(1)
	metricSubmitDuration().Observe(time.Since(start).Milliseconds())
	if stats := l.boxes.Stats(); stats.Changed() {
		metricBoxCacheHits().Set(int64(stats.HitRate() * 1000))
	}
	logger.Debug("transaction committed", "tx", tx.ID(), "inputs", len(tx.Inputs()), "outputs", len(tx.Outputs()))

	for _, fn := range listeners {
		fn(tx, now)
	}
	l.committed.Broadcast()
	return nil
}

// apply validates tx against the current set and commits it in one bulk.
// The caller holds the lock.
func (l *Ledger) apply(tx *ledger.Transaction, now time.Time) error {
	if err := ledger.Verify(tx); err != nil {
		return err
	}

	for i, in := range tx.Inputs() {
		stored, err := l.load(in.ID())
		if err != nil {
			if !ledger.IsNotFound(err) {
				return err
			}
			spent, err := spentSpace.NewGetter(l.store).Has(in.ID().Bytes())
			if err != nil {
				return err
			}
			if spent {
				return errors.WithMessagef(ErrDoubleSpend, "input #%d %v", i, in.ID())
			}
			return errors.WithMessagef(ErrUnknownInput, "input #%d %v", i, in.ID())
		}
		if !stored.SameContent(in) {
			return ledger.Reject("input #%d does not match the ledger box", i)
		}
	}

	for i, in := range tx.Inputs() {
		g, ok := l.guards[in.Tree().Hash()]
		if !ok {
			continue
		}
		if err := g.Check(&ledger.GuardContext{Tx: tx, Index: i, Now: now}); err != nil {
			if ledger.IsRejected(err) {
				return err
			}
			return ledger.RejectWith(err, "input #%d", i)
		}
	}

	txID := tx.ID()
	bulk := l.store.Bulk()
	for _, in := range tx.Inputs() {
		if err := deleteBox(bulk, in); err != nil {
			return err
		}
		if err := spentSpace.NewPutter(bulk).Put(in.ID().Bytes(), txID.Bytes()); err != nil {
			return err
		}
	}
	outs := tx.Outputs()
	for _, out := range outs {
		if err := putBox(bulk, out); err != nil {
			return err
		}
	}
	data, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return err
	}
	if err := txSpace.NewPutter(bulk).Put(txID.Bytes(), data); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	for _, in := range tx.Inputs() {
		l.boxes.Remove(in.ID())
	}
	for _, out := range outs {
		l.boxes.Add(out.ID(), out)
	}
	return nil
}

func putBox(p kv.Putter, b *box.Box) error {
	data, err := rlp.EncodeToBytes(b)
	if err != nil {
		return err
	}
	id := b.ID()
	if err := boxSpace.NewPutter(p).Put(id.Bytes(), data); err != nil {
		return err
	}
	th := b.Tree().Hash()
	if err := treeSpace.NewPutter(p).Put(indexKey(th, id), nil); err != nil {
		return err
	}
	for _, a := range b.Assets() {
		if err := tokenSpace.NewPutter(p).Put(indexKey(a.ID, id), nil); err != nil {
			return err
		}
	}
	return nil
}

func deleteBox(p kv.Putter, b *box.Box) error {
	id := b.ID()
	if err := boxSpace.NewPutter(p).Delete(id.Bytes()); err != nil {
		return err
	}
	if err := treeSpace.NewPutter(p).Delete(indexKey(b.Tree().Hash(), id)); err != nil {
		return err
	}
	for _, a := range b.Assets() {
		if err := tokenSpace.NewPutter(p).Delete(indexKey(a.ID, id)); err != nil {
			return err
		}
	}
	return nil
}

func indexKey(prefix, id paideia.Bytes32) []byte {
	return append(append(make([]byte, 0, 64), prefix[:]...), id[:]...)
}

func (l *Ledger) load(id paideia.Bytes32) (*box.Box, error) {
	return l.boxes.GetOrLoad(id, func(id paideia.Bytes32) (*box.Box, error) {
		getter := boxSpace.NewGetter(l.store)
		data, err := getter.Get(id.Bytes())
		if err != nil {
			if getter.IsNotFound(err) {
				return nil, ledger.ErrNotFound
			}
			return nil, err
		}
		b := new(box.Box)
		if err := rlp.DecodeBytes(data, b); err != nil {
			return nil, errors.Wrap(err, "decode box")
		}
		return b, nil
	})
}

// Box implements ledger.Reader.
func (l *Ledger) Box(ctx context.Context, id paideia.Bytes32) (*box.Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.load(id)
}

// ByToken implements ledger.Reader.
func (l *Ledger) ByToken(ctx context.Context, tokenID paideia.Bytes32) ([]*box.Box, error) {
	return l.scan(ctx, tokenSpace, tokenID)
}

// ByTree implements ledger.Reader.
func (l *Ledger) ByTree(ctx context.Context, tree paideia.Tree) ([]*box.Box, error) {
	return l.scan(ctx, treeSpace, tree.Hash())
}

func (l *Ledger) scan(ctx context.Context, space kv.Bucket, prefix paideia.Bytes32) ([]*box.Box, error) {
	var ids []paideia.Bytes32
	err := kv.ForEach(space.NewStore(l.store), kv.Prefix(prefix[:]), func(key, _ []byte) bool {
		ids = append(ids, paideia.BytesToBytes32(key[32:]))
		return ctx.Err() == nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	boxes := make([]*box.Box, 0, len(ids))
	for _, id := range ids {
		b, err := l.load(id)
		if err != nil {
			// spent between the index scan and the load
			if ledger.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}

// Transaction returns a committed transaction by id.
func (l *Ledger) Transaction(ctx context.Context, id paideia.Bytes32) (*ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	getter := txSpace.NewGetter(l.store)
	data, err := getter.Get(id.Bytes())
	if err != nil {
		if getter.IsNotFound(err) {
			return nil, ledger.ErrNotFound
		}
		return nil, err
	}
	tx := new(ledger.Transaction)
	if err := rlp.DecodeBytes(data, tx); err != nil {
		return nil, errors.Wrap(err, "decode transaction")
	}
	return tx, nil
}

// SpentBy returns the id of the transaction that spent box id.
func (l *Ledger) SpentBy(ctx context.Context, id paideia.Bytes32) (paideia.Bytes32, error) {
	if err := ctx.Err(); err != nil {
		return paideia.Bytes32{}, err
	}
	getter := spentSpace.NewGetter(l.store)
	data, err := getter.Get(id.Bytes())
	if err != nil {
		if getter.IsNotFound(err) {
			return paideia.Bytes32{}, ledger.ErrNotFound
		}
		return paideia.Bytes32{}, err
	}
	return paideia.BytesToBytes32(data), nil
}
