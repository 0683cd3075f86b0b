// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package journal keeps a queryable sqlite history of applied staking
// transitions.
package journal

import (
	"context"
	"database/sql"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/ledger"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
)

var logger = log.WithContext("pkg", "journal")

type Journal struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens a journal at the given path.
func New(path string) (j *Journal, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if j == nil {
			db.Close()
		}
	}()
	// a single connection keeps an in-memory database alive and shared
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(transitionTableSchema); err != nil {
		return nil, errors.Wrap(err, "create journal schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &Journal{path, db, driverVer}, nil
}

// NewMem creates a journal in ram.
func NewMem() (*Journal, error) {
	return New(":memory:")
}

// Close closes the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Path() string {
	return j.path
}

// DriverVersion returns the sqlite library version.
func (j *Journal) DriverVersion() string {
	return j.driverVersion
}

// Insert appends entries in one SQL transaction and fills their Seq.
func (j *Journal) Insert(ctx context.Context, entries ...*Entry) (err error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `insert into transition
		(txID, kind, checkpoint, amountStaked, stakers, poolRemaining, fee, time)
		values (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		res, err := stmt.ExecContext(ctx,
			e.TxID.Bytes(),
			e.Kind.String(),
			e.Checkpoint,
			int64(e.AmountStaked),
			int64(e.Stakers),
			int64(e.PoolRemaining),
			int64(e.Fee),
			e.Time.UnixMilli(),
		)
		if err != nil {
			return errors.Wrapf(err, "insert %v", e.TxID)
		}
		if e.Seq, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recorder returns a ledger listener journaling every staking transition.
func (j *Journal) Recorder(cfg *config.Config) func(tx *ledger.Transaction, now time.Time) {
	return func(tx *ledger.Transaction, now time.Time) {
		e, ok := NewEntry(cfg, tx, now)
		if !ok {
			return
		}
		if err := j.Insert(context.Background(), e); err != nil {
			logger.Error("failed to journal transition", "tx", e.TxID, "kind", e.Kind, "err", err)
		}
	}
}

// Filter queries entries.
func (j *Journal) Filter(ctx context.Context, filter *Filter) ([]*Entry, error) {
	if filter == nil {
		return j.query(ctx, "SELECT * FROM transition ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT * FROM transition WHERE 1"
	if filter.Kind != nil {
		args = append(args, filter.Kind.String())
		stmt += " AND kind = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND checkpoint >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND checkpoint <= ? "
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return j.query(ctx, stmt, args...)
}

// Latest returns the last journaled entry, nil when empty.
func (j *Journal) Latest(ctx context.Context) (*Entry, error) {
	entries, err := j.Filter(ctx, &Filter{Order: DESC, Options: &Options{Limit: 1}})
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return entries[0], nil
}

func (j *Journal) query(ctx context.Context, stmt string, args ...any) ([]*Entry, error) {
	rows, err := j.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq           int64
			txID          []byte
			kind          string
			checkpoint    int64
			amountStaked  int64
			stakers       int64
			poolRemaining int64
			fee           int64
			ms            int64
		)
		if err := rows.Scan(&seq, &txID, &kind, &checkpoint, &amountStaked, &stakers, &poolRemaining, &fee, &ms); err != nil {
			return nil, err
		}
		action, ok := staking.ParseAction(kind)
		if !ok {
			return nil, errors.Errorf("unknown transition kind %q", kind)
		}
		entries = append(entries, &Entry{
			Seq:           seq,
			TxID:          paideia.BytesToBytes32(txID),
			Kind:          action,
			Checkpoint:    checkpoint,
			AmountStaked:  uint64(amountStaked),
			Stakers:       uint64(stakers),
			PoolRemaining: uint64(poolRemaining),
			Fee:           uint64(fee),
			Time:          time.UnixMilli(ms).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
