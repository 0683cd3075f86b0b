// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/journal"
	"github.com/paideiadao/paideia-contracts/staking"
	"github.com/paideiadao/paideia-contracts/test/datagen"
	"github.com/paideiadao/paideia-contracts/test/testchain"
)

func newEntry(kind staking.Action, checkpoint int64) *journal.Entry {
	return &journal.Entry{
		TxID:         datagen.RandomHash(),
		Kind:         kind,
		Checkpoint:   checkpoint,
		AmountStaked: uint64(datagen.RandUint64N(1_000, 1_000_000)),
		Time:         testchain.Genesis.Add(time.Duration(checkpoint) * testchain.Cycle),
	}
}

func TestInsertAndFilter(t *testing.T) {
	ctx := context.Background()
	j, err := journal.New(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	var entries []*journal.Entry
	for cp := int64(0); cp < 5; cp++ {
		entries = append(entries,
			newEntry(staking.ActionStake, cp),
			newEntry(staking.ActionEmit, cp),
			newEntry(staking.ActionCompound, cp),
		)
	}
	require.NoError(t, j.Insert(ctx, entries...))
	assert.Equal(t, int64(1), entries[0].Seq)

	all, err := j.Filter(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 15)
	assert.Equal(t, entries[3].TxID, all[3].TxID)
	assert.Equal(t, entries[3].Time.UnixMilli(), all[3].Time.UnixMilli())

	emit := staking.ActionEmit
	emits, err := j.Filter(ctx, &journal.Filter{Kind: &emit, Range: &journal.Range{From: 1, To: 3}})
	require.NoError(t, err)
	require.Len(t, emits, 3)
	for _, e := range emits {
		assert.Equal(t, staking.ActionEmit, e.Kind)
	}
	assert.Equal(t, int64(1), emits[0].Checkpoint)

	page, err := j.Filter(ctx, &journal.Filter{Order: journal.DESC, Options: &journal.Options{Offset: 1, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, entries[13].TxID, page[0].TxID)

	latest, err := j.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries[14].TxID, latest.TxID)

	// tx ids are unique
	assert.Error(t, j.Insert(ctx, entries[0]))
}

func TestLatestEmpty(t *testing.T) {
	j, err := journal.NewMem()
	require.NoError(t, err)
	defer j.Close()

	latest, err := j.Latest(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	c, err := testchain.New(100)
	require.NoError(t, err)
	defer c.Close()

	j, err := journal.NewMem()
	require.NoError(t, err)
	defer j.Close()
	c.Ledger().Subscribe(j.Recorder(c.Config()))

	_, err = c.Stake(ctx, datagen.RandomTree(), 250_000)
	require.NoError(t, err)

	v := c.View()
	stateBox, _, _ := v.State(ctx)
	poolBox, _, _ := v.Pool(ctx)
	emissionBox, _, _ := v.Emission(ctx)
	incentives, _ := v.Incentives(ctx)
	res, err := staking.Emit(c.Config(), stateBox, poolBox, emissionBox, incentives[0], c.Executor, c.Now())
	require.NoError(t, err)
	_, err = c.Apply(ctx, res)
	require.NoError(t, err)

	all, err := j.Filter(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, staking.ActionCreateStakeProxy, all[0].Kind)
	assert.Equal(t, staking.ActionStake, all[1].Kind)
	assert.Equal(t, uint64(250_000), all[1].AmountStaked)
	assert.Equal(t, uint64(1), all[1].Stakers)

	emitEntry := all[2]
	assert.Equal(t, staking.ActionEmit, emitEntry.Kind)
	assert.Equal(t, int64(1), emitEntry.Checkpoint)
	assert.Equal(t, uint64(testchain.Supply*10_000-testchain.Daily*10_000), emitEntry.PoolRemaining)
	assert.Equal(t, c.Config().Params().EmitMinerFee, emitEntry.Fee)
	assert.True(t, testchain.Genesis.Equal(emitEntry.Time))
}
