// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/bootstrap"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/lvldb"
	"github.com/paideiadao/paideia-contracts/staking"
	"github.com/paideiadao/paideia-contracts/test/datagen"
	"github.com/paideiadao/paideia-contracts/test/testchain"
	"github.com/paideiadao/paideia-contracts/utxo"
)

func TestDeploy(t *testing.T) {
	c, err := testchain.New(100)
	require.NoError(t, err)
	defer c.Close()

	dep := c.Deployment()
	cfg := dep.Config

	assert.Equal(t, uint64(bootstrap.PoolKeys), dep.PoolKey.Asset(cfg.StakePoolKey()))
	assert.Equal(t, c.Owner, dep.PoolKey.Tree())

	state, err := staking.ReadState(cfg, dep.State)
	require.NoError(t, err)
	assert.Zero(t, state.Checkpoint)
	assert.Equal(t, uint64(testchain.Genesis.UnixMilli()), state.NextEmissionTime())

	pool, err := staking.ReadPool(cfg, dep.Pool)
	require.NoError(t, err)
	assert.Equal(t, uint64(testchain.Supply*10_000), pool.Remaining)
	assert.Equal(t, uint64(testchain.Daily*10_000), pool.EmissionAmount)

	emission, err := staking.ReadEmission(cfg, dep.Emission)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), emission.Checkpoint)
}

func TestDeployErrors(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	l := utxo.New(db, nil, nil)

	opts := bootstrap.Options{
		Params:        config.DefaultParams(),
		StakedTokenID: datagen.RandomHash(),
		Supply:        1000,
		DailyEmission: 10,
		CycleDuration: time.Hour,
		Start:         time.Now(),
		Incentive:     1_000_000_000,
		Owner:         datagen.RandomTree(),
	}

	_, err = bootstrap.Deploy(context.Background(), l, nil, opts)
	assert.EqualError(t, err, "bootstrap: no funding boxes")

	bad := opts
	bad.DailyEmission = bad.Supply + 1
	_, err = bootstrap.Deploy(context.Background(), l, nil, bad)
	assert.ErrorContains(t, err, "daily emission exceeds supply")
}

func TestScaled(t *testing.T) {
	v, err := bootstrap.Scaled(29_300, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(293_000_000), v)

	_, err = bootstrap.Scaled(1, 19)
	assert.Error(t, err)
}
