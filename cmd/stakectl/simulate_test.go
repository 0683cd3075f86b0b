// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/lvldb"
	"github.com/paideiadao/paideia-contracts/staking"
	"github.com/paideiadao/paideia-contracts/utxo"
)

func testPlan() deployPlan {
	params := config.DefaultParams()
	params.StakedTokenName = "Paideia"
	params.StakedTokenDecimals = 4
	return deployPlan{
		params:    params,
		owner:     userTree(-1),
		supply:    1_000_000,
		daily:     1_000,
		cycle:     time.Hour,
		start:     time.Unix(1_700_000_000, 0),
		incentive: 10_000_000_000,
	}
}

func TestOpenDeploymentSavesAndReloads(t *testing.T) {
	ctx := context.Background()
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	path := filepath.Join(t.TempDir(), "deployment.yaml")
	cfg, err := openDeployment(ctx, db, path, testPlan())
	require.NoError(t, err)
	assert.Equal(t, localStakedToken(userTree(-1)), cfg.StakedTokenID())

	// a second open loads the file instead of deploying again
	reloaded, err := openDeployment(ctx, db, path, testPlan())
	require.NoError(t, err)
	assert.Equal(t, cfg.StakeStateNFT(), reloaded.StakeStateNFT())
	assert.Equal(t, cfg.StakePoolKey(), reloaded.StakePoolKey())
	assert.Equal(t, cfg.StakeContract().Hash(), reloaded.StakeContract().Hash())

	view := staking.NewView(reloaded, utxo.New(db, staking.Guards(reloaded), nil))
	_, pool, err := view.Pool(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000*10_000), pool.Remaining)
}

func TestRequestStakes(t *testing.T) {
	ctx := context.Background()
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	dep, err := deployLocal(ctx, db, testPlan())
	require.NoError(t, err)
	l := utxo.New(db, staking.Guards(dep.Config), nil)

	total, err := requestStakes(ctx, dep.Config, l, 3, time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint64(1000+2000+3000), total)

	proxies, err := staking.NewView(dep.Config, l).Proxies(ctx)
	require.NoError(t, err)
	assert.Len(t, proxies, 3)
}

func TestUserTreesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for i := -2; i < 100; i++ {
		tree := userTree(i)
		assert.False(t, seen[tree.String()])
		seen[tree.String()] = true
	}
}
