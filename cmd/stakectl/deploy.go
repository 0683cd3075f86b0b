// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/paideiadao/paideia-contracts/bootstrap"
	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/kv"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/utxo"
)

// deployPlan describes a deployment on a local ledger.
type deployPlan struct {
	params    config.Params
	owner     paideia.Tree
	supply    uint64 // whole tokens
	daily     uint64 // whole tokens
	cycle     time.Duration
	start     time.Time
	incentive uint64
}

// localStakedToken is the id of the token staked on local ledgers.
func localStakedToken(owner paideia.Tree) paideia.Bytes32 {
	return paideia.Blake2b([]byte("staked-token"), owner)
}

// deployLocal funds the owner out of nothing and bootstraps a deployment
// on db. The ledger used is unguarded: contract trees are only known once
// the identity tokens are minted.
func deployLocal(ctx context.Context, db kv.Store, plan deployPlan) (*bootstrap.Deployment, error) {
	supply, err := bootstrap.Scaled(plan.supply, plan.params.StakedTokenDecimals)
	if err != nil {
		return nil, err
	}
	stakedTokenID := localStakedToken(plan.owner)

	boot := utxo.New(db, nil, nil)
	funding, err := boot.Genesis(box.NewBuilder().
		Value(plan.incentive + 100*bootstrap.MinerFee).
		Tree(plan.owner).
		Asset(stakedTokenID, supply).
		Build())
	if err != nil {
		return nil, errors.WithMessage(err, "fund owner")
	}
	return bootstrap.Deploy(ctx, boot, funding, bootstrap.Options{
		Params:        plan.params,
		StakedTokenID: stakedTokenID,
		Supply:        plan.supply,
		DailyEmission: plan.daily,
		CycleDuration: plan.cycle,
		Start:         plan.start,
		Incentive:     plan.incentive,
		Owner:         plan.owner,
	})
}

// openDeployment loads the deployment saved at path, or creates one and
// saves it.
func openDeployment(ctx context.Context, db kv.Store, path string, plan deployPlan) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	dep, err := deployLocal(ctx, db, plan)
	if err != nil {
		return nil, err
	}
	if err := dep.Config.Save(path); err != nil {
		return nil, err
	}
	return dep.Config, nil
}
