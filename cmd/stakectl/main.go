// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/paideiadao/paideia-contracts/api"
	"github.com/paideiadao/paideia-contracts/box"
	"github.com/paideiadao/paideia-contracts/config"
	"github.com/paideiadao/paideia-contracts/keeper"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/metrics"
	"github.com/paideiadao/paideia-contracts/paideia"
	"github.com/paideiadao/paideia-contracts/staking"
	"github.com/paideiadao/paideia-contracts/utxo"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "stakectl",
		Usage:     "Paideia staking ledger, keeper and API",
		Copyright: "2025 Paideia DAO",
		Commands: []cli.Command{
			{
				Name:  "serve",
				Usage: "run the staking ledger with its keeper and API",
				Flags: []cli.Flag{
					networkFlag,
					configFlag,
					dataDirFlag,
					cacheFlag,
					apiAddrFlag,
					apiCorsFlag,
					apiSlowQueriesThresholdFlag,
					enableAPILogsFlag,
					enableMetricsFlag,
					executorFlag,
					ownerFlag,
					supplyFlag,
					dailyEmissionFlag,
					cycleFlag,
					keeperIntervalFlag,
					compoundBatchFlag,
					skipNTPFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: serveAction,
			},
			{
				Name:  "simulate",
				Usage: "run stakers through emission cycles on an in-memory ledger",
				Flags: []cli.Flag{
					networkFlag,
					stakersFlag,
					cyclesFlag,
					feeDenominatorFlag,
					compoundBatchFlag,
					supplyFlag,
					dailyEmissionFlag,
					dumpFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: simulateAction,
			},
			{
				Name:  "assets",
				Usage: "print what a user must send to create a stake proxy",
				Flags: []cli.Flag{
					networkFlag,
					configFlag,
					amountFlag,
				},
				Action: assetsAction,
			},
			{
				Name:  "config",
				Usage: "print the deployment parameters as YAML",
				Flags: []cli.Flag{
					networkFlag,
					configFlag,
				},
				Action: configAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
	if !ctx.Bool(skipNTPFlag.Name) {
		go checkClockOffset()
	}

	instanceDir := makeInstanceDir(ctx)
	mainDB := openMainDB(ctx, instanceDir)
	defer func() { log.Info("closing ledger database..."); mainDB.Close() }()

	j := openJournal(instanceDir)
	defer func() { log.Info("closing journal database..."); j.Close() }()

	executor := parseTree(ctx, executorFlag)
	deploymentPath := filepath.Join(instanceDir, "deployment.yaml")
	cfg, err := openDeployment(exitSignal, mainDB, deploymentPath, deployPlan{
		params:    selectParams(ctx),
		owner:     parseTree(ctx, ownerFlag),
		supply:    ctx.Uint64(supplyFlag.Name),
		daily:     ctx.Uint64(dailyEmissionFlag.Name),
		cycle:     ctx.Duration(cycleFlag.Name),
		start:     time.Now(),
		incentive: 10_000_000_000,
	})
	if err != nil {
		return errors.WithMessage(err, "open deployment")
	}

	ledger := utxo.New(mainDB, staking.Guards(cfg), nil)
	ledger.Subscribe(j.Recorder(cfg))

	var enableAPILogs atomic.Bool
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	apiURL, stopAPI := startAPIServer(ctx, api.New(staking.NewView(cfg, ledger), j, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      &enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
	}))
	defer func() { log.Info("stopping API server..."); stopAPI() }()

	log.Info("staking ledger started",
		"network", ctx.String(networkFlag.Name),
		"instance", instanceDir,
		"deployment", deploymentPath,
		"api", apiURL,
		"stakedToken", cfg.StakedTokenID(),
	)

	keeper.New(cfg, ledger, executor, keeper.Options{
		Interval:      ctx.Duration(keeperIntervalFlag.Name),
		CompoundBatch: ctx.Int(compoundBatchFlag.Name),
		Wake:          ledger.Committed(),
	}).Run(exitSignal)
	return nil
}

func assetsAction(ctx *cli.Context) error {
	params := selectParams(ctx)
	if params.StakedTokenID.IsZero() {
		return errors.New("deployment has no staked token id")
	}
	cfg, err := config.NewBuilder().Params(params).Build()
	if err != nil {
		return err
	}
	assets, err := staking.StakeProxyAssets(cfg, ctx.Uint64(amountFlag.Name))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(assets)
}

func configAction(ctx *cli.Context) error {
	cfg, err := config.NewBuilder().Params(selectParams(ctx)).Build()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(cfg)
}

// userTree derives a pay-to-public-key style tree for simulated user i.
func userTree(i int) paideia.Tree {
	h := paideia.Blake2b([]byte("user"), []byte(fmt.Sprint(i)))
	return append(paideia.Tree{0x00, 0x08, 0xcd, 0x02}, h[:]...)
}

// stakedOf sums the staked token held by boxes.
func stakedOf(boxes []*box.Box, tokenID paideia.Bytes32) (sum uint64) {
	for _, b := range boxes {
		sum += b.Asset(tokenID)
	}
	return
}
