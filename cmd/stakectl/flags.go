// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	networkFlag = cli.StringFlag{
		Name:  "network",
		Value: "main",
		Usage: "parameter preset (main|test)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a deployment YAML file, overrides the network preset",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger and journal databases",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 512,
		Usage: "megabytes of ram allocated to the ledger database",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8689",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration longer than the threshold (in milliseconds) will be logged",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "expose prometheus metrics on /metrics",
	}
	executorFlag = cli.StringFlag{
		Name:  "executor",
		Usage: "hex encoded tree receiving executor rewards",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "hex encoded tree holding the stake pool key of a new deployment",
	}
	supplyFlag = cli.Uint64Flag{
		Name:  "supply",
		Value: 10_000_000,
		Usage: "staking pool supply of a new deployment, in whole tokens",
	}
	dailyEmissionFlag = cli.Uint64Flag{
		Name:  "daily-emission",
		Value: 29_300,
		Usage: "tokens emitted per cycle by a new deployment, in whole tokens",
	}
	cycleFlag = cli.DurationFlag{
		Name:  "cycle",
		Value: 24 * time.Hour,
		Usage: "emission cycle of a new deployment",
	}
	keeperIntervalFlag = cli.DurationFlag{
		Name:  "keeper-interval",
		Value: 10 * time.Second,
		Usage: "interval between two keeper rounds",
	}
	compoundBatchFlag = cli.IntFlag{
		Name:  "compound-batch",
		Value: 50,
		Usage: "max stake records per compound transaction",
	}
	skipNTPFlag = cli.BoolFlag{
		Name:  "skip-ntp",
		Usage: "skip the clock offset check against pool.ntp.org",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}

	// simulate
	stakersFlag = cli.IntFlag{
		Name:  "stakers",
		Value: 100,
		Usage: "number of simulated stakers",
	}
	cyclesFlag = cli.IntFlag{
		Name:  "cycles",
		Value: 30,
		Usage: "number of emission cycles to simulate",
	}
	feeDenominatorFlag = cli.Uint64Flag{
		Name:  "fee-denominator",
		Value: 100,
		Usage: "emission fee denominator, 0 disables the fee",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the final records",
	}

	// assets
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "staked token amount, in base units",
	}
)
