// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keeper

import (
	"time"

	"github.com/paideiadao/paideia-contracts/metrics"
	"github.com/paideiadao/paideia-contracts/staking"
)

var (
	metricTransitionCount = metrics.LazyLoadCounterVec("keeper_transition_count", []string{"action", "status"})
	metricRoundDuration   = metrics.LazyLoadHistogram("keeper_round_duration_ms", metrics.BucketKeeperRound)
	metricPendingProxies  = metrics.LazyLoadGauge("keeper_pending_proxies")
)

func countTransition(action staking.Action, status string) {
	metricTransitionCount().AddWithLabel(1, map[string]string{
		"action": action.String(),
		"status": status,
	})
}

func evalRoundMetrics(f func() error) error {
	start := time.Now()
	err := f()
	metricRoundDuration().Observe(time.Since(start).Milliseconds())
	return err
}
