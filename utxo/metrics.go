// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utxo

import "github.com/paideiadao/paideia-contracts/metrics"

var (
	metricCommitted      = metrics.LazyLoadCounter("ledger_tx_committed_count")
	metricRejected       = metrics.LazyLoadCounter("ledger_tx_rejected_count")
	metricSubmitDuration = metrics.LazyLoadHistogram("ledger_submit_duration_ms", metrics.BucketSubmit)
	metricBoxCacheHits   = metrics.LazyLoadGauge("ledger_box_cache_hit_permille")
)
