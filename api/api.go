// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/paideiadao/paideia-contracts/api/middleware"
	"github.com/paideiadao/paideia-contracts/api/staking"
	"github.com/paideiadao/paideia-contracts/journal"
	"github.com/paideiadao/paideia-contracts/log"
	"github.com/paideiadao/paideia-contracts/metrics"
	stakingview "github.com/paideiadao/paideia-contracts/staking"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
}

// New return api router
func New(view *stakingview.View, j *journal.Journal, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(view, j).
		Mount(router, "/staking")

	if h := metrics.HTTPHandler(); opts.EnableMetrics && h != nil {
		router.Path("/metrics").
			Methods(http.MethodGet).
			Name("metrics").
			Handler(h)
		router.Use(metricsMiddleware)
	}

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP
}
