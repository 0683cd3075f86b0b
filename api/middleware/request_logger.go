// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/paideiadao/paideia-contracts/log"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLoggerMiddleware logs requests at info while enabled is set. The
// flag can be flipped at runtime. Independently, requests slower than
// slowQueriesThreshold are logged at warn; zero turns that off.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowQueriesThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled.Load() && slowQueriesThreshold == 0 {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			ctx := []any{
				"method", r.Method,
				"uri", r.URL.RequestURI(),
				"status", rec.status,
				"elapsed", elapsed.Milliseconds(),
			}
			switch {
			case slowQueriesThreshold > 0 && elapsed > slowQueriesThreshold:
				logger.Warn("slow API request", ctx...)
			case enabled.Load():
				logger.Info("API request", ctx...)
			}
		})
	}
}
