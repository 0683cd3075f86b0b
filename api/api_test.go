// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paideiadao/paideia-contracts/metrics"
	"github.com/paideiadao/paideia-contracts/test/testchain"
)

func TestAPIMetricsAndCORS(t *testing.T) {
	metrics.InitializePrometheusMetrics()

	c, err := testchain.New(100)
	require.NoError(t, err)
	defer c.Close()

	ts := httptest.NewServer(New(c.View(), nil, Options{
		AllowedOrigins: "https://app.paideia.im",
		EnableMetrics:  true,
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/staking/state", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.paideia.im")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "https://app.paideia.im", res.Header.Get("Access-Control-Allow-Origin"))

	// journal is not mounted without a journal
	res, err = http.Get(ts.URL + "/staking/journal")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `paideia_staking_api_request_count{code="200",method="GET",name="staking_get_state"} 1`)
}
