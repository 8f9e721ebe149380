// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/metrics"
	"github.com/vechain/stakeledger/test/testruntime"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func TestMetricsMiddleware(t *testing.T) {
	rt := testruntime.New(t)
	ts := httptest.NewServer(New(rt.Runtime, Options{AllowedOrigins: "*", LogsLimit: 10, EnableMetrics: true}))
	t.Cleanup(ts.Close)

	httpGet(t, ts.URL+"/ledgers")
	httpGet(t, ts.URL+"/ledgers/tokens/params")
	_, code := httpGet(t, ts.URL+"/ledgers/nope/params")
	assert.Equal(t, http.StatusNotFound, code)

	// unnamed routes are not recorded
	_, code = httpGet(t, ts.URL+"/unknown")
	assert.Equal(t, http.StatusNotFound, code)

	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	m := families["stakeledger_api_request_count"].GetMetric()
	require.Equal(t, 3, len(m), "should be 3 metric entries")

	expected := []struct {
		code string
		name string
	}{
		{"200", "GET /ledgers"},
		{"200", "GET /ledgers/{ledger}/params"},
		{"404", "GET /ledgers/{ledger}/params"},
	}
	for i, e := range expected {
		assert.Equal(t, float64(1), m[i].GetCounter().GetValue())
		labels := m[i].GetLabel()
		require.Equal(t, 3, len(labels))
		assert.Equal(t, "code", labels[0].GetName())
		assert.Equal(t, e.code, labels[0].GetValue())
		assert.Equal(t, "method", labels[1].GetName())
		assert.Equal(t, http.MethodGet, labels[1].GetValue())
		assert.Equal(t, "name", labels[2].GetName())
		assert.Equal(t, e.name, labels[2].GetValue())
	}
	assert.NotEmpty(t, families["stakeledger_api_duration_ms"].GetMetric())
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
