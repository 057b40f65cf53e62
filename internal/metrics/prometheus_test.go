package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	prom := NewPrometheus()
	prom.Metrics.Runs.Inc()
	prom.Metrics.Runs.Inc()
	prom.Metrics.RunFailures.Inc()
	prom.Metrics.Cycles.Set(412)
	prom.Metrics.FinalCapital.Set(1033.33)

	assertValue(t, prom.runs, 2)
	assertValue(t, prom.runFailures, 1)
	assertValue(t, prom.cycles, 412)
	assertValue(t, prom.finalCapital, 1033.33)
}

func TestPrometheusHandler(t *testing.T) {
	prom := NewPrometheus()
	prom.Metrics.Runs.Inc()

	rec := httptest.NewRecorder()
	prom.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "weekday_cycle_runs_total 1")
}

func TestNoop(t *testing.T) {
	m := NewNoop()
	m.Runs.Inc()
	m.RunFailures.Inc()
	m.Cycles.Set(1)
	m.FinalCapital.Set(1)
}

func assertValue(t *testing.T, c prometheus.Collector, expected float64) {
	t.Helper()
	assert.InDelta(t, expected, testutil.ToFloat64(c), 1e-9)
}
