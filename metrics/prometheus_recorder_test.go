package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cpkernel/metrics"
	"github.com/katalvlaran/cpkernel/search"
	"github.com/katalvlaran/cpkernel/state"
)

func TestPrometheusRecorder_AttachCountsListeners(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	sm := state.NewTrail()
	level := sm.MakeInt(0)
	// Depth-2 tree whose second child always fails: 1 solution, 2 failures.
	dfs := search.NewDFSearch(sm, func() []search.Alternative {
		if level.Value() == 2 {
			return nil
		}

		return search.Branch(
			func() error {
				level.Increment()
				return nil
			},
			search.Fail,
		)
	})
	metrics.Attach(dfs, rec)

	start := time.Now()
	stats, err := dfs.Solve(nil)
	require.NoError(t, err)
	rec.ObserveSearch("trail", stats, time.Since(start))
	rec.ObserveIteration(true)

	assert.Equal(t, 1, stats.Solutions)
	assert.Equal(t, 2, stats.Failures)
	expected := `
# HELP cpkernel_search_failures_total Branches closed by an inconsistency
# TYPE cpkernel_search_failures_total counter
cpkernel_search_failures_total 2
# HELP cpkernel_search_solutions_total Solution leaves reached
# TYPE cpkernel_search_solutions_total counter
cpkernel_search_solutions_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"cpkernel_search_solutions_total", "cpkernel_search_failures_total"))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "cpkernel_search_nodes_total")
	assert.Contains(t, names, "cpkernel_search_runs_total")
	assert.Contains(t, names, "cpkernel_lns_iterations_total")
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var rec *metrics.PrometheusRecorder
	assert.NotPanics(t, func() {
		rec.IncSolutions()
		rec.IncFailures()
		rec.ObserveSearch("copy", search.Statistics{}, time.Millisecond)
		rec.ObserveIteration(false)
	})
	metrics.Attach(nil, metrics.NoopRecorder{})
}

func TestHTTPHandler_ServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncSolutions()

	srv := httptest.NewServer(metrics.HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "cpkernel_search_solutions_total 1")
}

func TestNewPrometheusRecorder_OnePerRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	metrics.NewPrometheusRecorder(reg)
	assert.Panics(t, func() { metrics.NewPrometheusRecorder(reg) }, "metrics are already registered")
	assert.NotPanics(t, func() {
		metrics.NewPrometheusRecorder(prom.NewRegistry())
		metrics.NewPrometheusRecorder(nil)
	})
}
