package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/cpkernel/search"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
// Its methods are safe for concurrent use, so parallel LNS workers may
// share one recorder.
type PrometheusRecorder struct {
	solutions      prom.Counter
	failures       prom.Counter
	nodes          *prom.CounterVec
	searchDuration *prom.HistogramVec
	runs           *prom.CounterVec
	iterations     *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the search metrics on reg.
// A nil reg gets a fresh registry. Registering twice on the same registry
// panics, so build one recorder per registry and share it.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.solutions = prom.NewCounter(prom.CounterOpts{
		Namespace: "cpkernel",
		Name:      "search_solutions_total",
		Help:      "Solution leaves reached",
	})
	pr.failures = prom.NewCounter(prom.CounterOpts{
		Namespace: "cpkernel",
		Name:      "search_failures_total",
		Help:      "Branches closed by an inconsistency",
	})
	pr.nodes = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "cpkernel",
		Name:      "search_nodes_total",
		Help:      "Alternatives executed, by state strategy",
	}, []string{"strategy"})
	pr.searchDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "cpkernel",
		Name:      "search_duration_seconds",
		Help:      "Duration of Solve and SolveSubjectTo calls",
		Buckets:   prom.DefBuckets,
	}, []string{"strategy"})
	pr.runs = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "cpkernel",
		Name:      "search_runs_total",
		Help:      "Search runs by strategy and completion",
	}, []string{"strategy", "completed"})
	pr.iterations = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "cpkernel",
		Name:      "lns_iterations_total",
		Help:      "LNS iterations by whether they improved the incumbent",
	}, []string{"improved"})
	reg.MustRegister(pr.solutions, pr.failures, pr.nodes, pr.searchDuration, pr.runs, pr.iterations)

	return pr
}

// IncSolutions counts one solution leaf.
func (p *PrometheusRecorder) IncSolutions() {
	if p == nil || p.solutions == nil {
		return
	}
	p.solutions.Inc()
}

// IncFailures counts one closed branch.
func (p *PrometheusRecorder) IncFailures() {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.Inc()
}

// ObserveSearch records the nodes, duration and completion of one search call.
func (p *PrometheusRecorder) ObserveSearch(strategy string, stats search.Statistics, d time.Duration) {
	if p == nil || p.nodes == nil {
		return
	}
	p.nodes.WithLabelValues(strategy).Add(float64(stats.Nodes))
	p.searchDuration.WithLabelValues(strategy).Observe(d.Seconds())
	p.runs.WithLabelValues(strategy, strconv.FormatBool(stats.Completed)).Inc()
}

// ObserveIteration counts one LNS iteration.
func (p *PrometheusRecorder) ObserveIteration(improved bool) {
	if p == nil || p.iterations == nil {
		return
	}
	p.iterations.WithLabelValues(strconv.FormatBool(improved)).Inc()
}

// HTTPHandler returns an http.Handler serving the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
