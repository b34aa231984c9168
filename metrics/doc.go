// Package metrics records search activity.
//
// Components receive a Recorder. NoopRecorder is the default and costs
// nothing; PrometheusRecorder exports counters and histograms to a
// Prometheus registry. Attach wires a recorder to the solution and failure
// listeners of a search.DFSearch.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	metrics.Attach(dfs, rec)
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
