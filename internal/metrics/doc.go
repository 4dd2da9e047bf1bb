// Package metrics mirrors recorded task durations into a metrics backend.
//
// The timer registry depends only on the Recorder interface. NoopRecorder is
// the default and costs nothing. PrometheusRecorder registers counters and a
// gauge per task name in a caller-supplied registry so an embedding program
// can expose or inspect them; this package never serves them over the network.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg, "tasktimer")
//	r := timer.NewRegistry(timer.WithRecorder(rec))
package metrics
