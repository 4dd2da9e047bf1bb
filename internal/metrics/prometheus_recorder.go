package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes metric names when none is configured.
const DefaultNamespace = "tasktimer"

// PrometheusRecorder implements Recorder using Prometheus counters and gauges.
type PrometheusRecorder struct {
	samples      *prom.CounterVec
	durationSum  *prom.CounterVec
	lastDuration *prom.GaugeVec
}

// NewPrometheusRecorder constructs the task metrics and registers them in reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	pr := &PrometheusRecorder{
		samples: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_samples_total",
			Help:      "Number of completed timing spans per task name",
		}, []string{"task"}),
		durationSum: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds_total",
			Help:      "Accumulated wall-clock seconds per task name",
		}, []string{"task"}),
		lastDuration: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "task_last_duration_seconds",
			Help:      "Duration of the most recent timing span per task name",
		}, []string{"task"}),
	}
	reg.MustRegister(pr.samples, pr.durationSum, pr.lastDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveTaskDuration(task string, d time.Duration) {
	if p == nil || p.samples == nil {
		return
	}
	seconds := d.Seconds()
	p.samples.WithLabelValues(task).Inc()
	p.durationSum.WithLabelValues(task).Add(seconds)
	p.lastDuration.WithLabelValues(task).Set(seconds)
}
