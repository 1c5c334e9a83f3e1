// Package metrics counts reconciliation runs for export in the Prometheus
// textfile format.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "edgesync"

// Recorder holds the run counters of one process. A nil Recorder discards
// every observation.
type Recorder struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	commands *prometheus.CounterVec
	warnings *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates a recorder backed by a private registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Reconciliation runs by target, domain and outcome.",
		}, []string{"target", "domain", "result"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands synthesized by target and domain.",
		}, []string{"target", "domain"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Warnings reported by target and domain.",
		}, []string{"target", "domain"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a reconciliation run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"domain"}),
	}
	r.registry.MustRegister(r.runs, r.commands, r.warnings, r.duration)
	return r
}

// Outcome labels
const (
	ResultChanged   = "changed"
	ResultUnchanged = "unchanged"
	ResultFailed    = "failed"
)

// ObserveRun records one finished run
func (r *Recorder) ObserveRun(target, domain, result string, commands, warnings int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(target, domain, result).Inc()
	r.commands.WithLabelValues(target, domain).Add(float64(commands))
	r.warnings.WithLabelValues(target, domain).Add(float64(warnings))
	r.duration.WithLabelValues(domain).Observe(elapsed.Seconds())
}

// Gatherer exposes the underlying registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path for the node exporter textfile
// collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
