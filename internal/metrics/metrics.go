// Package metrics exposes solver counters and timings as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the solver collectors and the registry they live in.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	solves   *prometheus.CounterVec
	steps    *prometheus.CounterVec
	rhsEvals *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdeint_solves_total",
				Help: "Total number of solve calls by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdeint_steps_total",
				Help: "Total number of time steps taken, summed over corrector passes",
			},
			[]string{"method"},
		),
		rhsEvals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdeint_rhs_evaluations_total",
				Help: "Total number of right-hand-side evaluations",
			},
			[]string{"method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fdeint_solve_duration_seconds",
				Help:    "Wall time of solve calls",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"method"},
		),
	}
	m.registry.MustRegister(m.solves, m.steps, m.rhsEvals, m.duration)
	return m
}

// Registry returns the registry holding the solver collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Step records one time step.
func (m *Metrics) Step(method string) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(method).Inc()
}

// Eval records one right-hand-side evaluation.
func (m *Metrics) Eval(method string) {
	if m == nil {
		return
	}
	m.rhsEvals.WithLabelValues(method).Inc()
}

// Solve records a finished solve call.
func (m *Metrics) Solve(method string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.solves.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// WriteTextfile writes the current values in the node_exporter textfile
// collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
