// Package metrics exposes run counters as Prometheus metrics, fed by engine hooks.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	runs      *prometheus.CounterVec
	steps     *prometheus.CounterVec
	runLength *prometheus.HistogramVec
}

// New creates and registers the collectors. Go runtime and process collectors are
// included so /metrics is useful on its own.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs by verdict",
			},
			[]string{"machine", "verdict"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Total number of applied transitions",
			},
			[]string{"machine"},
		),
		runLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Steps per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"machine"},
		),
	}
	m.registry.MustRegister(
		m.runs, m.steps, m.runLength,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks recording every step and halt.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.Machine).Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			m.runs.WithLabelValues(e.Machine, verdict(e)).Inc()
			m.runLength.WithLabelValues(e.Machine).Observe(float64(e.Steps))
		},
	}
}

func verdict(e *domain.HaltEvent) string {
	switch {
	case errors.Is(e.Err, domain.ErrMaxStepsReached):
		return "step_bound"
	case e.Err != nil:
		return domain.VerdictError
	case e.Accepted:
		return domain.VerdictAccept
	default:
		return domain.VerdictReject
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
