// Package metrics exposes Prometheus counters for session and configuration activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors and the registry they are registered with
type Metrics struct {
	registry *prometheus.Registry

	ActiveSessions   prometheus.Gauge
	ConfigOperations *prometheus.CounterVec
	EditorCommits    *prometheus.CounterVec
	Simulations      *prometheus.CounterVec
}

// New creates the collectors on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cosim",
			Name:      "active_sessions",
			Help:      "Number of open editing sessions.",
		}),
		ConfigOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosim",
			Name:      "config_operations_total",
			Help:      "Saved-configuration operations by kind and outcome.",
		}, []string{"op", "result"}),
		EditorCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosim",
			Name:      "editor_commits_total",
			Help:      "Editor sessions applied, by list kind and outcome.",
		}, []string{"kind", "result"}),
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosim",
			Name:      "simulation_runs_total",
			Help:      "Simulation handoffs by simulation and outcome.",
		}, []string{"simulation", "result"}),
	}

	reg.MustRegister(
		m.ActiveSessions,
		m.ConfigOperations,
		m.EditorCommits,
		m.Simulations,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Result maps an error to an outcome label
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
