package trials

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/inference-sim/boarding-sim/sim"
)

// Metrics holds the prometheus collectors fed by trial runs. Each Metrics
// owns its registry, so concurrent experiments never share counters.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec
	StopsTotal    *prometheus.CounterVec
	ShufflesTotal *prometheus.CounterVec
	BlockedTotal  *prometheus.CounterVec
	RunSteps      *prometheus.HistogramVec
	BoardingTime  *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}

	m.RunsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_runs_total",
			Help: "Total number of boarding runs by final status",
		},
		[]string{"policy", "status"},
	)
	m.StopsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_stops_total",
			Help: "Total number of passenger stops",
		},
		[]string{"policy"},
	)
	m.ShufflesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_shuffles_total",
			Help: "Total number of seat shuffles",
		},
		[]string{"policy"},
	)
	m.BlockedTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_blocked_steps_total",
			Help: "Total passenger-steps spent blocked in the aisle",
		},
		[]string{"policy"},
	)
	m.RunSteps = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boarding_run_steps",
			Help:    "Steps taken per boarding run",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		},
		[]string{"policy"},
	)
	m.BoardingTime = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boarding_time_minutes",
			Help:    "Boarding time per run under the experiment cost model",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10),
		},
		[]string{"policy"},
	)
	return m
}

// Observe records one finished run.
func (m *Metrics) Observe(policy string, r sim.RunResult, totalTime float64) {
	m.RunsTotal.WithLabelValues(policy, string(r.Status)).Inc()
	m.StopsTotal.WithLabelValues(policy).Add(float64(r.Stops))
	m.ShufflesTotal.WithLabelValues(policy).Add(float64(r.Shuffles))
	m.BlockedTotal.WithLabelValues(policy).Add(float64(r.Blocked))
	m.RunSteps.WithLabelValues(policy).Observe(float64(r.Steps))
	m.BoardingTime.WithLabelValues(policy).Observe(totalTime)
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Gather collects the current metric families.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}
