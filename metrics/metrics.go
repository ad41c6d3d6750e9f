// Package metrics provides Prometheus observability metrics for the
// staffing engine. It covers business visibility (FTE totals, warning
// volumes) and operational health (simulation latency, task counts).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// SimulationsTotal counts simulation runs by outcome (ok, client_error,
// server_error).
var SimulationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "simulations_total",
	Help:      "Total simulation runs by outcome",
}, []string{"outcome"})

// WarningsTotal counts per-task warnings by kind. Sustained growth of
// missing_unit_time points at degraded reference data.
var WarningsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "warnings_total",
	Help:      "Total per-task warnings emitted by simulations, by kind",
}, []string{"kind"})

// LastFTERounded exposes the last computed rounded FTE per centre.
var LastFTERounded = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "last_fte_rounded",
	Help:      "Rounded FTE of the most recent simulation, per centre",
}, []string{"centre"})

// LastTotalHours exposes the last computed daily hours per centre.
var LastTotalHours = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "last_total_hours",
	Help:      "Total daily hours of the most recent simulation, per centre",
}, []string{"centre"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// SimulationDurationSeconds tracks end-to-end simulation latency.
var SimulationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "staffing",
	Name:      "simulation_duration_seconds",
	Help:      "Time taken to run one simulation",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// TasksEvaluated tracks the number of tasks evaluated per simulation.
var TasksEvaluated = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "staffing",
	Name:      "tasks_evaluated",
	Help:      "Number of tasks evaluated per simulation run",
	Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
})

// StrategySelections counts which strategy served each simulation.
var StrategySelections = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "strategy_selections_total",
	Help:      "Simulations served per strategy",
}, []string{"strategy"})
