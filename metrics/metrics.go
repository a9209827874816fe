// Package metrics exposes Prometheus collectors for the migration engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StepsAppliedTotal tracks the total number of migration steps applied.
var StepsAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "evolve_steps_applied_total",
		Help: "Total migration steps applied",
	},
	[]string{"table"},
)

// InitialiseFailuresTotal tracks failed initialise runs.
var InitialiseFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "evolve_initialise_failures_total",
		Help: "Total initialise runs that rolled back",
	},
)

// InitialiseDurationSeconds tracks how long initialise runs take.
var InitialiseDurationSeconds = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "evolve_initialise_duration_seconds",
		Help:    "Duration of initialise runs",
		Buckets: prometheus.DefBuckets,
	},
)

// SchemaVersionInfo reports the persisted schema version as a labeled gauge
// (value 1 for the current version).
var SchemaVersionInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "evolve_schema_version_info",
		Help: "Persisted schema version after the last successful initialise",
	},
	[]string{"version"},
)
