package metrics

import "time"

// Collector provides helper methods over the package collectors so callers
// do not deal with label plumbing.
type Collector struct{}

// NewCollector creates a Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// IncStepsApplied increments the applied-steps counter for a table.
func (c *Collector) IncStepsApplied(table string) {
	StepsAppliedTotal.WithLabelValues(table).Inc()
}

// IncInitialiseFailures increments the failed-runs counter.
func (c *Collector) IncInitialiseFailures() {
	InitialiseFailuresTotal.Inc()
}

// ObserveInitialiseDuration records the duration of one initialise run.
func (c *Collector) ObserveInitialiseDuration(d time.Duration) {
	InitialiseDurationSeconds.Observe(d.Seconds())
}

// SetSchemaVersion records the persisted schema version. The previous
// version's series is reset so only the current one reads 1.
func (c *Collector) SetSchemaVersion(version string) {
	SchemaVersionInfo.Reset()
	SchemaVersionInfo.WithLabelValues(version).Set(1)
}
