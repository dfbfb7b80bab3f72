package planner

// MetricsRecorder receives engine telemetry. The prometheus-backed
// implementation lives in the monitoring package; a nil-safe no-op is used
// when metrics are disabled.
type MetricsRecorder interface {
	ObserveGeneration(outcome string, seconds float64, planned, required int)
	IncProviderCall(operation string)
	IncSlotFallback()
}

// Generation outcomes reported to the metrics recorder
const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
	OutcomeFailed   = "failed"
)

type nopMetrics struct{}

func (nopMetrics) ObserveGeneration(string, float64, int, int) {}
func (nopMetrics) IncProviderCall(string)                      {}
func (nopMetrics) IncSlotFallback()                            {}
