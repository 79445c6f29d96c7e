package metrics

// Metrics defines the interface for collecting run metrics.
// This decouples the collector from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTasksSucceeded()
	IncTasksEmpty()
	IncTasksFailed()
	AddRecordsWritten(n int)
	IncFetchRetries()
	ObserveTaskDuration(seconds float64)
	SetInFlightTasks(n float64)
	SetRunDuration(seconds float64)
	IncNotifSent()
	IncNotifFailed()
}
