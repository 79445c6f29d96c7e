package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the collector.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	TasksSucceeded     prometheus.Counter
	TasksEmpty         prometheus.Counter
	TasksFailed        prometheus.Counter
	RecordsWritten     prometheus.Counter
	FetchRetries       prometheus.Counter
	TaskDuration       prometheus.Histogram
	InFlightTasks      prometheus.Gauge
	RunDurationSeconds prometheus.Gauge
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
}
