package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TasksSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_tasks_succeeded_total",
			Help: "The total number of collection tasks that succeeded.",
		}),
		TasksEmpty: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_tasks_empty_total",
			Help: "The total number of collection tasks that returned no data.",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_tasks_failed_total",
			Help: "The total number of collection tasks that failed after retries.",
		}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_records_written_total",
			Help: "The total number of new records committed to the store.",
		}),
		FetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_fetch_retries_total",
			Help: "The total number of fetch attempts beyond the first.",
		}),
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "collector_task_duration_seconds",
			Help:    "The duration of individual collection tasks.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		InFlightTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "collector_in_flight_tasks",
			Help: "The number of tasks currently being executed by workers.",
		}),
		RunDurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "collector_run_duration_seconds",
			Help: "The duration of the most recent collection run in seconds.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_notifications_sent_total",
			Help: "The total number of run summary notifications sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_notifications_failed_total",
			Help: "The total number of run summary notifications that failed to send.",
		}),
	}

	reg.MustRegister(
		s.TasksSucceeded,
		s.TasksEmpty,
		s.TasksFailed,
		s.RecordsWritten,
		s.FetchRetries,
		s.TaskDuration,
		s.InFlightTasks,
		s.RunDurationSeconds,
		s.NotifSent,
		s.NotifFailed,
	)

	return s
}

func (s *Service) IncTasksSucceeded() {
	s.TasksSucceeded.Inc()
}

func (s *Service) IncTasksEmpty() {
	s.TasksEmpty.Inc()
}

func (s *Service) IncTasksFailed() {
	s.TasksFailed.Inc()
}

func (s *Service) AddRecordsWritten(n int) {
	s.RecordsWritten.Add(float64(n))
}

func (s *Service) IncFetchRetries() {
	s.FetchRetries.Inc()
}

func (s *Service) ObserveTaskDuration(seconds float64) {
	s.TaskDuration.Observe(seconds)
}

func (s *Service) SetInFlightTasks(n float64) {
	s.InFlightTasks.Set(n)
}

func (s *Service) SetRunDuration(seconds float64) {
	s.RunDurationSeconds.Set(seconds)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}
