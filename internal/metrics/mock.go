package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	tasksSucceeded int
	tasksEmpty     int
	tasksFailed    int
	recordsWritten int
	fetchRetries   int
	taskDurations  []float64
	inFlightTasks  float64
	runDuration    float64
	notifSent      int
	notifFailed    int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		taskDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTasksSucceeded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasksSucceeded++
}

func (m *Mock) IncTasksEmpty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasksEmpty++
}

func (m *Mock) IncTasksFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasksFailed++
}

func (m *Mock) AddRecordsWritten(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordsWritten += n
}

func (m *Mock) IncFetchRetries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchRetries++
}

func (m *Mock) ObserveTaskDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taskDurations = append(m.taskDurations, seconds)
}

func (m *Mock) SetInFlightTasks(n float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlightTasks = n
}

func (m *Mock) SetRunDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runDuration = seconds
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

// TasksSucceeded returns the number of times IncTasksSucceeded was called.
func (m *Mock) TasksSucceeded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tasksSucceeded
}

// TasksEmpty returns the number of times IncTasksEmpty was called.
func (m *Mock) TasksEmpty() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tasksEmpty
}

// TasksFailed returns the number of times IncTasksFailed was called.
func (m *Mock) TasksFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tasksFailed
}

// RecordsWritten returns the total passed to AddRecordsWritten.
func (m *Mock) RecordsWritten() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordsWritten
}

// FetchRetries returns the number of times IncFetchRetries was called.
func (m *Mock) FetchRetries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchRetries
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
