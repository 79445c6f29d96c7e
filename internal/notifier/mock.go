package notifier

import (
	"sync"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/collector"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendRunSummaryFunc func(summary collector.Summary, dryRun bool) error

	SendRunSummaryCalls []collector.Summary
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRunSummaryCalls = nil
}

func (m *Mock) SendRunSummary(summary collector.Summary, dryRun bool) error {
	m.mu.Lock()
	m.SendRunSummaryCalls = append(m.SendRunSummaryCalls, summary)
	fn := m.SendRunSummaryFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(summary, dryRun)
	}
	return nil
}
