package mlbstats

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the StatsClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GameLogFunc func(ctx context.Context, req FetchRequest) (*GameLogPayload, error)
	ProbeFunc   func(ctx context.Context, req FetchRequest) (bool, error)

	// Call records
	GameLogCalls []FetchRequest
	ProbeCalls   []FetchRequest
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GameLogCalls = nil
	m.ProbeCalls = nil
}

// Calls returns the total number of fetch calls observed.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GameLogCalls) + len(m.ProbeCalls)
}

func (m *MockClient) GameLog(ctx context.Context, req FetchRequest) (*GameLogPayload, error) {
	m.mu.Lock()
	m.GameLogCalls = append(m.GameLogCalls, req)
	fn := m.GameLogFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &GameLogPayload{}, nil
}

func (m *MockClient) Probe(ctx context.Context, req FetchRequest) (bool, error) {
	m.mu.Lock()
	m.ProbeCalls = append(m.ProbeCalls, req)
	fn := m.ProbeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return false, nil
}
