package statlog

import "sync"

// MockStore is a mock implementation of the StatStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	CommitFunc       func(records RecordSet) (CommitResult, error)
	GetStatusFunc    func(playerID int64, season int) (Status, bool, error)
	MarkStatusFunc   func(playerID int64, season int, status Status, lastError string) error
	StatusCountsFunc func(season int) (map[Status]int, error)

	CommitCalls     []RecordSet
	MarkStatusCalls []MarkStatusCall
}

// MarkStatusCall records one MarkStatus invocation.
type MarkStatusCall struct {
	PlayerID  int64
	Season    int
	Status    Status
	LastError string
}

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Commit(records RecordSet) (CommitResult, error) {
	m.mu.Lock()
	m.CommitCalls = append(m.CommitCalls, records)
	fn := m.CommitFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(records)
	}
	return CommitResult{Inserted: records.Len()}, nil
}

func (m *MockStore) GetStatus(playerID int64, season int) (Status, bool, error) {
	m.mu.Lock()
	fn := m.GetStatusFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(playerID, season)
	}
	return "", false, nil
}

func (m *MockStore) MarkStatus(playerID int64, season int, status Status, lastError string) error {
	m.mu.Lock()
	m.MarkStatusCalls = append(m.MarkStatusCalls, MarkStatusCall{
		PlayerID:  playerID,
		Season:    season,
		Status:    status,
		LastError: lastError,
	})
	fn := m.MarkStatusFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(playerID, season, status, lastError)
	}
	return nil
}

func (m *MockStore) StatusCounts(season int) (map[Status]int, error) {
	m.mu.Lock()
	fn := m.StatusCountsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(season)
	}
	return map[Status]int{}, nil
}
