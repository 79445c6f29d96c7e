package roster

import "sync"

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	PlayersFunc       func(role Role, limit int) ([]Player, error)
	UpsertPlayersFunc func(players []Player) error
	CountFunc         func() (int, error)

	PlayersCalls       []Role
	UpsertPlayersCalls [][]Player
}

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Players(role Role, limit int) ([]Player, error) {
	m.mu.Lock()
	m.PlayersCalls = append(m.PlayersCalls, role)
	fn := m.PlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(role, limit)
	}
	return nil, nil
}

func (m *MockStore) UpsertPlayers(players []Player) error {
	m.mu.Lock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	fn := m.UpsertPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(players)
	}
	return nil
}

func (m *MockStore) Count() (int, error) {
	m.mu.Lock()
	fn := m.CountFunc
	m.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return 0, nil
}
