package ladder

import "sync"

// Mock is a hand-written mock of the Store interface for tests that do not
// want a real database. Unset funcs return zero values.
type Mock struct {
	mu sync.Mutex

	JoinPlayerFunc       func(name string) (*Player, error)
	GetPlayerFunc        func(id string) (*Player, error)
	GetPlayerByNameFunc  func(name string) (*Player, error)
	ListPlayersFunc      func() ([]Player, error)
	ListMatchesFunc      func() ([]Match, error)
	RecordMatchFunc      func(m *Match) error
	DeactivatePlayerFunc func(id string) error
	VerifyPositionsFunc  func() error

	// Call records
	JoinPlayerCalls  []string
	RecordMatchCalls []*Match
}

var _ Store = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) JoinPlayer(name string) (*Player, error) {
	m.mu.Lock()
	m.JoinPlayerCalls = append(m.JoinPlayerCalls, name)
	m.mu.Unlock()
	if m.JoinPlayerFunc != nil {
		return m.JoinPlayerFunc(name)
	}
	return nil, nil
}

func (m *Mock) GetPlayer(id string) (*Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return nil, ErrPlayerNotFound
}

func (m *Mock) GetPlayerByName(name string) (*Player, error) {
	if m.GetPlayerByNameFunc != nil {
		return m.GetPlayerByNameFunc(name)
	}
	return nil, ErrPlayerNotFound
}

func (m *Mock) ListPlayers() ([]Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc()
	}
	return nil, nil
}

func (m *Mock) ListMatches() ([]Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc()
	}
	return nil, nil
}

func (m *Mock) RecordMatch(match *Match) error {
	m.mu.Lock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, match)
	m.mu.Unlock()
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(match)
	}
	return nil
}

func (m *Mock) DeactivatePlayer(id string) error {
	if m.DeactivatePlayerFunc != nil {
		return m.DeactivatePlayerFunc(id)
	}
	return nil
}

func (m *Mock) VerifyPositions() error {
	if m.VerifyPositionsFunc != nil {
		return m.VerifyPositionsFunc()
	}
	return nil
}

func (m *Mock) Clear() {}
