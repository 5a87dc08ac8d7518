package challenge

import "sync"

// Mock is a hand-written mock of the Store interface.
type Mock struct {
	mu sync.Mutex

	CreateFunc          func(ch *Challenge) error
	GetFunc             func(id string) (*Challenge, error)
	ActiveForPlayerFunc func(playerID string) (*Challenge, error)
	ListActiveFunc      func() ([]Challenge, error)
	ListAllFunc         func() ([]Challenge, error)
	SetStatusFunc       func(id string, from, to Status) error
	MarkNotifiedFunc    func(id string, kind NotificationKind, sentAt int64) error

	// Call records
	CreateCalls    []*Challenge
	SetStatusCalls []SetStatusCall
	MarkedNotified []MarkNotifiedCall
}

type SetStatusCall struct {
	ID       string
	From, To Status
}

type MarkNotifiedCall struct {
	ID   string
	Kind NotificationKind
}

var _ Store = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Create(ch *Challenge) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, ch)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ch)
	}
	return nil
}

func (m *Mock) Get(id string) (*Challenge, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, ErrNotFound
}

func (m *Mock) ActiveForPlayer(playerID string) (*Challenge, error) {
	if m.ActiveForPlayerFunc != nil {
		return m.ActiveForPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *Mock) ListActive() ([]Challenge, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc()
	}
	return nil, nil
}

func (m *Mock) ListAll() ([]Challenge, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc()
	}
	return nil, nil
}

func (m *Mock) SetStatus(id string, from, to Status) error {
	m.mu.Lock()
	m.SetStatusCalls = append(m.SetStatusCalls, SetStatusCall{ID: id, From: from, To: to})
	m.mu.Unlock()
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(id, from, to)
	}
	return nil
}

func (m *Mock) MarkNotified(id string, kind NotificationKind, sentAt int64) error {
	m.mu.Lock()
	m.MarkedNotified = append(m.MarkedNotified, MarkNotifiedCall{ID: id, Kind: kind})
	m.mu.Unlock()
	if m.MarkNotifiedFunc != nil {
		return m.MarkNotifiedFunc(id, kind, sentAt)
	}
	return nil
}

func (m *Mock) Clear() {}
