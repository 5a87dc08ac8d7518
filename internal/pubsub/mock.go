package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Mock is a mock implementation of the PubSubClient interface.
type Mock struct {
	mu sync.Mutex

	SendMessageCalls []SendMessageCall
	SendMessageErr   error
}

type SendMessageCall struct {
	Topic string
	Data  any
}

var _ PubSubClient = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendMessage(topic string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = append(m.SendMessageCalls, SendMessageCall{Topic: topic, Data: data})
	return m.SendMessageErr
}

func (m *Mock) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}

// Calls returns a copy of the recorded SendMessage calls.
func (m *Mock) Calls() []SendMessageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SendMessageCall, len(m.SendMessageCalls))
	copy(out, m.SendMessageCalls)
	return out
}
