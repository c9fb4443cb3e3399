package mocks

import (
	"context"
	"sync"

	"promptbox/internal/events"
)

// EmitterMock records every event it receives.
type EmitterMock struct {
	mu     sync.Mutex
	Events []events.ChangeEvent
}

func (m *EmitterMock) Emit(_ context.Context, evt events.ChangeEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, evt)
}

func (m *EmitterMock) Topics() []events.Topic {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.Topic, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.Topic)
	}
	return out
}
