package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps payloads in a process-local map. Used by tests and as
// the fallback backend when no storage is configured (the catalog then
// lives only as long as the process).
type MemorySlot struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{slots: make(map[string][]byte)}
}

func (m *MemorySlot) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.slots[key]
	if !ok {
		return nil, ErrNoData
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *MemorySlot) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.slots[key] = stored
	return nil
}
