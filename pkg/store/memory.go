package store

import "sync"

// Memory is an in-process Driver used in tests and by surfaces that opt out
// of durability. Values are copied on the way in and out.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.entries[key]
	if !ok {
		return nil, false
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true
}

func (m *Memory) Set(key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(raw))
	copy(cp, raw)
	m.entries[key] = cp
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
