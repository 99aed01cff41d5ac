package store

import (
	"context"
	"sync"
)

type inMemory struct {
	mu      sync.RWMutex
	storage map[string]map[string]string
}

// NewMemoryStore returns an in-memory ContextStore.
// Entries are scoped to the process lifetime.
func NewMemoryStore() ContextStore {
	return &inMemory{}
}

func (m *inMemory) Get(_ context.Context, sessionID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.storage == nil {
		return "", nil
	}
	return m.storage[sessionID][key], nil
}

func (m *inMemory) Set(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string]map[string]string)
	}
	sess := m.storage[sessionID]
	if sess == nil {
		sess = make(map[string]string)
		m.storage[sessionID] = sess
	}
	sess[key] = value
	return nil
}

func (m *inMemory) All(_ context.Context, sessionID string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make(map[string]string, len(m.storage[sessionID]))
	for k, v := range m.storage[sessionID] {
		res[k] = v
	}
	return res, nil
}

func (m *inMemory) Reset(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage != nil {
		delete(m.storage, sessionID)
	}
	return nil
}
