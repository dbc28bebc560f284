package storage

import (
	"context"
	"slices"
	"sync"
)

// Memory is a process-local Port. Clients sharing one Memory behave like tabs
// sharing one browser profile.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(_ context.Context, key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{Value: slices.Clone(e.Value), Revision: e.Revision}, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte, expected int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.entries[key].Revision
	if expected != AnyRevision && cur != expected {
		return 0, ErrRevisionMismatch
	}
	next := cur + 1
	m.entries[key] = Entry{Value: slices.Clone(value), Revision: next}
	return next, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
