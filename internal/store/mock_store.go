// ABOUTME: In-memory KV implementation
// ABOUTME: Backs the memory backend and lets tests run without SQLite

package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory KV implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]Entry // namespace -> key -> entry
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]map[string]Entry),
	}
}

// Get retrieves a value by namespace and key.
func (m *MemoryStore) Get(ctx context.Context, namespace, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[namespace][key]
	if !ok {
		return "", ErrNotFound
	}
	return e.Value, nil
}

// Set creates or updates a value.
func (m *MemoryStore) Set(ctx context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.entries[namespace]
	if !ok {
		ns = make(map[string]Entry)
		m.entries[namespace] = ns
	}
	ns[key] = Entry{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// Delete removes a single key.
func (m *MemoryStore) Delete(ctx context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.entries[namespace]
	if !ok {
		return ErrNotFound
	}
	if _, ok := ns[key]; !ok {
		return ErrNotFound
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(m.entries, namespace)
	}
	return nil
}

// Clear removes every key in a namespace.
func (m *MemoryStore) Clear(ctx context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, namespace)
	return nil
}

// List returns all entries in a namespace ordered by key.
func (m *MemoryStore) List(ctx context.Context, namespace string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ns := m.entries[namespace]
	entries := make([]Entry, 0, len(ns))
	for _, e := range ns {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
