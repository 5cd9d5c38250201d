package repositories

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage is the in-process counterpart of RedisStorage for
// single-instance deployments.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	exp     time.Duration
	now     func() time.Time
}

// NewMemoryStorage creates an empty storage; zero expiration keeps keys forever
func NewMemoryStorage(expiration time.Duration) *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]memoryEntry),
		exp:     expiration,
		now:     time.Now,
	}
}

// Set stores value under key in namespace
func (m *MemoryStorage) Set(_ context.Context, namespace, key, value string) error {
	entry := memoryEntry{value: value}
	if m.exp > 0 {
		entry.expiresAt = m.now().Add(m.exp)
	}

	m.mu.Lock()
	m.entries[storageKey(namespace, key)] = entry
	m.mu.Unlock()
	return nil
}

// Get returns the value under key in namespace
func (m *MemoryStorage) Get(_ context.Context, namespace, key string) (string, error) {
	k := storageKey(namespace, key)

	m.mu.RLock()
	entry, ok := m.entries[k]
	m.mu.RUnlock()

	if !ok {
		return "", ErrKeyNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, k)
		m.mu.Unlock()
		return "", ErrKeyNotFound
	}
	return entry.value, nil
}

// Delete removes key from namespace
func (m *MemoryStorage) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	delete(m.entries, storageKey(namespace, key))
	m.mu.Unlock()
	return nil
}
