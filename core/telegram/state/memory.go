package state

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[S any] struct {
	value   S
	expires time.Time
}

// MemoryStore keeps conversations in process memory.
type MemoryStore[S any] struct {
	mu      sync.RWMutex
	entries map[int64]memoryEntry[S]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore[S any](opts Options) *MemoryStore[S] {
	return &MemoryStore[S]{
		entries: make(map[int64]memoryEntry[S]),
		ttl:     opts.TTL,
		now:     opts.clock(),
	}
}

// Get returns the conversation for chatID if one is active.
func (m *MemoryStore[S]) Get(_ context.Context, chatID int64) (S, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[chatID]
	m.mu.RUnlock()

	var zero S
	if !ok {
		return zero, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		if cur, still := m.entries[chatID]; still && cur.expires.Equal(e.expires) {
			delete(m.entries, chatID)
		}
		m.mu.Unlock()
		return zero, false, nil
	}
	return e.value, true, nil
}

// Set replaces the conversation for chatID.
func (m *MemoryStore[S]) Set(_ context.Context, chatID int64, value S) error {
	e := memoryEntry[S]{value: value}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[chatID] = e
	m.mu.Unlock()
	return nil
}

// Delete removes the conversation for chatID. Deleting a missing entry is not an error.
func (m *MemoryStore[S]) Delete(_ context.Context, chatID int64) error {
	m.mu.Lock()
	delete(m.entries, chatID)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryStore[S]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
