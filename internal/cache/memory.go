package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a cache created by NewMemoryCache.
const DefaultMaxEntries = 10000

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
	seq       uint64
}

// MemoryCache is an in-process Cache holding at most maxEntries values. When
// full, expired entries are swept first and then the oldest write is evicted.
// It is safe for concurrent use.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	maxEntries int
	seq        uint64
	now        func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithLimit(DefaultMaxEntries)
}

// NewMemoryCacheWithLimit creates a cache bounded to maxEntries (at least one).
func NewMemoryCacheWithLimit(maxEntries int) *MemoryCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MemoryCache{data: make(map[string]memoryEntry), maxEntries: maxEntries, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	if m.expired(e, m.now()) {
		delete(m.data, key)
		return "", ErrMiss
	}
	return e.value, nil
}

func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists && len(m.data) >= m.maxEntries {
		m.sweep()
		if len(m.data) >= m.maxEntries {
			m.evictOldest()
		}
	}

	m.seq++
	e := memoryEntry{value: value, seq: m.seq}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

// Sweep removes every expired entry and reports how many were dropped.
func (m *MemoryCache) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweep()
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryCache) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (m *MemoryCache) sweep() int {
	now := m.now()
	removed := 0
	for key, e := range m.data {
		if m.expired(e, now) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

func (m *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldestSeq uint64
		found     bool
	)
	for key, e := range m.data {
		if !found || e.seq < oldestSeq {
			oldestKey, oldestSeq, found = key, e.seq, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}
