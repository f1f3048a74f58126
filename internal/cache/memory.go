package cache

import (
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	value     interface{}
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is the in-process first level of MultiLevelCache. Values are
// stored as given; callers copy them out through copyValue.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
}

func (m *MemoryCache) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if entry.expired(m.now()) {
		m.Delete(key)
		return nil, false
	}
	return entry.value, true
}

func (m *MemoryCache) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// DeletePattern removes keys matching a glob pattern and returns how many
// were removed. Patterns use path.Match syntax, which covers the '*' and '?'
// forms used with Redis KEYS/SCAN.
func (m *MemoryCache) DeletePattern(pattern string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len counts live entries and drops expired ones.
func (m *MemoryCache) Len() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
		}
	}
	return len(m.entries)
}

func (m *MemoryCache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"entries": m.Len(),
	}
}
