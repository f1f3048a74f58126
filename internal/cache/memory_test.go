package cache

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	m := NewMemoryCache()

	m.Set("board:tasks", []byte("[]"), time.Minute)

	value, found := m.Get("board:tasks")
	if !found {
		t.Fatal("Expected entry to be found")
	}
	if string(value.([]byte)) != "[]" {
		t.Errorf("Expected '[]', got %v", value)
	}

	m.Delete("board:tasks")
	if _, found := m.Get("board:tasks"); found {
		t.Error("Expected entry to be deleted")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	m := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Set("short", 1, time.Second)
	m.Set("forever", 2, 0)

	now = now.Add(2 * time.Second)

	if _, found := m.Get("short"); found {
		t.Error("Expected expired entry to be gone")
	}
	if _, found := m.Get("forever"); !found {
		t.Error("Expected entry without TTL to survive")
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 live entry, got %d", m.Len())
	}
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	m := NewMemoryCache()
	m.Set("board:tasks", 1, time.Minute)
	m.Set("board:tags", 2, time.Minute)
	m.Set("other:tasks", 3, time.Minute)

	removed := m.DeletePattern("board:*")

	if removed != 2 {
		t.Errorf("Expected 2 removed entries, got %d", removed)
	}
	if _, found := m.Get("other:tasks"); !found {
		t.Error("Expected non-matching key to survive")
	}
}

func TestMemoryCache_Concurrency(t *testing.T) {
	m := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Set("board:tasks", j, time.Minute)
				m.Get("board:tasks")
				m.DeletePattern("board:*")
			}
		}()
	}
	wg.Wait()
}
