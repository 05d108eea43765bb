package cache

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// Store is the cache surface used by the catalog client.
type Store interface {
	Get(key string) (*CacheEntry, error)
	Set(key string, data json.RawMessage) error
}

// MemoryStore is a process-local cache with TTL expiration.
// Thread-safe for concurrent access.
type MemoryStore struct {
	enabled    bool
	ttlSeconds int
	entries    map[string]*CacheEntry
	now        func() time.Time

	mu sync.RWMutex
}

// NewMemoryStore creates a new in-memory cache store.
// A disabled store rejects every operation with ErrCacheDisabled.
func NewMemoryStore(enabled bool, ttlSeconds int) *MemoryStore {
	return &MemoryStore{
		enabled:    enabled,
		ttlSeconds: ttlSeconds,
		entries:    make(map[string]*CacheEntry),
		now:        time.Now,
	}
}

// WithClock replaces the store's time source. Used by tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Get retrieves a cache entry by key.
// Returns ErrCacheNotFound if the entry doesn't exist.
// Returns ErrCacheExpired if the entry has expired; the entry is removed.
func (s *MemoryStore) Get(key string) (*CacheEntry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrCacheNotFound
	}

	if entry.IsExpiredAt(s.now()) {
		s.mu.Lock()
		// Re-check: a concurrent Set may have replaced the entry.
		if cur, still := s.entries[key]; still && cur == entry {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, ErrCacheExpired
	}

	copied := *entry
	return &copied, nil
}

// Set stores data under key, overwriting any existing entry.
func (s *MemoryStore) Set(key string, data json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	buf := make(json.RawMessage, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = newCacheEntryAt(key, buf, s.ttlSeconds, s.now())
	return nil
}

// Delete removes a cache entry by key. Missing keys are not an error.
func (s *MemoryStore) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Clear removes all cache entries.
func (s *MemoryStore) Clear() error {
	if !s.enabled {
		return ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*CacheEntry)
	return nil
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (s *MemoryStore) CleanupExpired() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if entry.IsExpiredAt(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Size returns the total number of cached payload bytes.
func (s *MemoryStore) Size() (int64, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, entry := range s.entries {
		total += int64(len(entry.Data))
	}
	return total, nil
}

// Count returns the number of cache entries (including expired ones).
func (s *MemoryStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// IsEnabled returns true if caching is enabled.
func (s *MemoryStore) IsEnabled() bool {
	return s.enabled
}

// GetTTL returns the default TTL in seconds.
func (s *MemoryStore) GetTTL() int {
	return s.ttlSeconds
}
