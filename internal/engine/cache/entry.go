package cache

import (
	"encoding/json"
	"time"
)

// CacheEntry is one cached shard body with its expiry.
//
//nolint:revive // CacheEntry is the canonical name for this exported type.
type CacheEntry struct {
	// Key is the SHA-256 key produced by GenerateKey.
	Key string `json:"key"`

	// Data is the raw JSON body returned by the catalog.
	Data json.RawMessage `json:"data"`

	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	TTLSeconds int       `json:"ttl_seconds"`
}

// NewCacheEntry creates an entry that expires ttlSeconds from now.
func NewCacheEntry(key string, data json.RawMessage, ttlSeconds int) *CacheEntry {
	return newCacheEntryAt(key, data, ttlSeconds, time.Now())
}

func newCacheEntryAt(key string, data json.RawMessage, ttlSeconds int, now time.Time) *CacheEntry {
	return &CacheEntry{
		Key:        key,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry has expired.
func (e *CacheEntry) IsExpired() bool {
	return e.IsExpiredAt(time.Now())
}

// IsExpiredAt reports whether the entry is expired at t.
func (e *CacheEntry) IsExpiredAt(t time.Time) bool {
	return t.After(e.ExpiresAt)
}
