// Package cache provides an in-memory TTL cache for catalog shard responses.
//
// Shard bodies are cached for the lifetime of the process so that a retry
// after a failed load, or a second load in the same session, does not refetch
// shards that already succeeded. Key features:
//   - Configurable TTL (default 1 hour) via config file, environment variable, or CLI flag
//   - Automatic expiration and cleanup of stale entries
//   - SHA256-based cache keys for deterministic lookups
//
// Nothing is written to disk; entries are gone when the process exits.
package cache
