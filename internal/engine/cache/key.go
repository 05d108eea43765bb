package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// KeyParams identifies a cacheable catalog request.
type KeyParams struct {
	// Operation is the request kind, e.g. "search".
	Operation string
	// BaseURL is the catalog endpoint, so different catalogs never share entries.
	BaseURL string
	// Shard is the shard key (a starting letter).
	Shard string
}

// GenerateKey returns a deterministic SHA256 key for params.
// Operation is case-insensitive and surrounding whitespace is ignored.
func GenerateKey(params KeyParams) (string, error) {
	op := strings.ToLower(strings.TrimSpace(params.Operation))
	if op == "" {
		return "", errors.New("cache key operation cannot be empty")
	}
	base := strings.TrimRight(strings.TrimSpace(params.BaseURL), "/")
	shard := strings.TrimSpace(params.Shard)

	sum := sha256.Sum256([]byte(op + "\x00" + base + "\x00" + shard))
	return hex.EncodeToString(sum[:]), nil
}

// ShardKey is a convenience for GenerateKey with the "search" operation.
func ShardKey(baseURL, shard string) string {
	// GenerateKey only fails on an empty operation.
	key, _ := GenerateKey(KeyParams{Operation: "search", BaseURL: baseURL, Shard: shard})
	return key
}
