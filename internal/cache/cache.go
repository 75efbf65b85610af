// Package cache memoizes analysis results keyed by a digest of the request.
// The engine is pure, so identical inputs always yield identical outputs and
// caching is safe for as long as the operator cares to keep entries.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qualimetry/qualimetry/internal/config"
)

// ResultCache stores serialized analysis results under request digests.
type ResultCache interface {
	// Get retrieves a cached payload. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a payload with the configured TTL.
	Set(ctx context.Context, key string, data []byte) error

	// Close releases the cache's resources.
	Close() error
}

// New creates a ResultCache from configuration. A disabled cache returns nil
// with no error; callers treat a nil cache as a pass-through.
func New(cfg config.CacheConfig) (ResultCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	if cfg.URL != "" {
		return newRedisCache(cfg)
	}
	return NewMemoryCache(cfg.TTL), nil
}

// Key derives a deterministic cache key from the operation name, the
// request-relevant configuration, and the series payload. Any marshal failure
// falls back to a non-colliding time-based key, which simply misses.
func Key(operation string, cfg interface{}, payload interface{}) string {
	h := sha256.New()
	h.Write([]byte(operation))
	h.Write([]byte{0})

	if cfg != nil {
		if b, err := json.Marshal(cfg); err == nil {
			h.Write(b)
		}
	}
	h.Write([]byte{0})

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%s:uncacheable:%d", operation, time.Now().UnixNano())
	}
	h.Write(b)

	return operation + ":" + hex.EncodeToString(h.Sum(nil))
}
