// Package cache provides the layered lookup cache: a short-lived memory
// layer in front of a persistent disk layer, keyed by request URL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by all layers. A zero ttl on Set
// applies the layer's default; a negative ttl means already expired.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a request URL. The version segment
// invalidates old entries when the cached payload format changes.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "airlines:v1:" + hex.EncodeToString(sum[:])
}
