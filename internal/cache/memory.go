package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps recently fetched payloads in process memory so that
// repeated lookups within one run never hit the disk.
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL.
// Expired entries are swept every cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(key string) ([]byte, bool) {
	if v, ok := m.c.Get(key); ok {
		return v.([]byte), true
	}
	return nil, false
}

func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	// go-cache reads a negative duration as "never expire"; an already
	// expired entry simply is not stored.
	if ttl < 0 {
		m.c.Delete(key)
		return nil
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Delete(key string) error {
	m.c.Delete(key)
	return nil
}

func (m *MemoryCache) Clear() error {
	m.c.Flush()
	return nil
}
