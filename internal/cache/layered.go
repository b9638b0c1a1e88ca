package cache

import "time"

// LayeredCache reads from memory first and falls back to disk,
// promoting disk hits back into memory.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds the standard two-layer cache used by the
// lookup client.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (l *LayeredCache) Get(key string) ([]byte, bool) {
	if v, ok := l.memory.Get(key); ok {
		return v, true
	}

	if v, ok := l.disk.Get(key); ok {
		_ = l.memory.Set(key, v, 0) // promote with default TTL
		return v, true
	}

	return nil, false
}

func (l *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return l.disk.Set(key, value, ttl)
}

func (l *LayeredCache) Delete(key string) error {
	_ = l.memory.Delete(key)
	_ = l.disk.Delete(key)
	return nil
}

func (l *LayeredCache) Clear() error {
	_ = l.memory.Clear()
	return l.disk.Clear()
}
