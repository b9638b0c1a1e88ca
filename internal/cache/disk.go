package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists payloads across runs. Each entry is a small JSON
// file under dir; expiry is checked on read and expired files removed.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a disk cache rooted at dir with the given
// default TTL.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (d *DiskCache) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(d.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(d.path(key))
		return nil, false
	}

	return entry.Data, true
}

func (d *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	// Zero means the default TTL; a negative ttl writes an entry that
	// is already expired and will miss on the next Get.
	if ttl == 0 {
		ttl = d.ttl
	}

	now := time.Now()
	raw, err := json.Marshal(diskEntry{
		Data:      value,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(d.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

func (d *DiskCache) Delete(key string) error {
	return os.Remove(d.path(key))
}

func (d *DiskCache) Clear() error {
	return os.RemoveAll(d.dir)
}

func (d *DiskCache) path(key string) string {
	return filepath.Join(d.dir, key+".cache")
}
