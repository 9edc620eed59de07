package cache

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"fin-letter/internal/logger"
)

// Cache is a key-addressed TTL file cache. Each entry is one JSON file whose
// name is the SHA-256 of the logical key, so keys are never recoverable from
// storage and lookups never enumerate the directory.
//
// There is no locking and no eviction cap: callers keep a single writer per
// key and unbounded growth is accepted for this workload size. Expiration is
// lazy; a stale entry is deleted on the next read attempt.
type Cache struct {
	dir string
	ttl time.Duration
}

// DefaultTTL is the entry lifetime used when New receives a non-positive ttl.
const DefaultTTL = 24 * time.Hour

// New opens a cache rooted at dir, creating the directory if needed.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Path returns the storage path for a logical key.
func (c *Cache) Path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, fmt.Sprintf("%x", sum)+".json")
}

// Save serializes value and writes it under key, overwriting any existing
// entry. The write goes to a temp file first and is renamed into place, so a
// concurrent reader never observes a torn file.
func (c *Cache) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}

	path := c.Path(key)
	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming cache entry: %w", err)
	}
	return nil
}

// Load reads the entry for key into out and reports whether a fresh entry was
// found. An entry older than the TTL is treated as absent and its file is
// removed best-effort; a failed removal still yields a miss, the next
// successful Save overwrites the stale file anyway. I/O and decode failures
// are logged and reported as misses, never raised.
func (c *Cache) Load(key string, out any) bool {
	path := c.Path(key)

	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Log.Warnf("failed to stat cache file %s: %v", path, err)
		}
		return false
	}

	if time.Since(info.ModTime()) > c.ttl {
		logger.Log.Debugf("cache entry expired for key %q", key)
		if err := os.Remove(path); err != nil {
			logger.Log.Warnf("failed to remove expired cache file %s: %v", path, err)
		}
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Warnf("failed to read cache file %s: %v", path, err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Log.Warnf("failed to decode cache file %s: %v", path, err)
		return false
	}
	return true
}
