package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists but is older than
// the cache TTL. The caller should fetch fresh data and [Cache.Set] it.
var ErrExpired = errors.New("cache entry expired")

// Cache stores JSON-encoded values as files named by the SHA-256 of their key.
// Freshness is judged by file modification time; a TTL of 0 never expires.
//
// A Cache is not safe for concurrent use by multiple goroutines.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache in dir (default ~/.cache/autogen/), creating the
// directory if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "autogen")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get decodes the entry for key into v.
// It returns (true, nil) on a fresh hit, (false, nil) on a miss and
// (false, ErrExpired) for a stale entry.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores v under key, replacing any previous entry and resetting its age.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a view of the same directory whose keys are prefixed.
// Namespaces nest: c.Namespace("a:").Namespace("b:") uses "a:b:".
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

// Clear removes every entry in the cache directory, across all namespaces,
// and returns how many were deleted.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err == nil {
			count++
		}
	}
	return count, nil
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
