// Package caching stores fetched HTML on disk so repeated ingest runs over
// the same site do not re-download unchanged pages.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a file-based HTML cache keyed by page URL with a TTL. A zero TTL
// disables reads, so every lookup misses and fresh content is always fetched.
type Cache struct {
	dir string
	ttl time.Duration
}

// New creates a Cache rooted at dir, creating the directory if needed.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.html", hash[:16])
}

// Get returns the cached HTML for url and true on a hit. Expired or
// unreadable entries count as misses.
func (c *Cache) Get(url string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	path := filepath.Join(c.dir, c.key(url))

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores the HTML for url, overwriting any previous entry.
func (c *Cache) Set(url string, html []byte) error {
	path := filepath.Join(c.dir, c.key(url))
	if err := os.WriteFile(path, html, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
