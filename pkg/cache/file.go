package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache persists graphs and rendered artifacts on local disk. Each
// entry is a small JSON file carrying the payload and its expiry, fanned
// out into hash-prefixed subdirectories.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// storedArtifact is the on-disk entry format.
type storedArtifact struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a cached graph or artifact. Expired and unreadable
// entries are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var stored storedArtifact
	if err := json.Unmarshal(raw, &stored); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !stored.ExpiresAt.IsZero() && time.Now().After(stored.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return stored.Payload, true, nil
}

// Set stores a payload under key. A zero ttl means the entry never
// expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	stored := storedArtifact{
		Payload: data,
	}
	if ttl > 0 {
		stored.ExpiresAt = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0644)
}

// Delete removes an entry. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a cache key to its file, using the first two hash
// characters as a subdirectory so a large cache stays navigable.
func (c *FileCache) entryPath(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
