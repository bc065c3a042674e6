package slack

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CachedBot wraps a resolved bot name with fetch metadata.
type CachedBot struct {
	Name      string `json:"name"`
	FetchedAt int64  `json:"fetched_at"`
}

// botCacheData is the top-level structure for the cache file.
type botCacheData struct {
	Version int                  `json:"version"`
	Bots    map[string]CachedBot `json:"bots"`
}

// BotCache provides persistent caching for bot display names. bots.info is
// a slow per-id endpoint, so names survive between export runs on disk.
// Thread-safe for concurrent access.
type BotCache struct {
	path  string
	mu    sync.RWMutex
	names map[string]string
}

// NewBotCache creates a BotCache that persists to the given path. An empty
// path keeps the cache in memory only.
func NewBotCache(path string) *BotCache {
	return &BotCache{
		path:  path,
		names: make(map[string]string),
	}
}

// Get returns a cached bot name by id.
func (c *BotCache) Get(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[id]
	return name, ok
}

// Set adds or updates a bot name in the cache.
func (c *BotCache) Set(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[id] = name
}

// Load reads the cache from disk. Returns nil if the file doesn't exist or
// no path is configured.
func (c *BotCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var cacheData botCacheData
	if err := json.Unmarshal(data, &cacheData); err != nil {
		return err
	}

	c.names = make(map[string]string, len(cacheData.Bots))
	for id, cached := range cacheData.Bots {
		c.names[id] = cached.Name
	}
	return nil
}

// Save writes the cache to disk. A no-op without a configured path.
func (c *BotCache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.path == "" {
		return nil
	}
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return err
	}

	now := time.Now().Unix()
	cacheData := botCacheData{
		Version: 1,
		Bots:    make(map[string]CachedBot, len(c.names)),
	}
	for id, name := range c.names {
		cacheData.Bots[id] = CachedBot{Name: name, FetchedAt: now}
	}

	data, err := json.MarshalIndent(cacheData, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0600)
}
