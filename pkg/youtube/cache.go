package youtube

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/govcongiants/encore/pkg/errors"
	"github.com/govcongiants/encore/pkg/logging"
)

// Cache memoizes publish-date lookups across runs: a flat mapping from
// canonical watch URL to ISO date. An empty string is a valid entry that
// records "confirmed: no date", so a failed lookup is never retried within
// a run and costs nothing on the next one.
type Cache struct {
	path    string
	entries map[string]string
}

// LoadCache reads the cache file at path. A missing or malformed file is
// not an error: the run simply starts with an empty cache.
func LoadCache(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("path", path).Msg("Could not read lookup cache, starting empty")
		}
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Malformed lookup cache, starting empty")
		c.entries = make(map[string]string)
	}
	return c
}

// Get returns the cached date for a canonical URL. ok distinguishes a
// cached empty result from an absent entry.
func (c *Cache) Get(url string) (string, bool) {
	v, ok := c.entries[url]
	return v, ok
}

// Put records a lookup result. An empty date marks a confirmed miss.
func (c *Cache) Put(url, isoDate string) {
	c.entries[url] = isoDate
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save writes the cache back to its file as indented JSON. Map keys
// serialize sorted, so the file is stable across runs.
func (c *Cache) Save() error {
	if c.path == "" {
		return nil
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return errors.WrapIO("write", c.path, err)
	}
	return errors.WrapIO("write", c.path, os.WriteFile(c.path, data, 0o644))
}
