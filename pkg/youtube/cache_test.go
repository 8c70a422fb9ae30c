package youtube_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govcongiants/encore/pkg/logging"
	"github.com/govcongiants/encore/pkg/youtube"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c := youtube.LoadCache(path)
	assert.Zero(t, c.Len())

	c.Put("https://www.youtube.com/watch?v=abc123XYZ", "2025-04-09")
	c.Put("https://www.youtube.com/watch?v=def456UVW", "")
	require.NoError(t, c.Save())

	reloaded := youtube.LoadCache(path)
	assert.Equal(t, 2, reloaded.Len())

	got, ok := reloaded.Get("https://www.youtube.com/watch?v=abc123XYZ")
	assert.True(t, ok)
	assert.Equal(t, "2025-04-09", got)
}

func TestCacheEmptyStringIsConfirmedMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := youtube.LoadCache(path)
	c.Put("https://www.youtube.com/watch?v=abc123XYZ", "")

	got, ok := c.Get("https://www.youtube.com/watch?v=abc123XYZ")
	assert.True(t, ok, "a cached empty result is a hit, not an absence")
	assert.Empty(t, got)

	_, ok = c.Get("https://www.youtube.com/watch?v=neverseen1")
	assert.False(t, ok)
}

func TestCacheMalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	tl := logging.CaptureLoggingForTest(t)
	c := youtube.LoadCache(path)
	assert.Zero(t, c.Len())
	assert.True(t, tl.Contains("Malformed lookup cache"))
}

func TestCacheMissingFileStartsEmpty(t *testing.T) {
	c := youtube.LoadCache(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Zero(t, c.Len())
}

func TestCacheSaveIsStable(t *testing.T) {
	// Map keys serialize sorted, so the file is stable across runs.
	path := filepath.Join(t.TempDir(), "cache.json")
	c := youtube.LoadCache(path)
	c.Put("https://www.youtube.com/watch?v=zzz999AAA", "2025-01-01")
	c.Put("https://www.youtube.com/watch?v=aaa111ZZZ", "2025-02-02")
	require.NoError(t, c.Save())
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	reloaded := youtube.LoadCache(path)
	require.NoError(t, reloaded.Save())
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Len(t, decoded, 2)
}

func TestCacheSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")
	c := youtube.LoadCache(path)
	c.Put("https://www.youtube.com/watch?v=abc123XYZ", "2025-04-09")
	require.NoError(t, c.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
