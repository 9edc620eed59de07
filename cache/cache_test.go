package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fin-letter/cache"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	value := map[string]any{
		"title": "Fed Holds Rates Steady",
		"score": 0.87,
		"tags":  []any{"rates", "fed"},
	}
	require.NoError(t, c.Save("newsapi_us_business", value))

	var got map[string]any
	ok := c.Load("newsapi_us_business", &got)
	assert.True(t, ok)
	assert.Equal(t, value, got)
}

func TestLoadMissingKey(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	var got map[string]any
	assert.False(t, c.Load("never-written", &got))
}

func TestExpiredEntryIsRemoved(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Save("stale", "payload"))

	// Backdate the file one second past the TTL.
	path := c.Path("stale")
	old := time.Now().Add(-time.Hour - time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	var got string
	assert.False(t, c.Load("stale", &got))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "expired file should be deleted")
}

func TestSaveOverwritesExistingEntry(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Save("k", "first"))
	require.NoError(t, c.Save("k", "second"))

	var got string
	assert.True(t, c.Load("k", &got))
	assert.Equal(t, "second", got)
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Save("k", "fine"))
	require.NoError(t, os.WriteFile(c.Path("k"), []byte("{not json"), 0o644))

	var got string
	assert.False(t, c.Load("k", &got))
}

func TestUnreadableStoreIsAMiss(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	c, err := cache.New(dir, time.Hour)
	require.NoError(t, err)

	// Replace the cache directory with a regular file so stat on an entry
	// path fails with something other than "not exist".
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))

	var got string
	assert.False(t, c.Load("k", &got))
}

func TestPathIsDeterministicAndOpaque(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	p1 := c.Path("alpha_AAPL_technology")
	p2 := c.Path("alpha_AAPL_technology")
	assert.Equal(t, p1, p2)
	assert.NotContains(t, p1, "AAPL")
	assert.NotEqual(t, p1, c.Path("alpha_MSFT_technology"))
}

func TestDefaultTTLApplied(t *testing.T) {
	c, err := cache.New(t.TempDir(), 0)
	require.NoError(t, err)
	assert.Equal(t, cache.DefaultTTL, c.TTL())
}
