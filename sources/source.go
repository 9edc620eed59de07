package sources

import (
	"context"
	"time"

	"fin-letter/models"
)

// Source produces normalized articles from one external origin.
//
// A fetch error means the whole source contributed nothing this run; the
// processor logs it and moves on. Partial failures inside a source (one feed
// down, one article body unreachable) are recovered by the adapter itself:
// the item is kept with degraded fields, or dropped when it has no usable
// title and URL.
//
// Every adapter short-circuits through its own cache entry, keyed by source
// name, query parameters and the current date, before doing the expensive
// fetch, and writes the raw batch back after a successful one.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Article, error)
}

// todayKey returns the date component used in source cache keys.
func todayKey() string {
	return time.Now().Format("2006-01-02")
}
