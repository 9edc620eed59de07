package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"fin-letter/cache"
	"fin-letter/config"
	"fin-letter/internal/logger"
	"fin-letter/models"
)

// RSS aggregates the configured financial RSS feeds into one source.
// A feed that fails to parse is skipped; the adapter errors only when every
// feed fails, so one dead feed never empties the whole source.
type RSS struct {
	feeds  []config.RSSFeedSource
	store  *cache.Cache
	parser *gofeed.Parser
}

func NewRSS(feeds []config.RSSFeedSource, store *cache.Cache, timeout time.Duration) *RSS {
	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: timeout}

	return &RSS{
		feeds:  feeds,
		store:  store,
		parser: fp,
	}
}

func (s *RSS) Name() string { return "RSS" }

// feedsKey folds the configured feed URLs into the cache key so changing
// the feed set invalidates the day's entry.
func (s *RSS) feedsKey() string {
	urls := make([]string, 0, len(s.feeds))
	for _, f := range s.feeds {
		urls = append(urls, f.URL)
	}
	return strings.Join(urls, ",")
}

func (s *RSS) Fetch(ctx context.Context) ([]models.Article, error) {
	cacheKey := fmt.Sprintf("rss_%s_%s", s.feedsKey(), todayKey())

	var cached []models.Article
	if s.store.Load(cacheKey, &cached) && len(cached) > 0 {
		logger.Log.Info("using cached RSS articles")
		return cached, nil
	}

	var articles []models.Article
	var failures int
	for _, feedCfg := range s.feeds {
		feed, err := s.parser.ParseURLWithContext(feedCfg.URL, ctx)
		if err != nil {
			logger.Log.Warnf("failed to fetch RSS feed %s: %v", feedCfg.Name, err)
			failures++
			continue
		}

		for _, item := range feed.Items {
			if item.Title == "" || item.Link == "" {
				continue
			}

			content := item.Content
			if content == "" {
				content = item.Description
			}
			published := item.Published
			if published == "" {
				published = item.Updated
			}

			articles = append(articles, models.Article{
				Title:       item.Title,
				Description: item.Description,
				Content:     content,
				PublishedAt: published,
				URL:         item.Link,
				Source:      feedCfg.Name,
			})
		}
	}

	if len(s.feeds) > 0 && failures == len(s.feeds) {
		return nil, fmt.Errorf("rss fetch: all %d feeds failed", failures)
	}

	if err := s.store.Save(cacheKey, articles); err != nil {
		logger.Log.Warnf("failed to cache RSS articles: %v", err)
	}
	return articles, nil
}
