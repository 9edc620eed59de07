package processor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"fin-letter/cache"
	"fin-letter/internal/logger"
	"fin-letter/models"
	"fin-letter/sentiment"
	"fin-letter/sources"
	"fin-letter/summarizer"
)

// Processor drives the pipeline: fetch from every source, deduplicate by
// URL, summarize and classify cache misses, and memoize everything in the
// content cache at two granularities (per article and per day).
type Processor struct {
	sources  []sources.Source
	summary  summarizer.Summarizer
	classify sentiment.Classifier
	store    *cache.Cache
	quota    *summarizer.QuotaLimiter
	workers  int

	flight singleflight.Group
}

type Options struct {
	Sources    []sources.Source
	Summarizer summarizer.Summarizer
	Classifier sentiment.Classifier
	Store      *cache.Cache

	// Quota optionally gates summarization calls; nil means unlimited.
	Quota *summarizer.QuotaLimiter

	// Workers bounds how many articles are summarized in parallel.
	// 0 or below means sequential processing.
	Workers int
}

func New(opts Options) *Processor {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Processor{
		sources:  opts.Sources,
		summary:  opts.Summarizer,
		classify: opts.Classifier,
		store:    opts.Store,
		quota:    opts.Quota,
		workers:  workers,
	}
}

// GetProcessedArticles returns the day's summaries sorted by published_at
// descending. It never fails: source outages, per-article processing errors
// and cache I/O problems all degrade to a smaller (possibly empty) result.
// Safe to call repeatedly; within the cache TTL window a repeat call is a
// pure batch-level cache hit.
func (p *Processor) GetProcessedArticles(ctx context.Context) []models.Summary {
	dayKey := fmt.Sprintf("processed_%s", time.Now().Format("2006-01-02"))

	// An empty cached batch is not a hit: a run where every article failed
	// must not pin an empty result for the rest of the day.
	var cached []models.Summary
	if p.store.Load(dayKey, &cached) && len(cached) > 0 {
		logger.Log.Info("using cached processed articles")
		return sortedByPublishedAt(cached)
	}

	articles := p.collectArticles(ctx)
	results := p.processArticles(ctx, articles)

	// The whole-batch entry keeps insertion order; sorting is presentation
	// only. Empty batches are never memoized so the next call retries.
	if len(results) > 0 {
		if err := p.store.Save(dayKey, results); err != nil {
			logger.Log.Warnf("failed to cache processed batch: %v", err)
		}
	}

	return sortedByPublishedAt(results)
}

// collectArticles aggregates every source into one working set keyed by URL.
// Source order decides which duplicate wins; a failing source contributes
// nothing and the run continues.
func (p *Processor) collectArticles(ctx context.Context) []models.Article {
	var ordered []models.Article
	seen := make(map[string]bool)

	for _, src := range p.sources {
		articles, err := src.Fetch(ctx)
		if err != nil {
			logger.Log.Errorf("source %s failed: %v", src.Name(), err)
			continue
		}
		logger.Log.Infof("source %s returned %d articles", src.Name(), len(articles))

		for _, a := range articles {
			if a.Title == "" || a.URL == "" {
				continue
			}
			if seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			ordered = append(ordered, a)
		}
	}

	return ordered
}

// processArticles runs the summarize/classify stage over the working set
// with bounded parallelism, preserving insertion order in the result.
func (p *Processor) processArticles(ctx context.Context, articles []models.Article) []models.Summary {
	slots := make([]*models.Summary, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, article := range articles {
		g.Go(func() error {
			summary, err := p.processOne(gctx, article)
			if err != nil {
				logger.Log.Errorf("failed to process article %s: %v", article.URL, err)
				return nil
			}
			slots[i] = &summary
			return nil
		})
	}
	g.Wait()

	results := make([]models.Summary, 0, len(articles))
	for _, s := range slots {
		if s != nil {
			results = append(results, *s)
		}
	}
	return results
}

// processOne resolves a single article to its summary, from cache when
// possible. Concurrent calls for the same article identity collapse into one
// in-flight summarization; the cache itself has no locking to lean on.
func (p *Processor) processOne(ctx context.Context, article models.Article) (models.Summary, error) {
	key := fmt.Sprintf("article_%s", models.ArticleID(article.URL))

	var cached models.Summary
	if p.store.Load(key, &cached) && cached.URL != "" {
		return cached, nil
	}

	v, err, _ := p.flight.Do(key, func() (any, error) {
		return p.summarizeAndClassify(ctx, key, article)
	})
	if err != nil {
		return models.Summary{}, err
	}
	return v.(models.Summary), nil
}

func (p *Processor) summarizeAndClassify(ctx context.Context, key string, article models.Article) (models.Summary, error) {
	if p.quota != nil {
		allowed, err := p.quota.WaitAndReserve(ctx)
		if err != nil {
			return models.Summary{}, fmt.Errorf("summary quota: %w", err)
		}
		if !allowed {
			return models.Summary{}, fmt.Errorf("summary daily quota exceeded")
		}
	}

	summaryText, err := p.summary.Summarize(ctx, article)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize: %w", err)
	}

	// Sentiment is classified on the generated summary, not the raw body:
	// the summary concentrates the salient claims.
	label, score, err := p.classify.Classify(ctx, summaryText)
	if err != nil {
		return models.Summary{}, fmt.Errorf("classify: %w", err)
	}

	summary := models.Summary{
		Title:           article.Title,
		Summary:         summaryText,
		Description:     article.Description,
		PublishedAt:     article.PublishedAt,
		URL:             article.URL,
		Source:          article.Source,
		Sentiment:       label,
		SentimentScore:  score,
		Topics:          article.Topics,
		TickerSentiment: article.TickerSentiment,
	}

	// A failed write is logged, not fatal: the summary is still served this
	// run and simply recomputed next time.
	if err := p.store.Save(key, summary); err != nil {
		logger.Log.Warnf("failed to cache summary for %s: %v", article.URL, err)
	}
	return summary, nil
}

// sortedByPublishedAt orders summaries newest first by a plain string sort
// on the raw timestamp. Sources use different timestamp formats, so cross
// source ordering is only approximate; within one source it is exact.
func sortedByPublishedAt(summaries []models.Summary) []models.Summary {
	out := make([]models.Summary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt > out[j].PublishedAt
	})
	return out
}
