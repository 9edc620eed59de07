package bootstrap

import (
	"context"
	"fmt"

	"fin-letter/cache"
	"fin-letter/config"
	"fin-letter/internal/logger"
	"fin-letter/processor"
	"fin-letter/renderer"
	"fin-letter/sentiment"
	"fin-letter/sources"
	"fin-letter/summarizer"
)

// BuildProcessor wires the whole pipeline from configuration: cache, source
// adapters, summarization and sentiment backends, quota. Sources whose API
// key is missing are skipped with a warning, never fatally.
func BuildProcessor(ctx context.Context) (*processor.Processor, error) {
	cfg := config.GetConfig()

	store, err := cache.New(cfg.CacheDir(), cfg.CacheTTL())
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	timeout := cfg.RequestTimeout()

	var srcs []sources.Source
	if key := config.NewsAPIKey(); key != "" {
		srcs = append(srcs, sources.NewNewsAPI(key, cfg.NewsAPI, store, timeout))
	} else {
		logger.Log.Warn("NEWSAPI_API_KEY not set, skipping NewsAPI source")
	}
	if key := config.AlphaVantageAPIKey(); key != "" {
		srcs = append(srcs, sources.NewAlphaVantage(key, cfg.AlphaVantage, store, timeout))
	} else {
		logger.Log.Warn("ALPHAVANTAGE_API_KEY not set, skipping Alpha Vantage source")
	}
	if len(cfg.RSSFeeds) > 0 {
		srcs = append(srcs, sources.NewRSS(cfg.RSSFeeds, store, timeout))
	}
	srcs = append(srcs, sources.NewCNN(cfg.CNN.SectionURL, renderer.NewChromeRenderer(), store))

	geminiKey := config.GeminiAPIKey()
	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	summarize, err := summarizer.NewGemini(ctx, geminiKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("creating summarizer: %w", err)
	}

	classify := sentiment.NewHuggingFace(config.HuggingFaceToken(), timeout)

	return processor.New(processor.Options{
		Sources:    srcs,
		Summarizer: summarize,
		Classifier: classify,
		Store:      store,
		Quota:      summarizer.NewQuotaLimiter(cfg.SummaryQuota),
	}), nil
}
