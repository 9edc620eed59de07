package main

import (
	"context"
	"fmt"

	"fin-letter/config"
	"fin-letter/internal/bootstrap"
	"fin-letter/internal/logger"
)

// Batch entry: run the pipeline once and report what came out. The API
// service (cmd/api) serves the same cached results afterwards.
func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	ctx := context.Background()
	p, err := bootstrap.BuildProcessor(ctx)
	if err != nil {
		logger.Log.Errorf("failed to build pipeline: %v", err)
		return
	}

	summaries := p.GetProcessedArticles(ctx)

	counts := map[string]int{}
	for _, s := range summaries {
		counts[s.Sentiment]++
	}

	logger.InfoWithFields("run completed", logger.Fields{
		"articles": len(summaries),
		"positive": counts["POSITIVE"],
		"negative": counts["NEGATIVE"],
		"neutral":  counts["NEUTRAL"],
	})

	for _, s := range summaries {
		fmt.Printf("[%s] %s (%s, %.2f)\n  %s\n", s.PublishedAt, s.Title, s.Sentiment, s.SentimentScore, s.URL)
	}
}
