package models

import (
	"crypto/sha1"
	"fmt"
)

// Article is the normalized representation a source adapter produces.
// Identity is the URL; an article is immutable once fetched.
//
// PublishedAt carries the raw source timestamp string. Formats differ per
// source (ISO-8601 for NewsAPI, compact 20060102T150405 for Alpha Vantage)
// and are deliberately not normalized.
type Article struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Content         string            `json:"content"`
	PublishedAt     string            `json:"published_at"`
	URL             string            `json:"url"`
	Source          string            `json:"source"`
	SentimentLabel  string            `json:"overall_sentiment_label,omitempty"`
	SentimentScore  float64           `json:"overall_sentiment_score,omitempty"`
	Topics          []TopicScore      `json:"topics,omitempty"`
	TickerSentiment []TickerSentiment `json:"ticker_sentiment,omitempty"`
}

// TopicScore is an upstream topic tag with its relevance score.
type TopicScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// TickerSentiment is an upstream per-ticker sentiment annotation.
type TickerSentiment struct {
	Ticker     string  `json:"ticker"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Sentence   string  `json:"sentence,omitempty"`
}

// ArticleID returns the stable content address for an article URL.
// Summaries are cached under this identity, so duplicate URLs across
// different sources collapse to a single cache entry.
func ArticleID(url string) string {
	sum := sha1.Sum([]byte(url))
	return fmt.Sprintf("%x", sum)
}
