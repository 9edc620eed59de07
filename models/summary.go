package models

// Summary is the processed form of one article: the LLM-generated
// distillation plus its sentiment classification. Written once per distinct
// article URL; a reprocessed article fully regenerates and overwrites the
// cached entry, it is never patched in place.
type Summary struct {
	Title           string            `json:"title"`
	Summary         string            `json:"summary"`
	Description     string            `json:"description"`
	PublishedAt     string            `json:"published_at"`
	URL             string            `json:"url"`
	Source          string            `json:"source"`
	Sentiment       string            `json:"sentiment"`
	SentimentScore  float64           `json:"sentiment_score"`
	Topics          []TopicScore      `json:"topics"`
	TickerSentiment []TickerSentiment `json:"ticker_sentiment"`
}
