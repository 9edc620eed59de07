package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fin-letter/config"
)

const alphaVantagePayload = `{
	"feed": [
		{
			"title": "NVIDIA tops earnings estimates",
			"url": "https://example.com/nvda-earnings",
			"time_published": "20240102T153000",
			"summary": "The chipmaker beat on both revenue and margin.",
			"source_domain": "example.com",
			"overall_sentiment_label": "Bullish",
			"overall_sentiment_score": 0.41,
			"topics": [
				{"topic": "Earnings", "relevance_score": "0.95"},
				{"topic": "Technology", "relevance_score": "0.5"}
			],
			"ticker_sentiment": [
				{"ticker": "NVDA", "ticker_sentiment_score": "0.62", "ticker_sentiment_label": "Bullish"},
				{"ticker": "", "ticker_sentiment_score": "0.1", "ticker_sentiment_label": "Neutral"}
			]
		},
		{
			"title": "",
			"url": "https://example.com/no-title",
			"summary": "dropped"
		}
	]
}`

func TestAlphaVantageFetch(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(alphaVantagePayload))
	}))
	defer srv.Close()

	s := NewAlphaVantage("test-key", config.AlphaVantageConfig{Tickers: "NVDA", Topics: "earnings"}, newTestStore(t), 5*time.Second)
	s.baseURL = srv.URL
	s.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	articles, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1, "the item without a title must be dropped")

	assert.Equal(t, []string{"NEWS_SENTIMENT"}, gotQuery["function"])
	assert.Equal(t, []string{"NVDA"}, gotQuery["tickers"])
	assert.Equal(t, []string{"earnings"}, gotQuery["topics"])
	assert.Equal(t, []string{"20240101T120000"}, gotQuery["time_from"])
	assert.Equal(t, []string{"20240115T120000"}, gotQuery["time_to"])

	a := articles[0]
	assert.Equal(t, "NVIDIA tops earnings estimates", a.Title)
	assert.Equal(t, "The chipmaker beat on both revenue and margin.", a.Description)
	assert.Equal(t, a.Description, a.Content)
	assert.Equal(t, "20240102T153000", a.PublishedAt)
	assert.Equal(t, "example.com", a.Source)
	assert.Equal(t, "Bullish", a.SentimentLabel)
	assert.InDelta(t, 0.41, a.SentimentScore, 1e-9)

	require.Len(t, a.Topics, 2)
	assert.Equal(t, "Earnings", a.Topics[0].Label)
	assert.InDelta(t, 0.95, a.Topics[0].Score, 1e-9)

	require.Len(t, a.TickerSentiment, 1, "the empty ticker must be dropped")
	assert.Equal(t, "NVDA", a.TickerSentiment[0].Ticker)
	assert.Equal(t, "Bullish", a.TickerSentiment[0].Label)
	assert.InDelta(t, 0.62, a.TickerSentiment[0].Confidence, 1e-9)
}

func TestAlphaVantageFetchTransportError(t *testing.T) {
	s := NewAlphaVantage("test-key", config.AlphaVantageConfig{}, newTestStore(t), time.Second)
	s.baseURL = "http://127.0.0.1:1"

	_, err := s.Fetch(context.Background())
	assert.Error(t, err)
}

func TestParseScore(t *testing.T) {
	assert.InDelta(t, 0.25, parseScore("0.25"), 1e-9)
	assert.Equal(t, 0.0, parseScore("not-a-number"))
	assert.Equal(t, 0.0, parseScore(""))
}
