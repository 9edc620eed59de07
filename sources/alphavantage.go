package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fin-letter/cache"
	"fin-letter/config"
	"fin-letter/internal/logger"
	"fin-letter/models"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// alphaVantageWindow is how far back the NEWS_SENTIMENT query reaches.
const alphaVantageWindow = 14 * 24 * time.Hour

// AlphaVantage fetches the NEWS_SENTIMENT feed, which ships its own topic
// and per-ticker sentiment annotations alongside each article.
type AlphaVantage struct {
	apiKey  string
	tickers string
	topics  string

	baseURL string
	store   *cache.Cache
	client  *http.Client
	now     func() time.Time
}

func NewAlphaVantage(apiKey string, cfg config.AlphaVantageConfig, store *cache.Cache, timeout time.Duration) *AlphaVantage {
	return &AlphaVantage{
		apiKey:  apiKey,
		tickers: cfg.Tickers,
		topics:  cfg.Topics,
		baseURL: alphaVantageBaseURL,
		store:   store,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

func (s *AlphaVantage) Name() string { return "AlphaVantage" }

func (s *AlphaVantage) Fetch(ctx context.Context) ([]models.Article, error) {
	cacheKey := fmt.Sprintf("alpha_%s_%s_%s", s.tickers, s.topics, todayKey())

	var cached []models.Article
	if s.store.Load(cacheKey, &cached) && len(cached) > 0 {
		logger.Log.Info("using cached Alpha Vantage articles")
		return cached, nil
	}

	now := s.now()
	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("apikey", s.apiKey)
	params.Set("time_from", now.Add(-alphaVantageWindow).Format("20060102T150405"))
	params.Set("time_to", now.Format("20060102T150405"))
	if s.tickers != "" {
		params.Set("tickers", s.tickers)
	}
	if s.topics != "" {
		params.Set("topics", s.topics)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage fetch: unexpected status %d", resp.StatusCode)
	}

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}

	articles := make([]models.Article, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		if item.Title == "" || item.URL == "" {
			continue
		}

		topics := make([]models.TopicScore, 0, len(item.Topics))
		for _, tp := range item.Topics {
			topics = append(topics, models.TopicScore{
				Label: tp.Topic,
				Score: parseScore(tp.RelevanceScore),
			})
		}

		tickerSentiment := make([]models.TickerSentiment, 0, len(item.TickerSentiment))
		for _, ts := range item.TickerSentiment {
			if ts.Ticker == "" {
				continue
			}
			tickerSentiment = append(tickerSentiment, models.TickerSentiment{
				Ticker:     ts.Ticker,
				Label:      ts.SentimentLabel,
				Confidence: parseScore(ts.SentimentScore),
			})
		}

		articles = append(articles, models.Article{
			Title:           item.Title,
			Description:     item.Summary,
			Content:         item.Summary,
			PublishedAt:     item.TimePublished,
			URL:             item.URL,
			Source:          item.SourceDomain,
			SentimentLabel:  item.OverallSentimentLabel,
			SentimentScore:  item.OverallSentimentScore,
			Topics:          topics,
			TickerSentiment: tickerSentiment,
		})
	}

	if err := s.store.Save(cacheKey, articles); err != nil {
		logger.Log.Warnf("failed to cache Alpha Vantage articles: %v", err)
	}
	return articles, nil
}

// parseScore converts Alpha Vantage's string-typed scores; malformed values
// default to zero rather than failing the item.
func parseScore(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

type avResponse struct {
	Feed []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title                 string              `json:"title"`
	URL                   string              `json:"url"`
	TimePublished         string              `json:"time_published"`
	Summary               string              `json:"summary"`
	SourceDomain          string              `json:"source_domain"`
	OverallSentimentLabel string              `json:"overall_sentiment_label"`
	OverallSentimentScore float64             `json:"overall_sentiment_score"`
	Topics                []avTopic           `json:"topics"`
	TickerSentiment       []avTickerSentiment `json:"ticker_sentiment"`
}

type avTopic struct {
	Topic          string `json:"topic"`
	RelevanceScore string `json:"relevance_score"`
}

type avTickerSentiment struct {
	Ticker         string `json:"ticker"`
	SentimentScore string `json:"ticker_sentiment_score"`
	SentimentLabel string `json:"ticker_sentiment_label"`
}
