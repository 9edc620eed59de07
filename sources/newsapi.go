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

const newsAPIBaseURL = "https://newsapi.org/v2/top-headlines"

// NewsAPI fetches top headlines from the NewsAPI REST endpoint.
type NewsAPI struct {
	apiKey   string
	country  string
	category string
	pageSize int

	baseURL string
	store   *cache.Cache
	client  *http.Client
}

func NewNewsAPI(apiKey string, cfg config.NewsAPIConfig, store *cache.Cache, timeout time.Duration) *NewsAPI {
	country := cfg.Country
	if country == "" {
		country = "us"
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	return &NewsAPI{
		apiKey:   apiKey,
		country:  country,
		category: cfg.Category,
		pageSize: pageSize,
		baseURL:  newsAPIBaseURL,
		store:    store,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *NewsAPI) Name() string { return "NewsAPI" }

func (s *NewsAPI) Fetch(ctx context.Context) ([]models.Article, error) {
	cacheKey := fmt.Sprintf("newsapi_%s_%s_%d_%s", s.country, s.category, s.pageSize, todayKey())

	var cached []models.Article
	if s.store.Load(cacheKey, &cached) && len(cached) > 0 {
		logger.Log.Info("using cached NewsAPI articles")
		return cached, nil
	}

	params := url.Values{}
	params.Set("country", s.country)
	params.Set("pageSize", strconv.Itoa(s.pageSize))
	params.Set("language", "en")
	if s.category != "" {
		params.Set("category", s.category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi fetch: unexpected status %d", resp.StatusCode)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	articles := make([]models.Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if item.Title == "" || item.URL == "" {
			continue
		}
		content := item.Content
		if content == "" {
			content = item.Description
		}
		articles = append(articles, models.Article{
			Title:       item.Title,
			Description: item.Description,
			Content:     content,
			PublishedAt: item.PublishedAt,
			URL:         item.URL,
			Source:      item.Source.Name,
		})
	}

	if err := s.store.Save(cacheKey, articles); err != nil {
		logger.Log.Warnf("failed to cache NewsAPI articles: %v", err)
	}
	return articles, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	PublishedAt string        `json:"publishedAt"`
	URL         string        `json:"url"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
