package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fin-letter/api/router"
	"fin-letter/cache"
	"fin-letter/models"
	"fin-letter/processor"
	"fin-letter/sources"
)

type stubSource struct {
	articles []models.Article
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(context.Context) ([]models.Article, error) {
	return s.articles, nil
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, a models.Article) (string, error) {
	return "summary of " + a.URL, nil
}

type stubClassifier struct{}

func (stubClassifier) Classify(_ context.Context, text string) (string, float64, error) {
	if text == "summary of https://x/down" {
		return "NEGATIVE", 0.8, nil
	}
	return "POSITIVE", 0.9, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	src := &stubSource{articles: []models.Article{
		{Title: "Up", URL: "https://x/up", PublishedAt: "2024-01-02"},
		{Title: "Down", URL: "https://x/down", PublishedAt: "2024-01-01"},
	}}

	p := processor.New(processor.Options{
		Sources:    []sources.Source{src},
		Summarizer: stubSummarizer{},
		Classifier: stubClassifier{},
		Store:      store,
	})
	return router.New(p)
}

func TestListSummaries(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summaries", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "https://x/up", got[0].URL)
	assert.Equal(t, "POSITIVE", got[0].Sentiment)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestListSummariesSentimentFilter(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summaries?sentiment=negative", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "NEGATIVE", got[0].Sentiment)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
