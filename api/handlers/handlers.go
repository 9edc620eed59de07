package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fin-letter/models"
	"fin-letter/processor"
)

// ListSummariesHandler serves the day's processed summaries, newest first.
// Cheap on cache hit, so it is safe for the presentation layer to call on
// every page load. An optional repeated `sentiment` query param filters by
// label (POSITIVE/NEGATIVE/NEUTRAL, case-insensitive).
func ListSummariesHandler(p *processor.Processor) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries := p.GetProcessedArticles(c.Request.Context())

		if wanted := c.QueryArray("sentiment"); len(wanted) > 0 {
			summaries = filterBySentiment(summaries, wanted)
		}

		c.JSON(http.StatusOK, summaries)
	}
}

func filterBySentiment(summaries []models.Summary, wanted []string) []models.Summary {
	allow := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		allow[strings.ToUpper(w)] = true
	}

	filtered := make([]models.Summary, 0, len(summaries))
	for _, s := range summaries {
		if allow[strings.ToUpper(s.Sentiment)] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
