package summarizer

import (
	"context"
	"fmt"

	"fin-letter/models"
)

// Summarizer is the capability of turning one article into summary text.
// Backends are constructed once at process start and injected into the
// processor; output is plain/markdown text and determinism is not guaranteed.
type Summarizer interface {
	Summarize(ctx context.Context, article models.Article) (string, error)
}

const SYSTEM_INSTRUCTION = `You are a financial news analyst assistant.
Given a financial news article, your task is to extract a structured summary with the following sections:
- Market Summary
- Valuation Metrics
- Macro & FX
- Key Drivers
- Tickers
- Sentiment
Be concise, accurate, and avoid repeating the entire article. Reply in markdown format.
Do not add information. Summarise only the written information in the given article.`

// MaxContentRunes bounds the article body sent to the backend. The prompt
// scaffolding is never truncated, only the content, and only from the end.
const MaxContentRunes = 20000

// BuildPrompt produces the user prompt for one article. An empty content
// field still yields a valid prompt; the backend returns whatever low
// information summary it can.
func BuildPrompt(article models.Article) string {
	return fmt.Sprintf(
		"### News Title:\n%s\n\n### Article:\n%s\n\n### The summary:\n",
		article.Title,
		truncateRunes(article.Content, MaxContentRunes),
	)
}

// truncateRunes cuts s to at most max runes.
func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
