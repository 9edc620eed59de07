package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fin-letter/parser"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Markets rally on rate cut hopes</title></head>
<body>
<nav>Home | Markets | Tech</nav>
<article>
<h1>Markets rally on rate cut hopes</h1>
<p>Stocks climbed on Tuesday as investors bet the central bank would begin
cutting rates before the end of the year.</p>
<p>The S&amp;P 500 gained 1.2 percent while treasury yields slipped, with rate
sensitive sectors leading the advance for a second straight session.</p>
<p>Analysts cautioned that inflation data due later this week could still
derail the move if prices come in hotter than expected.</p>
</article>
<script>trackPageView();</script>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractText(t *testing.T) {
	text := parser.ExtractText(articleHTML)
	assert.NotEmpty(t, text)
	assert.Contains(t, text, "Stocks climbed on Tuesday")
	assert.NotContains(t, text, "trackPageView")
}

func TestExtractTextEmptyDocument(t *testing.T) {
	assert.Equal(t, "", parser.ExtractText(""))
}

func TestExtractTextPlainParagraphs(t *testing.T) {
	// Minimal markup that readability may reject; the fallback path must
	// still recover the paragraph text.
	text := parser.ExtractText(`<div><p>Oil prices rose.</p><p>OPEC held output steady.</p></div>`)
	assert.Contains(t, text, "Oil prices rose.")
	assert.Contains(t, text, "OPEC held output steady.")
}

func TestCleanText(t *testing.T) {
	in := "  line one  \n\n\n   \n line two\t\n"
	assert.Equal(t, "line one\nline two", parser.CleanText(in))
}
