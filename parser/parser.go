package parser

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ExtractText pulls clean article body text out of an HTML document.
// readability is the main extractor; trafilatura is the fallback for pages
// readability cannot segment; as a last resort every text node is collected.
// Returns "" only when the document has no usable text at all.
func ExtractText(htmlStr string) string {
	if text := extractWithReadability(htmlStr); text != "" {
		return text
	}
	if text := extractWithTrafilatura(htmlStr); text != "" {
		return text
	}
	return extractAllText(htmlStr)
}

func extractWithReadability(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return ""
	}
	return CleanText(article.TextContent)
}

func extractWithTrafilatura(htmlStr string) string {
	article, err := trafilatura.Extract(strings.NewReader(htmlStr), trafilatura.Options{})
	if err != nil {
		return ""
	}
	return CleanText(article.ContentText)
}

// extractAllText walks every text node in document order.
func extractAllText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "svg":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)

	return CleanText(b.String())
}

// CleanText drops blank lines and trims per-line whitespace.
func CleanText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
