package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fin-letter/cache"
	"fin-letter/internal/logger"
	"fin-letter/models"
	"fin-letter/parser"
	"fin-letter/renderer"
)

const cnnInvestingURL = "https://edition.cnn.com/business/investing"

// CNN scrapes the CNN investing section: headline cards from the rendered
// section page, then the body text of each discovered article.
//
// The section layout is matched with a fixed set of structural selectors.
// A selector miss at any level (container, card, headline) skips that unit
// and continues; the batch never aborts because one block changed shape.
type CNN struct {
	sectionURL string
	render     renderer.Renderer
	store      *cache.Cache
}

func NewCNN(sectionURL string, render renderer.Renderer, store *cache.Cache) *CNN {
	if sectionURL == "" {
		sectionURL = cnnInvestingURL
	}
	return &CNN{
		sectionURL: sectionURL,
		render:     render,
		store:      store,
	}
}

func (s *CNN) Name() string { return "CNN" }

func (s *CNN) Fetch(ctx context.Context) ([]models.Article, error) {
	cacheKey := fmt.Sprintf("cnn_%s", todayKey())

	var cached []models.Article
	if s.store.Load(cacheKey, &cached) && len(cached) > 0 {
		logger.Log.Info("using cached CNN articles")
		return cached, nil
	}

	logger.Log.Info("scraping fresh articles from CNN")
	sectionHTML, err := s.render.RenderHTML(ctx, s.sectionURL)
	if err != nil {
		return nil, fmt.Errorf("cnn render section: %w", err)
	}

	headlines, err := s.parseHeadlines(sectionHTML)
	if err != nil {
		return nil, fmt.Errorf("cnn parse section: %w", err)
	}
	logger.Log.Infof("found %d CNN headline cards", len(headlines))

	articles := make([]models.Article, 0, len(headlines))
	for _, h := range headlines {
		content := s.fetchArticleContent(ctx, h.url)
		articles = append(articles, models.Article{
			Title:   h.title,
			Content: content,
			URL:     h.url,
			Source:  "CNN",
		})
	}

	if err := s.store.Save(cacheKey, articles); err != nil {
		logger.Log.Warnf("failed to cache CNN articles: %v", err)
	}
	return articles, nil
}

type headline struct {
	title string
	url   string
}

// parseHeadlines extracts headline/link pairs from the two structural blocks
// the section page is built from: the lead-plus-headlines column and the
// vertical-strip sections.
func (s *CNN) parseHeadlines(sectionHTML string) ([]headline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sectionHTML))
	if err != nil {
		return nil, err
	}

	var headlines []headline
	seen := make(map[string]bool)

	collectCards := func(container *goquery.Selection) {
		container.Find("div.card.container__item").Each(func(_ int, card *goquery.Selection) {
			title := strings.TrimSpace(card.Find("span.container__headline-text").First().Text())
			link, _ := card.Find("a").First().Attr("href")
			link = s.resolveLink(link)

			// Cards without a usable title and link carry no identity.
			if title == "" || link == "" {
				return
			}
			if seen[link] {
				return
			}
			seen[link] = true
			headlines = append(headlines, headline{title: title, url: link})
		})
	}

	doc.Find("div.container.container_lead-plus-headlines-with-images").Each(func(_ int, sel *goquery.Selection) {
		collectCards(sel)
	})
	doc.Find("div.container.container_vertical-strip").Each(func(_ int, sel *goquery.Selection) {
		wrapper := sel.Find("div.container_vertical-strip__cards-wrapper")
		if wrapper.Length() == 0 {
			return
		}
		collectCards(wrapper)
	})

	return headlines, nil
}

// resolveLink makes relative card links absolute against the section URL.
func (s *CNN) resolveLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	base, err := url.Parse(s.sectionURL)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// fetchArticleContent renders one article page and extracts clean body text.
// The dedicated article body container is preferred; failing that, the
// generic extractor runs over the whole page. Any failure degrades to empty
// content so the headline is still kept.
func (s *CNN) fetchArticleContent(ctx context.Context, articleURL string) string {
	pageHTML, err := s.render.RenderHTML(ctx, articleURL)
	if err != nil {
		logger.Log.Warnf("failed to render CNN article %s: %v", articleURL, err)
		return ""
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML)); err == nil {
		body := doc.Find("div.article__content").First()
		if body.Length() > 0 {
			body.Find("script, style, img, picture, iframe, figure, table, ul, ol, header, footer, aside, nav, svg").Remove()
			if text := parser.CleanText(body.Text()); text != "" {
				return text
			}
		}
	}

	return parser.ExtractText(pageHTML)
}
