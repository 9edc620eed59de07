package renderer

import (
	"context"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

const USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// renderTimeout bounds a single page render so one unresponsive site cannot
// block the whole run.
const renderTimeout = 30 * time.Second

// Renderer produces fully rendered HTML for pages that need a browser.
// Scraping sources take it as an interface so tests can substitute canned
// HTML without launching Chrome.
type Renderer interface {
	RenderHTML(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages with headless Chrome via chromedp.
// A fresh browser context is created per render; the allocator options are
// fixed at construction.
type ChromeRenderer struct {
	opts []chromedp.ExecAllocatorOption
}

func NewChromeRenderer() *ChromeRenderer {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		chromePath = "/usr/bin/chromium-browser" // Docker/Linux default
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.UserAgent(USER_AGENT),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-crashpad", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)

	return &ChromeRenderer{opts: opts}
}

// RenderHTML navigates to url and returns the page HTML after the body is
// ready and client-side rendering has had a moment to settle.
func (r *ChromeRenderer) RenderHTML(ctx context.Context, url string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, r.opts...)
	defer cancel()
	runCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	runCtx, cancel = context.WithTimeout(runCtx, renderTimeout)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return "", err
	}
	return htmlContent, nil
}
