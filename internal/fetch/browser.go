// Package fetch - browser.go renders JavaScript-heavy pages in a headless browser.
package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultBrowserTimeout bounds a headless render, including browser startup.
// It matches the plain fetcher's bound.
const DefaultBrowserTimeout = DefaultTimeout

// BrowserRenderer fetches a single page through headless Chrome and returns
// the rendered HTML. Requires Chrome/Chromium on the host.
type BrowserRenderer struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready for scripts to render.
	Settle time.Duration
}

// NewBrowserRenderer returns a renderer with default timings.
func NewBrowserRenderer() *BrowserRenderer {
	return &BrowserRenderer{
		Timeout: DefaultBrowserTimeout,
		Settle:  2 * time.Second,
	}
}

// Fetch renders urlStr and returns its outer HTML. Failures are *Error, so the
// renderer is interchangeable with Fetcher.
func (b *BrowserRenderer) Fetch(ctx context.Context, urlStr string) (string, error) {
	zap.L().Debug("rendering page in headless browser", zap.String("url", urlStr))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: eris.Wrap(err, "fetch: chromedp run")}
	}

	zap.L().Debug("rendered page", zap.String("url", urlStr), zap.Int("bytes", len(html)))
	return html, nil
}
