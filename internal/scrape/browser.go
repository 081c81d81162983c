// Package scrape - browser.go provides headless browser rendering for
// pages that only populate content client-side.
package scrape

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider a plain
// HTTP fetch successful. Shorter content suggests a JavaScript-rendered page.
const MinContentLength = 500

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely rendered client-side.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in a headless browser and returns the rendered
// HTML. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering time to populate the page.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss common cookie banners. Not finding one is fine.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)

	if err != nil {
		return "", &Error{
			URL:     url,
			Message: "browser rendering failed",
			Cause:   err,
		}
	}

	if verbose {
		log.Printf("[BROWSER] Rendered %d bytes of HTML", len(html))
	}

	return html, nil
}

// FetchRendered fetches a URL over plain HTTP first and falls back to
// headless browser rendering when the extracted text looks too thin.
// Options.ForceBrowser skips the HTTP attempt entirely.
func FetchRendered(ctx context.Context, urlStr string, opts *Options, verbose bool) (*Result, error) {
	var (
		result *Result
		err    error
	)
	if opts == nil || !opts.ForceBrowser {
		result, err = Fetch(ctx, urlStr, opts)
		if err == nil && !ShouldUseBrowser(result.Text) {
			return result, nil
		}
	}

	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	html, browserErr := WithBrowser(ctx, urlStr, timeout, verbose)
	if browserErr != nil {
		if err != nil {
			return nil, fmt.Errorf("http fetch failed (%v) and browser fallback failed: %w", err, browserErr)
		}
		if result == nil {
			return nil, browserErr
		}
		// Thin but usable HTTP content beats a browser failure.
		return result, nil
	}

	text, textErr := ExtractMainText(html)
	if textErr != nil {
		text = ""
	}

	return &Result{
		URL:        urlStr,
		HTML:       html,
		Text:       text,
		StatusCode: 200,
	}, nil
}
