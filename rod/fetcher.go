// Package rod provides a browser-rendering implementation of
// dirscrape.Fetcher for directories that build their listings with
// JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// DefaultFetchTimeout bounds a single rendered fetch.
const DefaultFetchTimeout = 10 * time.Second

// scrollSettle is how long the page gets to append lazy-loaded records
// after each scroll step.
const scrollSettle = 300 * time.Millisecond

// Ensure Fetcher implements dirscrape.Fetcher at compile time.
var _ dirscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. The underlying browser is recycled periodically by a
// BrowserManager to bound memory growth on long runs.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	scroll  bool
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithScrollAssist makes each fetch scroll to the bottom of the page
// before capturing HTML, so infinite-scroll directories reveal more
// records. Off by default.
func WithScrollAssist() FetcherOption {
	return func(f *Fetcher) {
		f.scroll = true
	}
}

// WithFetchTimeout bounds each fetch. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher backed by a fresh headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager: manager,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", dirscrape.Errorf(dirscrape.EUNAVAILABLE, "opening page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", dirscrape.Errorf(dirscrape.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", dirscrape.Errorf(dirscrape.EUNAVAILABLE, "loading %s: %v", url, err)
	}

	if f.scroll {
		f.scrollToBottom(page)
	}

	html, err := page.HTML()
	if err != nil {
		return "", dirscrape.Errorf(dirscrape.EINTERNAL, "capturing HTML for %s: %v", url, err)
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// scrollToBottom steps down the page until its height stops growing,
// giving lazy-loaded content a chance to render. Scroll failures are
// ignored; the caller still gets whatever rendered.
func (f *Fetcher) scrollToBottom(page *rod.Page) {
	const maxSteps = 10

	lastHeight := -1
	for i := 0; i < maxSteps; i++ {
		res, err := page.Eval(`() => {
			window.scrollTo(0, document.body.scrollHeight);
			return document.body.scrollHeight;
		}`)
		if err != nil {
			return
		}
		height := res.Value.Int()
		if height == lastHeight {
			return
		}
		lastHeight = height
		time.Sleep(scrollSettle)
	}
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
