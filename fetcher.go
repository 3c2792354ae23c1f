package dirscrape

import "context"

// Fetcher retrieves HTML from URLs. Implementations decide how: plain HTTP
// for static sites, browser automation for JavaScript-rendered content, or
// an escalating combination of the two. Retry and backoff policy, if any,
// belongs to implementations; callers treat a failed fetch as a skipped
// page, never as a fault to propagate.
type Fetcher interface {
	// Fetch returns the HTML at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
