// Package mock provides mock implementations of the scraper's
// collaborator interfaces for testing.
package mock

import (
	"context"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Ensure Fetcher implements dirscrape.Fetcher.
var _ dirscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of dirscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

// Fetch delegates to FetchFn.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Close delegates to CloseFn, or returns nil if unset.
func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
