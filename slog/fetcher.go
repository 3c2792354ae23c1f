// Package slog provides logging decorators for the scraper's
// collaborator interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Ensure Fetcher implements dirscrape.Fetcher.
var _ dirscrape.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a dirscrape.Fetcher with request logging.
type Fetcher struct {
	next   dirscrape.Fetcher
	logger *slog.Logger
}

// NewFetcher creates a new logging Fetcher.
func NewFetcher(next dirscrape.Fetcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}
