package slog

import (
	"context"
	"log/slog"
	"time"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Ensure Enricher implements dirscrape.Enricher.
var _ dirscrape.Enricher = (*Enricher)(nil)

// Enricher wraps a dirscrape.Enricher with call logging.
type Enricher struct {
	next   dirscrape.Enricher
	logger *slog.Logger
}

// NewEnricher creates a new logging Enricher.
func NewEnricher(next dirscrape.Enricher, logger *slog.Logger) *Enricher {
	return &Enricher{next: next, logger: logger}
}

// Enrich logs the requested fields and delegates to the wrapped
// enricher.
func (e *Enricher) Enrich(ctx context.Context, fragment string, fields dirscrape.FieldSchema) (filled map[string]string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("enrich",
			"requested", len(fields),
			"filled", len(filled),
			"fragment_bytes", len(fragment),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Enrich(ctx, fragment, fields)
}
