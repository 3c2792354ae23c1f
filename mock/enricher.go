package mock

import (
	"context"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Ensure Enricher implements dirscrape.Enricher.
var _ dirscrape.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of dirscrape.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, fragment string, fields dirscrape.FieldSchema) (map[string]string, error)
}

// Enrich delegates to EnrichFn.
func (e *Enricher) Enrich(ctx context.Context, fragment string, fields dirscrape.FieldSchema) (map[string]string, error) {
	return e.EnrichFn(ctx, fragment, fields)
}
