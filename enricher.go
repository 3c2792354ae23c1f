package dirscrape

import "context"

// Enricher fills schema fields that heuristic extraction left empty, using
// an external semantic service (typically an LLM). Implementations receive
// an HTML fragment (one record container, or a whole detail document) and
// only the fields still missing, and return a name→value mapping. Missing
// or empty values mean the field could not be resolved.
//
// Response order is not meaningful. Implementations must degrade to an
// empty mapping when the service is unavailable or unconfigured rather
// than blocking extraction; callers ignore enrichment errors and keep the
// heuristically-filled record as-is.
type Enricher interface {
	Enrich(ctx context.Context, fragment string, fields FieldSchema) (map[string]string, error)
}
