// Package dirscrape turns arbitrary directory web pages (rosters of people,
// companies, facilities) into structured records matching a caller-supplied
// field schema, without per-site scraping code. It detects whether a page
// lists many records or describes one, locates the DOM subtrees that act as
// record containers, walks pagination, and maps container content onto
// schema fields with layered heuristics.
//
// This package contains domain types and collaborator interfaces following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// rod/, gemini/).
package dirscrape

// PageKind classifies a fetched page.
type PageKind string

// Page kinds.
const (
	// PageListing enumerates many records.
	PageListing PageKind = "listing"

	// PageDetail is devoted to a single record.
	PageDetail PageKind = "detail"
)
