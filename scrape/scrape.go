// Package scrape orchestrates directory scraping: it classifies the seed
// page, walks pagination, routes each listing page through direct
// extraction or detail-page fan-out, and fills remaining gaps through the
// enrichment collaborator.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/bloom"
	"github.com/AnanthHariharan/directory-scraper/goquery"
)

// Config holds the orchestration knobs.
type Config struct {
	// MaxPages bounds the pagination walk, the seed page included.
	MaxPages int

	// Concurrency bounds the detail fan-out worker pool.
	Concurrency int

	// PageInterval and DetailInterval pace listing-page and detail-page
	// fetches respectively.
	PageInterval   time.Duration
	DetailInterval time.Duration

	// EnrichMissingRatio is the fraction of empty fields above which a
	// record is handed to the enrichment collaborator.
	EnrichMissingRatio float64

	// DetailLinkCoverage is the fraction of candidates that must carry a
	// followable link for a listing page to route through detail fan-out.
	DetailLinkCoverage float64

	// SeenURLCapacity and SeenFPRate size the Bloom filter that
	// deduplicates page URLs during next-link walks.
	SeenURLCapacity uint
	SeenFPRate      float64
}

// DefaultConfig returns the calibrated orchestration configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages:           100,
		Concurrency:        5,
		PageInterval:       time.Second,
		DetailInterval:     500 * time.Millisecond,
		EnrichMissingRatio: 0.3,
		DetailLinkCoverage: 0.5,
		SeenURLCapacity:    10000,
		SeenFPRate:         0.01,
	}
}

// Route names how a listing page's records were produced.
type Route string

const (
	// RouteDirect extracts records from the listing page's containers.
	RouteDirect Route = "direct"

	// RouteDetailFanout fetches each candidate's detail page and extracts
	// from there.
	RouteDetailFanout Route = "detail-fanout"

	// RouteDetail extracts a single record from a seed that is itself a
	// detail page.
	RouteDetail Route = "detail"

	// RouteEmpty marks a page that yielded no candidates or failed to
	// fetch.
	RouteEmpty Route = "empty"
)

// PageTrace records how one page was handled.
type PageTrace struct {
	URL     string
	Route   Route
	Records int
	Err     error
}

// Result holds the accounting for one scrape run.
type Result struct {
	RunID         string
	Kind          dirscrape.PageKind
	Pages         []PageTrace
	FetchFailures int
	Enriched      int
}

// Scraper coordinates the heuristic engine, the fetch collaborator, and
// the optional enrichment collaborator for one directory at a time.
type Scraper struct {
	Fetcher  dirscrape.Fetcher
	Enricher dirscrape.Enricher // nil disables enrichment

	Locator    *goquery.Locator
	Classifier *goquery.Classifier
	Planner    *goquery.Planner
	Extractor  *goquery.Extractor

	Config Config
}

// New returns a Scraper wired to the default heuristic engine and
// configuration.
func New(fetcher dirscrape.Fetcher) *Scraper {
	locator := goquery.NewLocator()
	return &Scraper{
		Fetcher:    fetcher,
		Locator:    locator,
		Classifier: goquery.NewClassifier(locator),
		Planner:    goquery.NewPlanner(),
		Extractor:  goquery.NewExtractor(),
		Config:     DefaultConfig(),
	}
}

// Scrape runs the full pipeline against seedURL and returns the extracted
// records in page order. Only a failure to obtain the seed page is fatal;
// every later failure is recorded in the Result and skipped. The progress
// callback, if provided, receives events as the run proceeds.
func (s *Scraper) Scrape(ctx context.Context, seedURL string, schema dirscrape.FieldSchema, progress ProgressFunc) ([]dirscrape.Record, *Result, error) {
	if err := schema.Validate(); err != nil {
		return nil, nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, seedURL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch seed %s: %w", seedURL, err)
	}
	seed, err := goquery.ParseDocument(html, seedURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse seed %s: %w", seedURL, err)
	}

	result := &Result{RunID: uuid.NewString()}
	result.Kind = s.Classifier.Classify(seed)
	emit(progress, ProgressEvent{Type: ProgressClassified, URL: seedURL, Kind: result.Kind})

	var records []dirscrape.Record
	if result.Kind == dirscrape.PageDetail {
		records = []dirscrape.Record{s.scrapeDetailDocument(ctx, seed, schema, result)}
		result.Pages = append(result.Pages, PageTrace{URL: seedURL, Route: RouteDetail, Records: 1})
	} else {
		records = s.scrapeListing(ctx, seed, html, schema, result, progress)
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, URL: seedURL, Records: len(records)})
	return records, result, nil
}

// scrapeListing walks the pagination sequence and collects records from
// every page. URL-parameter plans are expanded up front; next-link plans
// grow the sequence one hop at a time as each page is re-inspected.
func (s *Scraper) scrapeListing(ctx context.Context, seed *goquery.Document, seedHTML string, schema dirscrape.FieldSchema, result *Result, progress ProgressFunc) []dirscrape.Record {
	plan := s.Planner.Detect(seed)
	pages := s.Planner.Expand(seed.URLString(), plan, s.Config.MaxPages)
	followNext := plan.Mechanism != dirscrape.MechanismURLParam

	seen := bloom.NewFilter(s.Config.SeenURLCapacity, s.Config.SeenFPRate)
	for _, p := range pages {
		seen.Add(p)
	}
	// Identical consecutive content means the next-link chain is looping
	// or the site serves the same page for every cursor; hashing each
	// page's markup lets the walk stop instead of spinning.
	contentSeen := make(map[uint64]bool)

	pacer := NewPacer(s.Config.PageInterval)
	detailPacer := NewPacer(s.Config.DetailInterval)

	var records []dirscrape.Record
	for i := 0; i < len(pages) && i < s.Config.MaxPages; i++ {
		pageURL := pages[i]
		emit(progress, ProgressEvent{Type: ProgressPageStarted, URL: pageURL, Completed: i, Total: len(pages)})

		doc := seed
		html := seedHTML
		if pageURL != seed.URLString() {
			if err := pacer.Wait(ctx); err != nil {
				break
			}
			var err error
			html, err = s.Fetcher.Fetch(ctx, pageURL)
			if err == nil {
				doc, err = goquery.ParseDocument(html, pageURL)
			}
			if err != nil {
				result.FetchFailures++
				result.Pages = append(result.Pages, PageTrace{URL: pageURL, Route: RouteEmpty, Err: err})
				emit(progress, ProgressEvent{Type: ProgressPageFailed, URL: pageURL, Error: err})
				continue
			}
		}

		if followNext {
			h := xxhash.Sum64String(html)
			if contentSeen[h] {
				break
			}
			contentSeen[h] = true
		}

		set := s.Locator.Locate(doc)
		if set.Len() == 0 {
			result.Pages = append(result.Pages, PageTrace{URL: pageURL, Route: RouteEmpty})
			emit(progress, ProgressEvent{Type: ProgressPageCompleted, URL: pageURL, Completed: i + 1, Total: len(pages)})
			if i > 0 {
				break
			}
			continue
		}

		links := goquery.DetailLinks(set.Elements, doc.URL())
		var pageRecords []dirscrape.Record
		route := RouteDirect
		if float64(len(links)) >= s.Config.DetailLinkCoverage*float64(set.Len()) {
			route = RouteDetailFanout
			pageRecords = s.fanOut(ctx, links, schema, detailPacer, result, progress)
		} else {
			for _, el := range set.Elements {
				rec := s.Extractor.ExtractElement(el, schema, doc.URL())
				s.enrich(ctx, goquery.OuterHTML(el), schema, rec, result)
				pageRecords = append(pageRecords, rec)
			}
		}

		records = append(records, pageRecords...)
		result.Pages = append(result.Pages, PageTrace{URL: pageURL, Route: route, Records: len(pageRecords)})
		emit(progress, ProgressEvent{Type: ProgressPageCompleted, URL: pageURL, Completed: i + 1, Total: len(pages), Records: len(pageRecords)})

		// Next-link chains look one hop ahead, so keep extending the
		// sequence from whatever the current page advertises.
		if followNext && i == len(pages)-1 && len(pages) < s.Config.MaxPages {
			if next := s.Planner.Detect(doc).NextURL; next != "" && !seen.TestAndAdd(next) {
				pages = append(pages, next)
			}
		}
	}

	return records
}

// detailOutcome is the per-worker slot for one fan-out link.
type detailOutcome struct {
	record   dirscrape.Record
	enriched bool
	failed   bool
}

// fanOut fetches each detail link through a bounded worker pool and
// extracts one record per page. Outcomes land in an index-keyed slice so
// record order follows listing order regardless of completion order.
// Failed detail pages are dropped, not surfaced as errors.
func (s *Scraper) fanOut(ctx context.Context, links []string, schema dirscrape.FieldSchema, pacer *Pacer, result *Result, progress ProgressFunc) []dirscrape.Record {
	concurrency := s.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]detailOutcome, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, link := range links {
		g.Go(func() error {
			outcomes[i] = s.scrapeDetailLink(gctx, link, schema, pacer, progress)
			return nil
		})
	}
	_ = g.Wait()

	var records []dirscrape.Record
	for _, out := range outcomes {
		if out.failed {
			result.FetchFailures++
			continue
		}
		if out.record == nil {
			continue // canceled before the fetch started
		}
		if out.enriched {
			result.Enriched++
		}
		records = append(records, out.record)
	}
	return records
}

// scrapeDetailLink fetches and extracts a single detail page.
func (s *Scraper) scrapeDetailLink(ctx context.Context, link string, schema dirscrape.FieldSchema, pacer *Pacer, progress ProgressFunc) detailOutcome {
	if err := pacer.Wait(ctx); err != nil {
		return detailOutcome{}
	}

	html, err := s.Fetcher.Fetch(ctx, link)
	if err != nil {
		emit(progress, ProgressEvent{Type: ProgressDetailFailed, URL: link, Error: err})
		return detailOutcome{failed: true}
	}
	doc, err := goquery.ParseDocument(html, link)
	if err != nil {
		emit(progress, ProgressEvent{Type: ProgressDetailFailed, URL: link, Error: err})
		return detailOutcome{failed: true}
	}

	rec := s.Extractor.ExtractDocument(doc, schema)
	setCanonicalURL(rec, schema, link)
	enriched := s.enrichRecord(ctx, doc.HTML(), schema, rec)

	emit(progress, ProgressEvent{Type: ProgressDetailCompleted, URL: link, Records: 1})
	return detailOutcome{record: rec, enriched: enriched}
}

// scrapeDetailDocument handles a seed that is itself a detail page.
func (s *Scraper) scrapeDetailDocument(ctx context.Context, doc *goquery.Document, schema dirscrape.FieldSchema, result *Result) dirscrape.Record {
	rec := s.Extractor.ExtractDocument(doc, schema)
	setCanonicalURL(rec, schema, doc.URLString())
	s.enrich(ctx, doc.HTML(), schema, rec, result)
	return rec
}

// enrich fills a record's gaps through the enrichment collaborator and
// updates the run accounting. Only callers on the sequential page loop
// may use it; workers go through enrichRecord and aggregate after Wait.
func (s *Scraper) enrich(ctx context.Context, fragment string, schema dirscrape.FieldSchema, rec dirscrape.Record, result *Result) {
	if s.enrichRecord(ctx, fragment, schema, rec) {
		result.Enriched++
	}
}

// enrichRecord hands a record's empty fields to the enrichment
// collaborator when too many are empty. Enrichment failures degrade to
// the heuristic result; extracted values are never overwritten.
func (s *Scraper) enrichRecord(ctx context.Context, fragment string, schema dirscrape.FieldSchema, rec dirscrape.Record) bool {
	if s.Enricher == nil || fragment == "" {
		return false
	}
	if rec.MissingRatio(schema) <= s.Config.EnrichMissingRatio {
		return false
	}

	filled, err := s.Enricher.Enrich(ctx, fragment, rec.Missing(schema))
	if err != nil || len(filled) == 0 {
		return false
	}
	rec.MergeMissing(filled)
	return true
}

// setCanonicalURL stamps a detail record with the page it came from. The
// page_url field wins when the schema has both so a url field can keep
// carrying an extracted website link.
func setCanonicalURL(rec dirscrape.Record, schema dirscrape.FieldSchema, pageURL string) {
	switch {
	case schema.Has("page_url"):
		rec["page_url"] = pageURL
	case schema.Has("url"):
		rec["url"] = pageURL
	}
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
