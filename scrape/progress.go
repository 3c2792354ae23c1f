package scrape

import dirscrape "github.com/AnanthHariharan/directory-scraper"

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	URL       string
	Kind      dirscrape.PageKind
	Completed int
	Total     int
	Records   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressClassified ProgressType = iota
	ProgressPageStarted
	ProgressPageCompleted
	ProgressPageFailed
	ProgressDetailCompleted
	ProgressDetailFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress. Detail
// events are delivered from worker goroutines, so implementations must
// be safe for concurrent use.
type ProgressFunc func(event ProgressEvent)
