package goquery

import (
	"regexp"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// ClassifierConfig holds the tunable signals for listing-vs-detail
// classification.
type ClassifierConfig struct {
	// MinListingCandidates is the candidate count at which a page is a
	// listing regardless of other signals.
	MinListingCandidates int

	// DetailClass marks descendants whose class suggests a single-record
	// page.
	DetailClass *regexp.Regexp

	// DetailTextLen is the visible-text length beyond which a page with
	// no listing structure counts as a detail page.
	DetailTextLen int
}

// DefaultClassifierConfig returns the calibrated classifier configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MinListingCandidates: 3,
		DetailClass:          regexp.MustCompile(`(?i)(profile|bio|about|detail)`),
		DetailTextLen:        1000,
	}
}

// Classifier decides whether a page enumerates many records or describes
// one, using the Locator as its primary signal.
type Classifier struct {
	Locator *Locator
	Config  ClassifierConfig
}

// NewClassifier returns a Classifier using the given locator and the
// default configuration.
func NewClassifier(locator *Locator) *Classifier {
	return &Classifier{Locator: locator, Config: DefaultClassifierConfig()}
}

// Classify returns the page kind. Pages with enough record candidates are
// listings. Otherwise any detail signal (profile-style class, a top-level
// heading, or a long body) classifies detail. The default is listing: the
// engine prefers attempting extraction over giving up.
func (c *Classifier) Classify(doc *Document) dirscrape.PageKind {
	if set := c.Locator.Locate(doc); set.Len() >= c.Config.MinListingCandidates {
		return dirscrape.PageListing
	}

	if findByClass(doc.Root(), "div, section, article, main", c.Config.DetailClass) != nil {
		return dirscrape.PageDetail
	}
	if doc.Find("h1").Length() > 0 {
		return dirscrape.PageDetail
	}
	if len(doc.Text()) > c.Config.DetailTextLen {
		return dirscrape.PageDetail
	}

	return dirscrape.PageListing
}
