// Package goquery implements the heuristic structure-detection and
// extraction engine on top of github.com/PuerkitoBio/goquery. It locates
// record containers on listing pages, classifies listing vs detail pages,
// detects pagination mechanisms, and maps DOM subtrees onto field schemas.
//
// All heuristic constants (pattern tables, keyword sets, score thresholds)
// live in exported config structs with Default constructors so they can be
// tuned without touching control flow.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Document is a parsed page tree plus its canonical URL. Documents are
// immutable once parsed and safe for concurrent reads.
type Document struct {
	url *url.URL
	doc *goquery.Document
}

// ParseDocument parses HTML fetched from rawURL into a Document.
func ParseDocument(html string, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, dirscrape.Errorf(dirscrape.EINVALID, "invalid document URL %q: %v", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dirscrape.Errorf(dirscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	return &Document{url: u, doc: doc}, nil
}

// URL returns the document's canonical URL.
func (d *Document) URL() *url.URL {
	return d.url
}

// URLString returns the document's canonical URL as a string.
func (d *Document) URLString() string {
	return d.url.String()
}

// Root returns the root selection of the parsed tree.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Find runs a CSS selector against the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Text returns the document's whitespace-normalized visible text.
func (d *Document) Text() string {
	return cleanText(d.doc.Text())
}

// HTML returns the document's serialized markup. Used when handing a whole
// detail document to the enrichment collaborator.
func (d *Document) HTML() string {
	html, err := d.doc.Html()
	if err != nil {
		return ""
	}
	return html
}

// OuterHTML returns the serialized markup of a selection, including the
// element itself. Used when handing a record container to the enrichment
// collaborator.
func OuterHTML(s *goquery.Selection) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return html
}
