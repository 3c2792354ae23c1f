package main

import (
	"fmt"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/goquery"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	doc, err := fetchDocument(deps, c.URL)
	if err != nil {
		return err
	}

	locator := goquery.NewLocator()
	kind := goquery.NewClassifier(locator).Classify(doc)

	fmt.Fprintln(deps.Stdout, kind)
	if kind == dirscrape.PageListing {
		fmt.Fprintf(deps.Stdout, "candidates: %d\n", locator.Locate(doc).Len())
	}
	return nil
}

// fetchDocument fetches and parses one page through the wired fetcher.
func fetchDocument(deps *Dependencies, url string) (*goquery.Document, error) {
	html, err := deps.Fetcher.Fetch(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dirscrape.ErrorMessage(err))
		return nil, err
	}
	return goquery.ParseDocument(html, url)
}
