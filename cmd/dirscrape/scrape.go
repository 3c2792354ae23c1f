package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	schema, err := c.schema()
	if err != nil {
		return err
	}

	scraper := scrape.New(deps.Fetcher)
	scraper.Enricher = deps.Enricher
	if c.MaxPages > 0 {
		scraper.Config.MaxPages = c.MaxPages
	}
	if c.Concurrency > 0 {
		scraper.Config.Concurrency = c.Concurrency
	}
	if c.Delay > 0 {
		scraper.Config.PageInterval = c.Delay
		scraper.Config.DetailInterval = c.Delay
	}

	var progress scrape.ProgressFunc
	if c.Progress {
		progress = func(event scrape.ProgressEvent) {
			switch event.Type {
			case scrape.ProgressClassified:
				fmt.Fprintf(deps.Stderr, "classified %s as %s\n", event.URL, event.Kind)
			case scrape.ProgressPageCompleted:
				fmt.Fprintf(deps.Stderr, "page %d/%d: %d records (%s)\n", event.Completed, event.Total, event.Records, event.URL)
			case scrape.ProgressPageFailed:
				fmt.Fprintf(deps.Stderr, "page failed: %s: %s\n", event.URL, event.Error)
			case scrape.ProgressDetailFailed:
				fmt.Fprintf(deps.Stderr, "detail failed: %s: %s\n", event.URL, event.Error)
			}
		}
	}

	records, result, err := scraper.Scrape(deps.Ctx, c.URL, schema, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dirscrape.ErrorMessage(err))
		return err
	}

	if c.Output == "csv" {
		if err := writeCSV(deps.Stdout, schema, records); err != nil {
			return err
		}
	} else {
		if err := writeJSON(deps.Stdout, records); err != nil {
			return err
		}
	}

	fmt.Fprintf(deps.Stderr, "run %s: %d records from %d pages, %d fetch failures, %d enriched\n",
		result.RunID, len(records), len(result.Pages), result.FetchFailures, result.Enriched)
	return nil
}

// schema resolves the field schema from the --schema file when given, and
// from the positional field arguments otherwise.
func (c *ScrapeCmd) schema() (dirscrape.FieldSchema, error) {
	if c.Schema == "" {
		return parseFields(c.Fields)
	}
	if len(c.Fields) > 0 {
		return nil, dirscrape.Errorf(dirscrape.EINVALID, "pass either field arguments or --schema, not both")
	}
	data, err := os.ReadFile(c.Schema)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	var schema dirscrape.FieldSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, dirscrape.Errorf(dirscrape.EINVALID, "unparsable schema file %s: %v", c.Schema, err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// parseFields turns "name" or "name:description" arguments into a schema.
func parseFields(args []string) (dirscrape.FieldSchema, error) {
	var schema dirscrape.FieldSchema
	for _, arg := range args {
		name, description, _ := strings.Cut(arg, ":")
		schema = append(schema, dirscrape.Field{
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(description),
		})
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

func writeJSON(w io.Writer, records []dirscrape.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeCSV(w io.Writer, schema dirscrape.FieldSchema, records []dirscrape.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(schema.Names()); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, len(schema))
		for i, f := range schema {
			row[i] = rec[f.Name]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
