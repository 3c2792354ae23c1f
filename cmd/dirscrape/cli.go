package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Dependencies holds the collaborators and configuration for command
// execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Fetcher  dirscrape.Fetcher
	Enricher dirscrape.Enricher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape   ScrapeCmd   `cmd:"" help:"Scrape records from a directory URL"`
	Classify ClassifyCmd `cmd:"" help:"Report whether a URL is a listing or a detail page"`
	Plan     PlanCmd     `cmd:"" help:"Report the pagination plan detected for a URL"`

	Fetcher string `help:"Fetch strategy" enum:"auto,static,rendered" default:"auto"`
	Scroll  bool   `help:"Scroll rendered pages to trigger lazy loading"`
	Enrich  bool   `help:"Fill extraction gaps with Gemini (requires GEMINI_API_KEY)"`
	Verbose bool   `short:"v" help:"Log fetch and enrichment activity"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string   `arg:"" help:"Directory listing URL"`
	Fields []string `arg:"" optional:"" help:"Fields to extract, as name or name:description"`

	Schema      string `short:"s" type:"existingfile" help:"JSON schema file: array of {name, description} objects"`
	Output      string        `short:"o" help:"Output format" enum:"json,csv" default:"json"`
	MaxPages    int           `default:"100" help:"Pagination page limit"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent detail fetch limit"`
	Delay       time.Duration `help:"Minimum interval between page fetches"`
	Progress    bool          `short:"p" help:"Print per-page progress to stderr"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// PlanCmd is the "plan" subcommand.
type PlanCmd struct {
	URL      string `arg:"" help:"Listing page URL"`
	MaxPages int    `default:"10" help:"Page limit for the expanded sequence"`
}
