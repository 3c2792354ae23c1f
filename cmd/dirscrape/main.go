// Command dirscrape extracts structured records from directory-style web
// pages: staff listings, member rosters, vendor tables. Point it at a
// listing URL, name the fields you want, and it walks pagination and
// detail pages heuristically.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/gemini"
	scrapehttp "github.com/AnanthHariharan/directory-scraper/http"
	"github.com/AnanthHariharan/directory-scraper/rod"
	logslog "github.com/AnanthHariharan/directory-scraper/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dirscrape"),
		kong.Description("Extract structured records from directory-style web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dirscrape --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel(cli.Verbose)}))
	deps.Logger = logger

	fetcher, err := buildFetcher(cli)
	if err != nil {
		return err
	}
	defer fetcher.Close()
	if cli.Verbose {
		fetcher = logslog.NewFetcher(fetcher, logger)
	}
	deps.Fetcher = fetcher

	if cli.Enrich {
		enricher, err := buildEnricher(ctx, stderr)
		if err != nil {
			return err
		}
		if cli.Verbose {
			enricher = logslog.NewEnricher(enricher, logger)
		}
		deps.Enricher = enricher
	}

	return kongCtx.Run(deps)
}

// buildFetcher wires the fetch strategy selected on the command line.
// Auto mode only launches a browser when a page turns out to need one.
func buildFetcher(cli *CLI) (dirscrape.Fetcher, error) {
	newRendered := func() (dirscrape.Fetcher, error) {
		var opts []rod.FetcherOption
		if cli.Scroll {
			opts = append(opts, rod.WithScrollAssist())
		}
		return rod.NewFetcher(opts...)
	}

	switch cli.Fetcher {
	case "static":
		return scrapehttp.NewFetcher(), nil
	case "rendered":
		return newRendered()
	default:
		return scrapehttp.NewAutoFetcher(scrapehttp.NewFetcher(), newRendered), nil
	}
}

// buildEnricher wires the Gemini enrichment collaborator.
func buildEnricher(ctx context.Context, stderr io.Writer) (dirscrape.Enricher, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("enrichment requires the GEMINI_API_KEY environment variable")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	// Without a local tokenizer the enricher falls back to the character
	// budget, which is still safe, just coarser.
	var opts []gemini.EnricherOption
	if counter, err := gemini.NewTokenCounter(gemini.Model); err == nil {
		opts = append(opts, gemini.WithTokenCounter(counter))
	}

	return gemini.NewEnricher(client, opts...), nil
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
