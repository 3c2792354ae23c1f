// Package gemini implements the enrichment collaborator using Google
// Gemini. Record fragments are converted to Markdown before prompting;
// models extract fields from prose far more reliably than from raw
// markup, and the conversion cuts the token bill.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"google.golang.org/genai"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Model is the Gemini model used for enrichment calls and token counting.
const Model = "gemini-2.5-flash"

// MaxFragmentTokens bounds how much converted content goes into a single
// enrichment prompt.
const MaxFragmentTokens = 32768

// MaxFragmentChars is the fallback bound when no token counter is
// available.
const MaxFragmentChars = 120000

// Ensure Enricher implements dirscrape.Enricher at compile time.
var _ dirscrape.Enricher = (*Enricher)(nil)

// Counter counts prompt tokens. *TokenCounter implements it.
type Counter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Enricher fills missing record fields by prompting Gemini with a
// Markdown rendition of the record's HTML fragment.
type Enricher struct {
	client  *genai.Client
	conv    *converter.Converter
	counter Counter
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithTokenCounter makes the Enricher budget fragments by token count
// instead of the character-length fallback.
func WithTokenCounter(c Counter) EnricherOption {
	return func(e *Enricher) {
		e.counter = c
	}
}

// NewEnricher creates a new Enricher.
func NewEnricher(client *genai.Client, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		client: client,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich extracts the given fields from an HTML fragment. The returned
// map carries only fields the model actually found; absent fields are
// omitted rather than emptied.
func (e *Enricher) Enrich(ctx context.Context, fragment string, fields dirscrape.FieldSchema) (map[string]string, error) {
	if fragment == "" {
		return nil, dirscrape.Errorf(dirscrape.EINVALID, "fragment required")
	}
	if len(fields) == 0 {
		return nil, dirscrape.Errorf(dirscrape.EINVALID, "at least one field required")
	}

	markdown, err := e.conv.ConvertString(fragment)
	if err != nil || strings.TrimSpace(markdown) == "" {
		// Badly formed fragments still carry extractable text.
		markdown = fragment
	}
	markdown = TruncateToBudget(ctx, markdown, e.counter)

	prompt := BuildUserPrompt(markdown, fields)

	result, err := e.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, dirscrape.Errorf(dirscrape.EINTERNAL, "gemini returned nil result")
	}

	return ParseFields(result.Text(), fields)
}

// TruncateToBudget trims markdown to the enrichment prompt budget, by
// tokens when counter is non-nil and by characters otherwise. A counting
// failure leaves the input unchanged.
func TruncateToBudget(ctx context.Context, markdown string, counter Counter) string {
	if counter == nil {
		if len(markdown) > MaxFragmentChars {
			return markdown[:MaxFragmentChars]
		}
		return markdown
	}

	tokens, err := counter.CountTokens(ctx, markdown)
	if err != nil || tokens <= MaxFragmentTokens {
		return markdown
	}
	keep := len(markdown) * MaxFragmentTokens / tokens
	return markdown[:keep]
}

// BuildConfig returns the GenerateContentConfig for enrichment calls.
// The response is constrained to JSON so parsing never depends on prose
// formatting.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract structured contact and profile data from web page content. Use only information present in the provided content. Never guess or fabricate values.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the prompt containing the page content and the
// fields to extract.
func BuildUserPrompt(markdown string, fields dirscrape.FieldSchema) string {
	var sb strings.Builder
	sb.WriteString("<content>\n")
	sb.WriteString(markdown)
	sb.WriteString("\n</content>\n\n")
	sb.WriteString("Extract the following fields from the content:\n")
	for _, f := range fields {
		if f.Description != "" {
			fmt.Fprintf(&sb, "- %s: %s\n", f.Name, f.Description)
		} else {
			fmt.Fprintf(&sb, "- %s\n", f.Name)
		}
	}
	sb.WriteString("\nRespond with a single JSON object using exactly these keys. Use null for any field not present in the content.")
	return sb.String()
}

// ParseFields parses a model response into field values. Only requested
// fields are kept; nulls and empty strings are dropped.
func ParseFields(response string, fields dirscrape.FieldSchema) (map[string]string, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	var raw map[string]any
	if err := json.Unmarshal([]byte(response), &raw); err != nil {
		return nil, dirscrape.Errorf(dirscrape.EINTERNAL, "unparsable enrichment response: %v", err)
	}

	out := make(map[string]string)
	for _, f := range fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = strings.TrimSpace(t)
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			s = fmt.Sprintf("%t", t)
		default:
			continue
		}
		if s != "" {
			out[f.Name] = s
		}
	}
	return out, nil
}
