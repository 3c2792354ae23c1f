package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// ExtractorConfig holds the tunable field-extraction heuristics.
type ExtractorConfig struct {
	// Header-to-field match scores for table-aware extraction. A mapping
	// is accepted when its score exceeds HeaderAcceptScore.
	HeaderExactScore    int
	HeaderContainsScore int
	FieldContainsScore  int
	SynonymScore        int
	HeaderAcceptScore   int

	// Synonyms override the textual scores: a header containing any left
	// term paired with a field containing any right term scores
	// SynonymScore.
	Synonyms []SynonymPair

	// NameFields are field names handled by the name/title extractor.
	NameFields []string

	// StopWords are excluded from generic keyword derivation.
	StopWords []string

	// MinKeywordLen is the minimum significant keyword length.
	MinKeywordLen int

	// Text-length bounds and truncation limits.
	NameMinLen      int // exclusive
	NameMaxLen      int // exclusive
	BioMinLen       int
	BioFallbackLen  int
	BioTruncate     int
	GenericTruncate int

	// MainContentClass identifies a detail document's content region when
	// no main/article element exists.
	MainContentClass *regexp.Regexp
}

// SynonymPair couples header terms with field-name terms that should match
// even when neither string contains the other.
type SynonymPair struct {
	Header []string
	Field  []string
}

// DefaultExtractorConfig returns the calibrated extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		HeaderExactScore:    100,
		HeaderContainsScore: 80,
		FieldContainsScore:  60,
		SynonymScore:        90,
		HeaderAcceptScore:   50,
		Synonyms: []SynonymPair{
			{Header: []string{"email"}, Field: []string{"email"}},
			{Header: []string{"phone"}, Field: []string{"phone"}},
			{Header: []string{"address", "location"}, Field: []string{"address", "location"}},
			{Header: []string{"link", "website"}, Field: []string{"url", "website"}},
			{Header: []string{"type", "category"}, Field: []string{"type", "category"}},
		},
		NameFields:       []string{"name", "title", "position", "role"},
		StopWords:        []string{"the", "and", "for", "that", "with", "from", "extract", "get", "find"},
		MinKeywordLen:    3,
		NameMinLen:       2,
		NameMaxLen:       200,
		BioMinLen:        50,
		BioFallbackLen:   100,
		BioTruncate:      1000,
		GenericTruncate:  500,
		MainContentClass: regexp.MustCompile(`(?i)(content|main|profile|detail)`),
	}
}

// Extractor maps one DOM container, or one whole detail document, onto a
// field schema using layered fallback heuristics.
type Extractor struct {
	Config ExtractorConfig
}

// NewExtractor returns an Extractor with the default configuration.
func NewExtractor() *Extractor {
	return &Extractor{Config: DefaultExtractorConfig()}
}

// ExtractElement extracts a record from a single container. Table rows get
// table-aware column alignment; everything else runs the per-field
// extractor over the whole container. The returned record carries exactly
// the schema's key set.
func (e *Extractor) ExtractElement(s *goquery.Selection, schema dirscrape.FieldSchema, base *url.URL) dirscrape.Record {
	if goquery.NodeName(s) == "tr" {
		return e.extractRow(s, schema, base)
	}

	rec := dirscrape.NewRecord(schema)
	for _, f := range schema {
		rec[f.Name] = e.extractField(s, f, base)
	}
	return rec
}

// ExtractDocument extracts a record from a detail document's main-content
// region: the first of main, article, a content-style class, body, or the
// whole tree.
func (e *Extractor) ExtractDocument(doc *Document, schema dirscrape.FieldSchema) dirscrape.Record {
	region := e.mainContent(doc)

	rec := dirscrape.NewRecord(schema)
	for _, f := range schema {
		rec[f.Name] = e.extractField(region, f, doc.URL())
	}
	return rec
}

// mainContent picks the detail document's content region.
func (e *Extractor) mainContent(doc *Document) *goquery.Selection {
	if main := doc.Find("main").First(); main.Length() > 0 {
		return main
	}
	if article := doc.Find("article").First(); article.Length() > 0 {
		return article
	}
	if region := findByClass(doc.Root(), "div, section", e.Config.MainContentClass); region != nil {
		return region
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Root()
}

// fieldRule pairs a field-name predicate with a type-specific extractor.
// Rules are evaluated first-match in declaration order.
type fieldRule struct {
	match   func(name string) bool
	extract func(s *goquery.Selection, f dirscrape.Field, base *url.URL) string
}

// rules returns the ordered dispatch table. Specific content types come
// before the generic keyword extractor.
func (e *Extractor) rules() []fieldRule {
	contains := func(subs ...string) func(string) bool {
		return func(name string) bool {
			lower := strings.ToLower(name)
			for _, sub := range subs {
				if strings.Contains(lower, sub) {
					return true
				}
			}
			return false
		}
	}
	exact := func(names []string) func(string) bool {
		return func(name string) bool {
			lower := strings.ToLower(name)
			for _, n := range names {
				if lower == n {
					return true
				}
			}
			return false
		}
	}

	return []fieldRule{
		{contains("email"), func(s *goquery.Selection, _ dirscrape.Field, _ *url.URL) string { return e.extractEmail(s) }},
		{contains("phone"), func(s *goquery.Selection, _ dirscrape.Field, _ *url.URL) string { return e.extractPhone(s) }},
		{contains("url", "link"), func(s *goquery.Selection, _ dirscrape.Field, base *url.URL) string { return e.extractURL(s, base) }},
		{contains("image", "photo"), func(s *goquery.Selection, _ dirscrape.Field, base *url.URL) string { return e.extractImage(s, base) }},
		{exact(e.Config.NameFields), func(s *goquery.Selection, _ dirscrape.Field, _ *url.URL) string { return e.extractName(s) }},
		{contains("bio", "description"), func(s *goquery.Selection, _ dirscrape.Field, _ *url.URL) string { return e.extractBio(s) }},
		{contains("address", "location"), func(s *goquery.Selection, _ dirscrape.Field, _ *url.URL) string { return e.extractAddress(s) }},
		{func(string) bool { return true }, e.extractGeneric},
	}
}

// extractField runs the first matching rule for the field.
func (e *Extractor) extractField(s *goquery.Selection, f dirscrape.Field, base *url.URL) string {
	for _, rule := range e.rules() {
		if rule.match(f.Name) {
			return rule.extract(s, f, base)
		}
	}
	return ""
}

var wordRE = regexp.MustCompile(`\b\w+\b`)

// keywords derives significant keywords from a field's description and
// name: words of at least MinKeywordLen characters that are not stop
// words, deduplicated in first-seen order.
func (e *Extractor) keywords(f dirscrape.Field) []string {
	stop := make(map[string]bool, len(e.Config.StopWords))
	for _, w := range e.Config.StopWords {
		stop[w] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, w := range wordRE.FindAllString(strings.ToLower(f.Description+" "+f.Name), -1) {
		if len(w) < e.Config.MinKeywordLen || stop[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// extractGeneric looks for elements, attributes, or labels matching the
// field's keywords, then falls back to semantic HTML, then to truncated
// full text.
func (e *Extractor) extractGeneric(s *goquery.Selection, f dirscrape.Field, _ *url.URL) string {
	fullText := s.Text()

	for _, kw := range e.keywords(f) {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(kw))
		if err != nil {
			continue
		}

		if el := findByClass(s, "div, span, p, td, dd, li", re); el != nil {
			if text := cleanText(el.Text()); len(text) > 2 {
				return text
			}
		}
		if el := findByAttrMatch(s, "div, span, p, td, dd, li", "id", re); el != nil {
			if text := cleanText(el.Text()); len(text) > 2 {
				return text
			}
		}
		if v := attrFirst(s, "data-"+kw); v != "" {
			return v
		}

		labelRE, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(kw) + `\s*[:\-]\s*([^\n<]+)`)
		if err != nil {
			continue
		}
		if m := labelRE.FindStringSubmatch(fullText); m != nil {
			if v := cleanText(m[1]); v != "" {
				return v
			}
		}
	}

	// Common semantic containers before the raw-text fallback.
	for _, tag := range []string{"dd", "blockquote", "p", "span"} {
		if el := s.Find(tag).First(); el.Length() > 0 {
			if text := cleanText(el.Text()); len(text) > 2 {
				return text
			}
		}
	}

	if text := cleanText(fullText); len(text) > 2 {
		return truncate(text, e.Config.GenericTruncate)
	}
	return ""
}
