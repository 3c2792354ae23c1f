package goquery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LocatorPass is one generation pass: a tag, optionally restricted to a
// class pattern. Passes run in priority order; ties between equally-scored
// candidate sets resolve to the earlier pass.
type LocatorPass struct {
	Tag   string
	Class *regexp.Regexp // nil means bare tag
}

// LocatorConfig holds the tunable heuristics for record-container
// detection. The zero value is not usable; start from DefaultLocatorConfig.
type LocatorConfig struct {
	// Passes are the generation passes, most specific first.
	Passes []LocatorPass

	// MinGroupSize is the minimum member count for a qualifying set.
	MinGroupSize int

	// ScoreCutoff is the weighted score below which the
	// structural-similarity fallback is consulted.
	ScoreCutoff float64

	// SampleSize caps how many members of a set are scored.
	SampleSize int

	// CountWeightCap caps the member count in the pass weighting curve:
	// weighted = score * min(count, cap) / cap.
	CountWeightCap int

	// SimilarityCountCap and SimilarityWeightDivisor shape the fallback
	// weighting curve: weighted = score * min(count, cap) / divisor.
	SimilarityCountCap      int
	SimilarityWeightDivisor float64

	// SimilarityMinTextLen drops near-empty elements from the fallback.
	SimilarityMinTextLen int

	// NavClass marks elements whose own or ancestor class suggests
	// navigation chrome.
	NavClass *regexp.Regexp

	// NavShortTextLen is the text length under which an element with
	// anchor children and no block children counts as navigation.
	NavShortTextLen int

	// NavWords are exact (case-insensitive) texts of common navigation
	// entries.
	NavWords []string

	// HeaderWords identify table header rows: a row containing at least
	// two of them, and no contact links, is a header.
	HeaderWords []string
}

// DefaultLocatorConfig returns the calibrated locator configuration.
// The numeric constants are empirical; treat them as knobs, not truths.
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		Passes: []LocatorPass{
			{Tag: "div", Class: regexp.MustCompile(`(?i)(person|member|profile|staff|team|faculty|employee)`)},
			{Tag: "li", Class: regexp.MustCompile(`(?i)(person|member|profile|staff)`)},
			{Tag: "div", Class: regexp.MustCompile(`(?i)(card|item|entry|result|listing|row)`)},
			{Tag: "li", Class: regexp.MustCompile(`(?i)(card|item|entry|result|listing)`)},
			{Tag: "tr"},
			{Tag: "li"},
			{Tag: "article"},
		},
		MinGroupSize:            3,
		ScoreCutoff:             10,
		SampleSize:              5,
		CountWeightCap:          20,
		SimilarityCountCap:      50,
		SimilarityWeightDivisor: 10,
		SimilarityMinTextLen:    10,
		NavClass:                regexp.MustCompile(`(?i)(nav|menu|breadcrumb|paginat|sidebar)`),
		NavShortTextLen:         40,
		NavWords: []string{
			"home", "about", "about us", "contact", "contact us", "services",
			"products", "blog", "news", "search", "login", "log in", "sign in",
			"sign up", "register", "menu", "more",
		},
		HeaderWords: []string{
			"name", "email", "phone", "title", "position", "department",
			"role", "contact",
		},
	}
}

// CandidateSet is a homogeneous group of elements hypothesized to each
// represent one record, in document order.
type CandidateSet struct {
	Elements []*goquery.Selection
	Score    float64 // average member score over the sample
	Weighted float64 // Score adjusted by the set's size curve
}

// Len returns the member count.
func (cs *CandidateSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Elements)
}

// Locator finds the set of DOM nodes representing individual records on a
// listing page.
type Locator struct {
	Config LocatorConfig
}

// NewLocator returns a Locator with the default configuration.
func NewLocator() *Locator {
	return &Locator{Config: DefaultLocatorConfig()}
}

// Locate returns the best candidate set on the document, or nil when no
// listing structure is found. Repeated calls on the same document yield
// identical sets and scores.
func (l *Locator) Locate(doc *Document) *CandidateSet {
	var best *CandidateSet

	for _, pass := range l.Config.Passes {
		for _, group := range l.generate(doc, pass) {
			members := l.filterNavigation(group)
			if len(members) < l.Config.MinGroupSize {
				continue
			}
			cs := l.scoreSet(members, l.Config.CountWeightCap, float64(l.Config.CountWeightCap))
			if best == nil || cs.Weighted > best.Weighted {
				best = cs
			}
		}
	}

	if best == nil || best.Weighted < l.Config.ScoreCutoff {
		if sim := l.locateBySimilarity(doc); sim != nil && (best == nil || sim.Weighted > best.Weighted) {
			best = sim
		}
	}

	if best == nil {
		return nil
	}
	best.Elements = l.dropHeaderRows(best.Elements)
	return best
}

// generate yields the raw element groups for one pass. Bare tr rows are
// grouped per enclosing table; every other pass pools matches document-wide.
func (l *Locator) generate(doc *Document, pass LocatorPass) [][]*goquery.Selection {
	if pass.Tag == "tr" && pass.Class == nil {
		return l.rowsPerTable(doc)
	}

	matches := doc.Find(pass.Tag)
	if pass.Class != nil {
		matches = matches.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return classMatches(s, pass.Class)
		})
	}
	group := splitSelection(matches)
	if len(group) == 0 {
		return nil
	}
	return [][]*goquery.Selection{group}
}

// rowsPerTable evaluates each table as its own candidate set rather than
// pooling rows across the document.
func (l *Locator) rowsPerTable(doc *Document) [][]*goquery.Selection {
	var groups [][]*goquery.Selection
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		tableNode := table.Nodes[0]
		rows := table.Find("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
			closest := row.Closest("table")
			return closest.Length() > 0 && closest.Nodes[0] == tableNode
		})
		if group := splitSelection(rows); len(group) > 0 {
			groups = append(groups, group)
		}
	})
	return groups
}

// filterNavigation drops elements living inside page chrome or looking like
// navigation themselves.
func (l *Locator) filterNavigation(group []*goquery.Selection) []*goquery.Selection {
	kept := group[:0:0]
	for _, s := range group {
		if s.ParentsFiltered("nav, footer, header").Length() > 0 {
			continue
		}
		if classMatches(s, l.Config.NavClass) || ancestorClassMatches(s, l.Config.NavClass) {
			continue
		}
		if l.looksLikeNavigation(s) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// looksLikeNavigation flags elements that read like menu entries: short
// anchor-only content, or text that is a common navigation word.
func (l *Locator) looksLikeNavigation(s *goquery.Selection) bool {
	text := cleanText(s.Text())

	if len(text) < l.Config.NavShortTextLen &&
		s.Find("a").Length() > 0 &&
		s.Find("div, p, ul, ol, table, section").Length() == 0 {
		return true
	}

	lower := strings.ToLower(text)
	for _, word := range l.Config.NavWords {
		if lower == word {
			return true
		}
	}
	return false
}

// scoreSet samples the first SampleSize members, averages their scores, and
// applies the size weighting curve: score * min(count, countCap) / divisor.
func (l *Locator) scoreSet(members []*goquery.Selection, countCap int, divisor float64) *CandidateSet {
	sample := len(members)
	if sample > l.Config.SampleSize {
		sample = l.Config.SampleSize
	}

	var total float64
	for _, s := range members[:sample] {
		total += scoreElement(s)
	}
	score := total / float64(sample)

	count := len(members)
	if count > countCap {
		count = countCap
	}

	return &CandidateSet{
		Elements: members,
		Score:    score,
		Weighted: score * float64(count) / divisor,
	}
}

// scoreElement rates one element's likelihood of being a record container.
func scoreElement(s *goquery.Selection) float64 {
	var score float64

	if s.Find("a[href^='mailto:']").Length() > 0 {
		score += 15
	}
	if s.Find("a[href^='tel:']").Length() > 0 {
		score += 15
	}

	if links := float64(s.Find("a[href]").Length()) * 3; links > 15 {
		score += 15
	} else {
		score += links
	}

	switch n := len(cleanText(s.Text())); {
	case n > 20 && n < 1000:
		score += 10
	case n >= 1000:
		// Over-broad containers get half credit.
		score += 5
	}

	if s.Find("img").Length() > 0 {
		score += 5
	}

	if kids := s.Children().Length(); kids >= 2 && kids <= 30 {
		score += 10
	}

	if tag := goquery.NodeName(s); tag == "li" || tag == "tr" {
		score += 5
	}

	return score
}

// locateBySimilarity groups elements by structural signature (tag plus
// sorted immediate-child tags) and scores each group of three or more with
// the fallback weighting curve.
func (l *Locator) locateBySimilarity(doc *Document) *CandidateSet {
	type group struct {
		members []*goquery.Selection
	}
	index := make(map[string]int)
	var groups []*group

	doc.Find("div, li, article, section, tr").Each(func(_ int, s *goquery.Selection) {
		if len(cleanText(s.Text())) < l.Config.SimilarityMinTextLen {
			return
		}
		sig := structureSignature(s)
		i, ok := index[sig]
		if !ok {
			i = len(groups)
			index[sig] = i
			groups = append(groups, &group{})
		}
		groups[i].members = append(groups[i].members, s)
	})

	var best *CandidateSet
	for _, g := range groups {
		if len(g.members) < l.Config.MinGroupSize {
			continue
		}
		cs := l.scoreSet(g.members, l.Config.SimilarityCountCap, l.Config.SimilarityWeightDivisor)
		if best == nil || cs.Weighted > best.Weighted {
			best = cs
		}
	}
	return best
}

// structureSignature derives a grouping key from an element's tag and the
// sorted tags of its immediate children.
func structureSignature(s *goquery.Selection) string {
	var childTags []string
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			childTags = append(childTags, c.Data)
		}
	}
	sort.Strings(childTags)
	return goquery.NodeName(s) + "|" + strings.Join(childTags, ",")
}

// dropHeaderRows strips leading table header rows from a winning tr set.
// Up to the first three rows are inspected; the set resumes at the first
// row that is not a header.
func (l *Locator) dropHeaderRows(elements []*goquery.Selection) []*goquery.Selection {
	if len(elements) == 0 || goquery.NodeName(elements[0]) != "tr" {
		return elements
	}

	limit := 3
	if limit > len(elements) {
		limit = len(elements)
	}
	for i := 0; i < limit; i++ {
		if !l.isHeaderRow(elements[i]) {
			return elements[i:]
		}
	}
	return elements[limit:]
}

// isHeaderRow reports whether a row is a column header: it has th cells, or
// its text contains two or more header words and no contact links.
func (l *Locator) isHeaderRow(row *goquery.Selection) bool {
	if row.Find("th").Length() > 0 {
		return true
	}

	text := strings.ToLower(cleanText(row.Text()))
	hits := 0
	for _, word := range l.Config.HeaderWords {
		if strings.Contains(text, word) {
			hits++
		}
	}
	return hits >= 2 && row.Find("a[href^='mailto:'], a[href^='tel:']").Length() == 0
}

// splitSelection expands a selection into per-node selections, preserving
// document order.
func splitSelection(s *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	s.Each(func(_ int, el *goquery.Selection) {
		out = append(out, el)
	})
	return out
}
