package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	spaceRE = regexp.MustCompile(`\s+`)

	emailRE = regexp.MustCompile(`\b[A-Za-z0-9][A-Za-z0-9._%+-]*@[A-Za-z0-9][A-Za-z0-9.-]*\.[A-Za-z]{2,}\b`)

	// US-centric but tolerant phone patterns, tried in order.
	phoneREs = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
		regexp.MustCompile(`\b[0-9]{10}\b`),
		regexp.MustCompile(`\b\+?1?\s*\(?[0-9]{3}\)?\s*[0-9]{3}\s*[0-9]{4}\b`),
	}
)

// cleanText collapses whitespace runs to single spaces and trims the ends.
func cleanText(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

// truncate returns at most n bytes of s.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// findEmail returns the first email address in text, or "".
func findEmail(text string) string {
	if text == "" {
		return ""
	}
	m := emailRE.FindString(text)
	return strings.Trim(m, ".")
}

// findPhone returns the first phone number in text, or "".
func findPhone(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range phoneREs {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// resolveURL normalizes href against base. Returns "" for unparsable hrefs.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// inlineTags are small inline elements whose text counts as direct text of
// their parent.
var inlineTags = map[string]bool{
	"span": true, "b": true, "i": true, "strong": true, "em": true, "small": true,
}

// directText returns the element's own text: its immediate text nodes plus
// the text of small inline children, excluding block descendants. The first
// fragment longer than two characters wins.
func directText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	for child := s.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		var text string
		switch {
		case child.Type == html.TextNode:
			text = cleanText(child.Data)
		case child.Type == html.ElementNode && inlineTags[child.Data]:
			text = cleanText(textOf(child))
		}
		if len(text) > 2 {
			return text
		}
	}
	return ""
}

// textOf returns the concatenated text content of a node subtree.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
