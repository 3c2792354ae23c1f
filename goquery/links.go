package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// followable reports whether an href leads to a fetchable page: not a
// mail/tel/javascript link and not a bare fragment.
func followable(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" {
		return false
	}
	lower := strings.ToLower(href)
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "#"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

// DetailLinks resolves each element's first followable link against base
// and returns the distinct targets in first-seen order. Elements with only
// mail/tel/script/fragment links contribute nothing. The ratio of returned
// links to elements drives the orchestrator's detail fan-out routing.
func DetailLinks(elements []*goquery.Selection, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	for _, el := range elements {
		var href string
		el.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if h := a.AttrOr("href", ""); followable(h) {
				href = h
				return false
			}
			return true
		})
		if href == "" {
			continue
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true
		links = append(links, resolved)
	}
	return links
}
