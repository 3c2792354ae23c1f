package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// classMatches reports whether the element's own class attribute matches re.
func classMatches(s *goquery.Selection, re *regexp.Regexp) bool {
	return re.MatchString(s.AttrOr("class", ""))
}

// ancestorClassMatches reports whether any ancestor's class attribute
// matches re.
func ancestorClassMatches(s *goquery.Selection, re *regexp.Regexp) bool {
	matched := false
	s.Parents().EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if classMatches(p, re) {
			matched = true
			return false
		}
		return true
	})
	return matched
}

// findByClass returns the first descendant among tags whose class attribute
// matches re, or nil if none exists.
func findByClass(s *goquery.Selection, tags string, re *regexp.Regexp) *goquery.Selection {
	found := s.Find(tags).FilterFunction(func(_ int, el *goquery.Selection) bool {
		return classMatches(el, re)
	}).First()
	if found.Length() == 0 {
		return nil
	}
	return found
}

// findByAttrMatch returns the first descendant among tags whose attr value
// matches re, or nil if none exists.
func findByAttrMatch(s *goquery.Selection, tags, attr string, re *regexp.Regexp) *goquery.Selection {
	found := s.Find(tags).FilterFunction(func(_ int, el *goquery.Selection) bool {
		return re.MatchString(el.AttrOr(attr, ""))
	}).First()
	if found.Length() == 0 {
		return nil
	}
	return found
}

// attrFirst returns the first non-empty value among the element's own
// attributes named in attrs.
func attrFirst(s *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if v := cleanText(s.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

// filterByText returns the subset of a selection whose cleaned text
// matches re.
func filterByText(s *goquery.Selection, re *regexp.Regexp) *goquery.Selection {
	return s.FilterFunction(func(_ int, el *goquery.Selection) bool {
		return re.MatchString(cleanText(el.Text()))
	})
}
