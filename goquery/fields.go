package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Class patterns for the per-type extractors. These identify descendants
// that carry a specific kind of value.
var (
	emailClassRE   = regexp.MustCompile(`(?i)(email|mail|contact)`)
	phoneClassRE   = regexp.MustCompile(`(?i)(phone|tel|telephone|contact|call|mobile|cell)`)
	nameClassRE    = regexp.MustCompile(`(?i)(name|title|heading|label|header)`)
	bioClassRE     = regexp.MustCompile(`(?i)(bio|description|about|summary|content)`)
	addressClassRE = regexp.MustCompile(`(?i)(location|address|city|state|region|area|locale|place|office)`)
	itempropRE     = regexp.MustCompile(`(?i)(address|location)`)

	phoneLabelRE = regexp.MustCompile(`(?i)(?:phone|tel|mobile|cell|contact)\s*:?\s*([+0-9\s\-().]+)`)
	bgImageRE    = regexp.MustCompile(`url\(['"]?([^'")]+)['"]?\)`)
	cityStateRE  = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2}\b`)
	streetRE     = regexp.MustCompile(`(?i)\d+\s+[\w\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Way)\b`)
)

// extractEmail finds an email address: mail links first, then data
// attributes, email-style classes, bare address hrefs, link texts, and
// finally a pattern search over the full text.
func (e *Extractor) extractEmail(s *goquery.Selection) string {
	if link := s.Find(`a[href^="mailto:"]`).First(); link.Length() > 0 {
		addr := strings.TrimPrefix(link.AttrOr("href", ""), "mailto:")
		if i := strings.Index(addr, "?"); i >= 0 {
			addr = addr[:i]
		}
		if addr = strings.TrimSpace(addr); strings.Contains(addr, "@") {
			return addr
		}
	}

	if v := attrFirst(s, "data-email", "data-mail", "data-contact"); strings.Contains(v, "@") {
		return v
	}

	if el := findByClass(s, "span, div, p, td", emailClassRE); el != nil {
		if addr := findEmail(el.Text()); addr != "" {
			return addr
		}
	}

	// Some sites put the bare address in an href without the scheme. Any
	// such href outranks link text, so the passes stay separate.
	var fromHref string
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		lower := strings.ToLower(href)
		if strings.Contains(href, "@") && strings.Contains(href, ".") &&
			!strings.HasPrefix(lower, "http:") && !strings.HasPrefix(lower, "https:") &&
			!strings.HasPrefix(lower, "tel:") && !strings.HasPrefix(lower, "javascript:") {
			fromHref = strings.TrimSpace(strings.TrimPrefix(href, "mailto:"))
			return false
		}
		return true
	})
	if fromHref != "" {
		return fromHref
	}

	var fromText string
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if addr := findEmail(a.Text()); addr != "" {
			fromText = addr
			return false
		}
		return true
	})
	if fromText != "" {
		return fromText
	}

	return findEmail(s.Text())
}

// extractPhone finds a phone number: tel links first, then data
// attributes, phone-style classes, a label pattern, and a raw pattern
// search.
func (e *Extractor) extractPhone(s *goquery.Selection) string {
	if link := s.Find(`a[href^="tel:"]`).First(); link.Length() > 0 {
		num := strings.TrimPrefix(link.AttrOr("href", ""), "tel:")
		num = strings.TrimSpace(strings.TrimPrefix(num, "+1"))
		if num != "" {
			return num
		}
	}

	if v := attrFirst(s, "data-phone", "data-tel", "data-telephone"); v != "" {
		return v
	}

	if el := findByClass(s, "span, div, p, td, a", phoneClassRE); el != nil {
		if num := findPhone(el.Text()); num != "" {
			return num
		}
	}

	if m := phoneLabelRE.FindStringSubmatch(s.Text()); m != nil {
		if candidate := strings.TrimSpace(m[1]); findPhone(candidate) != "" {
			return candidate
		}
	}

	return findPhone(s.Text())
}

// extractURL returns the first anchor's target, normalized against base.
func (e *Extractor) extractURL(s *goquery.Selection, base *url.URL) string {
	if link := s.Find("a[href]").First(); link.Length() > 0 {
		return resolveURL(base, link.AttrOr("href", ""))
	}
	return ""
}

// extractImage returns the first image source, or a background-image URL
// from an inline style, normalized against base.
func (e *Extractor) extractImage(s *goquery.Selection, base *url.URL) string {
	if img := s.Find("img[src]").First(); img.Length() > 0 {
		return resolveURL(base, img.AttrOr("src", ""))
	}

	styles := []string{s.AttrOr("style", "")}
	s.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		styles = append(styles, el.AttrOr("style", ""))
	})
	for _, style := range styles {
		if !strings.Contains(style, "background-image") {
			continue
		}
		if m := bgImageRE.FindStringSubmatch(style); m != nil {
			return resolveURL(base, m[1])
		}
	}
	return ""
}

// extractName finds a person/record name or title: headings first, then
// name-style classes, bold text, link text, data attributes, and finally
// the element's own direct text.
func (e *Extractor) extractName(s *goquery.Selection) string {
	okLen := func(text string) bool {
		return len(text) > e.Config.NameMinLen && len(text) < e.Config.NameMaxLen
	}

	for _, tag := range []string{"h1", "h2", "h3", "h4", "h5"} {
		if h := s.Find(tag).First(); h.Length() > 0 {
			if text := cleanText(h.Text()); okLen(text) {
				return text
			}
		}
	}

	if el := findByClass(s, "div, span, p, td, th, strong, b", nameClassRE); el != nil {
		if text := cleanText(el.Text()); okLen(text) {
			return text
		}
	}

	if bold := s.Find("strong, b").First(); bold.Length() > 0 {
		if text := cleanText(bold.Text()); okLen(text) && !strings.HasSuffix(text, ":") {
			return text
		}
	}

	var fromLink string
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !followable(a.AttrOr("href", "")) {
			return true
		}
		if text := cleanText(a.Text()); okLen(text) {
			fromLink = text
			return false
		}
		return true
	})
	if fromLink != "" {
		return fromLink
	}

	if v := attrFirst(s, "data-name", "data-title"); okLen(v) {
		return v
	}

	// Direct text is last: reject values that are really contact info.
	if text := directText(s); okLen(text) && findEmail(text) == "" && findPhone(text) == "" {
		return text
	}
	return ""
}

// extractBio finds a biography or description: bio-style classes, then
// concatenated paragraphs, then the element's whole text.
func (e *Extractor) extractBio(s *goquery.Selection) string {
	if el := findByClass(s, "div, p, span", bioClassRE); el != nil {
		if text := cleanText(el.Text()); len(text) > e.Config.BioMinLen {
			return text
		}
	}

	var parts []string
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := cleanText(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if joined := strings.Join(parts, " "); len(joined) > e.Config.BioMinLen {
		return joined
	}

	if text := cleanText(s.Text()); len(text) > e.Config.BioFallbackLen {
		return truncate(text, e.Config.BioTruncate)
	}
	return ""
}

// extractAddress finds an address or location: the address element, data
// attributes, location-style classes, schema.org markup, and finally
// city/state and street patterns in the text.
func (e *Extractor) extractAddress(s *goquery.Selection) string {
	if addr := s.Find("address").First(); addr.Length() > 0 {
		if text := cleanText(addr.Text()); text != "" {
			return text
		}
	}

	if v := attrFirst(s, "data-address", "data-location", "data-city"); v != "" {
		return v
	}

	if el := findByClass(s, "div, span, p, td", addressClassRE); el != nil {
		if text := cleanText(el.Text()); len(text) > 3 {
			return text
		}
	}

	if el := findByAttrMatch(s, "div, span", "itemprop", itempropRE); el != nil {
		if text := cleanText(el.Text()); text != "" {
			return text
		}
	}

	text := s.Text()
	if m := cityStateRE.FindString(text); m != "" {
		return m
	}
	if m := streetRE.FindString(text); m != "" {
		return cleanText(m)
	}
	return ""
}
