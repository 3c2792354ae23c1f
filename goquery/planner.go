package goquery

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// PlannerConfig holds the tunable pagination-detection heuristics.
type PlannerConfig struct {
	// PageParams are candidate pagination query parameters, checked in
	// order; the first present in the URL wins.
	PageParams []string

	// ContainerClass identifies pagination containers among nav/div/ul.
	ContainerClass *regexp.Regexp

	// NextText and NextClass identify the next-page control inside a
	// pagination container.
	NextText  *regexp.Regexp
	NextClass *regexp.Regexp

	// LoadMoreText identifies load-more/show-more controls.
	LoadMoreText *regexp.Regexp
}

// DefaultPlannerConfig returns the calibrated planner configuration.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		PageParams:     []string{"page", "p", "pg", "pagenum", "offset", "start", "from"},
		ContainerClass: regexp.MustCompile(`(?i)paginat`),
		NextText:       regexp.MustCompile(`(?i)(next|»|›|>)`),
		NextClass:      regexp.MustCompile(`(?i)next`),
		LoadMoreText:   regexp.MustCompile(`(?i)(load\s*more|show\s*more)`),
	}
}

// Planner detects a page's pagination mechanism and expands it into a
// bounded sequence of page URLs.
type Planner struct {
	Config PlannerConfig
}

// NewPlanner returns a Planner with the default configuration.
func NewPlanner() *Planner {
	return &Planner{Config: DefaultPlannerConfig()}
}

// Detect inspects the document's URL and DOM for pagination signals.
func (p *Planner) Detect(doc *Document) dirscrape.PaginationPlan {
	var plan dirscrape.PaginationPlan

	// URL query parameters are the strongest mechanism signal.
	query := doc.URL().Query()
	for _, param := range p.Config.PageParams {
		if query.Has(param) {
			plan.HasPagination = true
			plan.Mechanism = dirscrape.MechanismURLParam
			plan.Param = param
			break
		}
	}

	// A pagination container yields the next link and the advertised
	// page count regardless of mechanism.
	if container := findByClass(doc.Root(), "nav, div, ul", p.Config.ContainerClass); container != nil {
		plan.HasPagination = true
		if plan.Mechanism == dirscrape.MechanismNone {
			plan.Mechanism = dirscrape.MechanismNextLink
		}

		if next := p.findNextControl(container); next != nil {
			if href, ok := next.Attr("href"); ok {
				plan.NextURL = resolveURL(doc.URL(), href)
			}
		}

		container.Find("a").Each(func(_ int, a *goquery.Selection) {
			if n, err := strconv.Atoi(cleanText(a.Text())); err == nil && n > plan.TotalPages {
				plan.TotalPages = n
			}
		})
	}

	// A load-more control overrides any mechanism found so far.
	if filterByText(doc.Find("button, a"), p.Config.LoadMoreText).Length() > 0 {
		plan.HasPagination = true
		plan.Mechanism = dirscrape.MechanismButton
	}

	return plan
}

// findNextControl locates the next-page anchor inside a pagination
// container: by text, then by class, then by rel=next.
func (p *Planner) findNextControl(container *goquery.Selection) *goquery.Selection {
	if next := filterByText(container.Find("a"), p.Config.NextText).First(); next.Length() > 0 {
		return next
	}
	if next := findByClass(container, "a", p.Config.NextClass); next != nil {
		return next
	}
	if next := container.Find(`a[rel="next"]`).First(); next.Length() > 0 {
		return next
	}
	return nil
}

// Expand turns a plan into a bounded, ordered page-URL sequence starting at
// baseURL.
//
// URL-parameter plans emit one URL per page number, the pagination
// parameter rewritten and every other query parameter preserved; page one
// is normalized to parameter value 1 so a mid-pagination seed still yields
// a full sequence. Next-link plans look only one hop ahead; callers
// re-detect per fetched page to keep following.
func (p *Planner) Expand(baseURL string, plan dirscrape.PaginationPlan, maxPages int) []string {
	if !plan.HasPagination || maxPages < 1 {
		return []string{baseURL}
	}

	if plan.Mechanism == dirscrape.MechanismURLParam && plan.Param != "" {
		count := maxPages
		if plan.TotalPages > 0 && plan.TotalPages < maxPages {
			count = plan.TotalPages
		}
		urls := make([]string, 0, count)
		for page := 1; page <= count; page++ {
			urls = append(urls, setQueryParam(baseURL, plan.Param, page))
		}
		return urls
	}

	if plan.NextURL != "" && plan.NextURL != baseURL {
		return []string{baseURL, plan.NextURL}
	}

	return []string{baseURL}
}

// setQueryParam returns rawURL with param set to value, other query
// parameters intact. Unparsable URLs are returned unchanged.
func setQueryParam(rawURL, param string, value int) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(param, strconv.Itoa(value))
	u.RawQuery = q.Encode()
	return u.String()
}
