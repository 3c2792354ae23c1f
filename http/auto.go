package http

import (
	"context"
	"regexp"
	"strings"
	"sync"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// Ensure AutoFetcher implements dirscrape.Fetcher at compile time.
var _ dirscrape.Fetcher = (*AutoFetcher)(nil)

// renderedTextThreshold is the visible-text length below which a static
// response is assumed to be a client-rendered shell.
const renderedTextThreshold = 500

var (
	appShellRE  = regexp.MustCompile(`(?i)<div[^>]+id=["'](root|app|__next|___gatsby)["'][^>]*>\s*</div>`)
	frameworkRE = regexp.MustCompile(`(?i)<script[^>]+src=["'][^"']*(react|vue|angular|next|nuxt|ember)[^"']*["']`)
	tagRE       = regexp.MustCompile(`(?s)<script.*?</script>|<style.*?</style>|<[^>]+>`)
)

// AutoFetcher tries a plain HTTP fetch first and escalates to a rendered
// fetch when the response looks like a JavaScript application shell. The
// rendered fetcher is constructed lazily on first escalation since
// launching a browser is expensive and many directories never need one.
type AutoFetcher struct {
	static      dirscrape.Fetcher
	newRendered func() (dirscrape.Fetcher, error)

	mu       sync.Mutex
	rendered dirscrape.Fetcher
}

// NewAutoFetcher creates an AutoFetcher over the given static fetcher.
// newRendered is called at most once, on the first escalation.
func NewAutoFetcher(static dirscrape.Fetcher, newRendered func() (dirscrape.Fetcher, error)) *AutoFetcher {
	return &AutoFetcher{
		static:      static,
		newRendered: newRendered,
	}
}

// Fetch retrieves the URL statically and escalates to rendered fetching
// when the static response needs JavaScript. A failed escalation falls
// back to whatever the static fetch produced.
func (f *AutoFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.static.Fetch(ctx, url)
	if err == nil && !NeedsRendering(html) {
		return html, nil
	}

	rendered, rerr := f.renderedFetcher()
	if rerr != nil {
		return html, err
	}

	rhtml, rerr := rendered.Fetch(ctx, url)
	if rerr != nil {
		return html, err
	}
	return rhtml, nil
}

// renderedFetcher returns the lazily constructed rendered fetcher.
func (f *AutoFetcher) renderedFetcher() (dirscrape.Fetcher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rendered != nil {
		return f.rendered, nil
	}
	rendered, err := f.newRendered()
	if err != nil {
		return nil, err
	}
	f.rendered = rendered
	return rendered, nil
}

// Close releases both underlying fetchers.
func (f *AutoFetcher) Close() error {
	err := f.static.Close()

	f.mu.Lock()
	rendered := f.rendered
	f.mu.Unlock()

	if rendered != nil {
		if cerr := rendered.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// NeedsRendering reports whether static HTML looks like a client-rendered
// shell: an empty application mount point, a framework bundle, or almost
// no visible text.
func NeedsRendering(html string) bool {
	if appShellRE.MatchString(html) {
		return true
	}
	if frameworkRE.MatchString(html) {
		return true
	}
	text := strings.TrimSpace(tagRE.ReplaceAllString(html, " "))
	return len(text) < renderedTextThreshold
}
