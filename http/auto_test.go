package http_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	scrapehttp "github.com/AnanthHariharan/directory-scraper/http"
	"github.com/AnanthHariharan/directory-scraper/mock"
)

const richHTML = `<!DOCTYPE html>
<html>
<body>
<div class="person-card"><h3>Alice Anderson</h3><p>Leads the structural biology group at the institute, supervising
graduate students and maintaining the laboratory's public directory of collaborators. Her work has appeared in
numerous journals and she regularly teaches the department's introductory sequence. Office hours are posted each
term on the departmental site along with contact details for scheduling appointments and advising sessions.
Before joining the institute she spent six years in industry building analysis pipelines for sequencing data,
and she continues to consult on reproducibility practices for several national research consortia.</p></div>
</body>
</html>`

func TestNeedsRendering(t *testing.T) {
	t.Parallel()

	t.Run("server-rendered content does not", func(t *testing.T) {
		t.Parallel()
		assert.False(t, scrapehttp.NeedsRendering(richHTML))
	})

	t.Run("empty application mount point does", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html><html><body><div id="root"></div><script src="/bundle.js"></script></body></html>`
		assert.True(t, scrapehttp.NeedsRendering(html))
	})

	t.Run("framework bundle does", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html><html><body><div>loading</div><script src="/static/react-dom.production.min.js"></script></body></html>`
		assert.True(t, scrapehttp.NeedsRendering(html))
	})

	t.Run("near-empty page does", func(t *testing.T) {
		t.Parallel()
		assert.True(t, scrapehttp.NeedsRendering(`<html><body><p>loading</p></body></html>`))
	})
}

func TestAutoFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("stays static for server-rendered pages", func(t *testing.T) {
		t.Parallel()

		static := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return richHTML, nil
			},
		}
		escalated := false
		f := scrapehttp.NewAutoFetcher(static, func() (dirscrape.Fetcher, error) {
			escalated = true
			return nil, nil
		})

		html, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, richHTML, html)
		assert.False(t, escalated)
	})

	t.Run("escalates app shells to the rendered fetcher", func(t *testing.T) {
		t.Parallel()

		shell := `<!DOCTYPE html><html><body><div id="app"></div></body></html>`
		static := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return shell, nil
			},
		}
		rendered := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return richHTML, nil
			},
		}
		f := scrapehttp.NewAutoFetcher(static, func() (dirscrape.Fetcher, error) {
			return rendered, nil
		})

		html, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, richHTML, html)
	})

	t.Run("escalates static fetch failures", func(t *testing.T) {
		t.Parallel()

		static := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", dirscrape.Errorf(dirscrape.EUNAVAILABLE, "HTTP 503 for %s", url)
			},
		}
		rendered := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return richHTML, nil
			},
		}
		f := scrapehttp.NewAutoFetcher(static, func() (dirscrape.Fetcher, error) {
			return rendered, nil
		})

		html, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, richHTML, html)
	})

	t.Run("falls back to the static result when rendering fails", func(t *testing.T) {
		t.Parallel()

		shell := `<!DOCTYPE html><html><body><div id="app"></div></body></html>`
		static := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return shell, nil
			},
		}
		f := scrapehttp.NewAutoFetcher(static, func() (dirscrape.Fetcher, error) {
			return nil, dirscrape.Errorf(dirscrape.EUNAVAILABLE, "no chrome available")
		})

		html, err := f.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, shell, html)
	})

	t.Run("constructs the rendered fetcher once", func(t *testing.T) {
		t.Parallel()

		shell := `<!DOCTYPE html><html><body><div id="app"></div></body></html>`
		static := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return shell, nil
			},
		}
		constructed := 0
		rendered := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return richHTML, nil
			},
		}
		f := scrapehttp.NewAutoFetcher(static, func() (dirscrape.Fetcher, error) {
			constructed++
			return rendered, nil
		})

		for i := 0; i < 3; i++ {
			_, err := f.Fetch(context.Background(), "https://example.com")
			require.NoError(t, err)
		}
		assert.Equal(t, 1, constructed)
	})
}
