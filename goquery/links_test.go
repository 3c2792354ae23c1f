package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnanthHariharan/directory-scraper/goquery"
)

func TestDetailLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves one followable link per candidate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="person-card">
	<a href="mailto:alice@example.com">Email</a>
	<a href="/people/alice">Alice Anderson</a>
	<p>Leads the structural biology group at the institute.</p>
</div>
<div class="person-card">
	<a href="/people/bob">Bob Barnes</a>
	<p>Studies atmospheric chemistry and long-term climate records.</p>
</div>
<div class="person-card">
	<a href="/people/carol">Carol Chen</a>
	<p>Works on numerical methods for large-scale fluid simulation.</p>
</div>
</body>
</html>`

		doc, set := locate(t, html, "https://example.com/people")
		require.Equal(t, 3, set.Len())

		links := goquery.DetailLinks(set.Elements, doc.URL())

		assert.Equal(t, []string{
			"https://example.com/people/alice",
			"https://example.com/people/bob",
			"https://example.com/people/carol",
		}, links)
	})

	t.Run("skips candidates with only contact links", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="person-card">
	<a href="mailto:alice@example.com">alice@example.com</a>
	<p>Leads the structural biology group at the institute.</p>
</div>
<div class="person-card">
	<a href="tel:+15550100102">555-010-0102</a>
	<p>Studies atmospheric chemistry and long-term climate records.</p>
</div>
<div class="person-card">
	<a href="/people/carol">Carol Chen</a>
	<p>Works on numerical methods for large-scale fluid simulation.</p>
</div>
</body>
</html>`

		doc, set := locate(t, html, "https://example.com/people")
		require.Equal(t, 3, set.Len())

		links := goquery.DetailLinks(set.Elements, doc.URL())
		assert.Equal(t, []string{"https://example.com/people/carol"}, links)
	})

	t.Run("deduplicates repeated targets", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="person-card">
	<a href="/people/alice">Alice Anderson</a>
	<p>Leads the structural biology group at the institute.</p>
</div>
<div class="person-card">
	<a href="/people/alice">Alice Anderson (duplicate row)</a>
	<p>Leads the structural biology group at the institute.</p>
</div>
<div class="person-card">
	<a href="/people/bob">Bob Barnes</a>
	<p>Studies atmospheric chemistry and long-term climate records.</p>
</div>
</body>
</html>`

		doc, set := locate(t, html, "https://example.com/people")
		require.Equal(t, 3, set.Len())

		links := goquery.DetailLinks(set.Elements, doc.URL())
		assert.Equal(t, []string{
			"https://example.com/people/alice",
			"https://example.com/people/bob",
		}, links)
	})
}
