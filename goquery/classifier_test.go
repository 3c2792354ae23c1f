package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/goquery"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	classifier := goquery.NewClassifier(goquery.NewLocator())

	t.Run("listing when record candidates exist", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="member-card"><h3>Alice Anderson</h3><a href="mailto:a@example.com">a@example.com</a><p>Directs the research program.</p></div>
<div class="member-card"><h3>Bob Barnes</h3><a href="mailto:b@example.com">b@example.com</a><p>Coordinates community outreach.</p></div>
<div class="member-card"><h3>Carol Chen</h3><a href="mailto:c@example.com">c@example.com</a><p>Manages laboratory operations.</p></div>
</body>
</html>`

		doc := mustParse(t, html, "https://example.com/members")
		assert.Equal(t, dirscrape.PageListing, classifier.Classify(doc))
	})

	t.Run("detail for a single profile page", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="profile">
	<h1>Alice Anderson</h1>
	<p>Alice Anderson directs the research program and has published widely
	on directory-scale information extraction over the last decade.</p>
	<a href="mailto:alice@example.com">alice@example.com</a>
</div>
</body>
</html>`

		doc := mustParse(t, html, "https://example.com/people/alice")
		assert.Equal(t, dirscrape.PageDetail, classifier.Classify(doc))
	})

	t.Run("detail when a heading tops an unstructured page", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1>Dr. Bob Barnes</h1>
<p>Short summary.</p>
</body>
</html>`

		doc := mustParse(t, html, "https://example.com/people/bob")
		assert.Equal(t, dirscrape.PageDetail, classifier.Classify(doc))
	})

	t.Run("defaults to listing when no signal is present", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<p>Nothing here.</p>
</body>
</html>`

		doc := mustParse(t, html, "https://example.com/empty")
		assert.Equal(t, dirscrape.PageListing, classifier.Classify(doc))
	})
}
