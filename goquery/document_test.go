package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/goquery"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("parses markup and keeps the URL", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseDocument(`<html><body><h1>Staff</h1></body></html>`, "https://example.com/staff?page=2")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/staff?page=2", doc.URLString())
		assert.Equal(t, 1, doc.Find("h1").Length())
		assert.Equal(t, "Staff", doc.Text())
	})

	t.Run("rejects unparsable URLs", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseDocument("<html></html>", "://bad")

		require.Error(t, err)
		assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	})
}
