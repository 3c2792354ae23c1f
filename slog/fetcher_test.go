package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/mock"
	logslog "github.com/AnanthHariharan/directory-scraper/slog"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs and delegates", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}

		f := logslog.NewFetcher(next, logger)
		html, err := f.Fetch(context.Background(), "https://example.com/dir")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Contains(t, buf.String(), "fetch")
		assert.Contains(t, buf.String(), "https://example.com/dir")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", dirscrape.Errorf(dirscrape.EUNAVAILABLE, "HTTP 503 for %s", url)
			},
		}

		f := logslog.NewFetcher(next, logger)
		_, err := f.Fetch(context.Background(), "https://example.com/dir")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "HTTP 503")
	})

	t.Run("close delegates", func(t *testing.T) {
		t.Parallel()

		closed := false
		next := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		f := logslog.NewFetcher(next, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		require.NoError(t, f.Close())
		assert.True(t, closed)
	})
}

func TestEnricher_Enrich(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := &mock.Enricher{
		EnrichFn: func(_ context.Context, _ string, fields dirscrape.FieldSchema) (map[string]string, error) {
			return map[string]string{"email": "a@example.com"}, nil
		},
	}

	e := logslog.NewEnricher(next, logger)
	out, err := e.Enrich(context.Background(), "<div></div>", dirscrape.FieldSchema{{Name: "email"}, {Name: "phone"}})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "a@example.com"}, out)
	assert.Contains(t, buf.String(), "enrich")
	assert.Contains(t, buf.String(), "requested=2")
	assert.Contains(t, buf.String(), "filled=1")
}
