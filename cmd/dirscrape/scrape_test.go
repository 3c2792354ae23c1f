package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
	"github.com/AnanthHariharan/directory-scraper/mock"
)

const testListing = `<!DOCTYPE html>
<html>
<body>
<div class="person-card"><h3>Alice Anderson</h3><a href="mailto:alice@example.com">alice@example.com</a><p>Leads the structural biology group at the institute.</p></div>
<div class="person-card"><h3>Bob Barnes</h3><a href="mailto:bob@example.com">bob@example.com</a><p>Studies atmospheric chemistry and long-term climate records.</p></div>
<div class="person-card"><h3>Carol Chen</h3><a href="mailto:carol@example.com">carol@example.com</a><p>Works on numerical methods for large-scale fluid simulation.</p></div>
</body>
</html>`

func testDeps(t *testing.T) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return testListing, nil
			},
		},
	}, stdout, stderr
}

func TestParseFields(t *testing.T) {
	t.Parallel()

	t.Run("name with description", func(t *testing.T) {
		t.Parallel()

		schema, err := parseFields([]string{"name", "email:work email address"})

		require.NoError(t, err)
		require.Len(t, schema, 2)
		assert.Equal(t, dirscrape.Field{Name: "name"}, schema[0])
		assert.Equal(t, dirscrape.Field{Name: "email", Description: "work email address"}, schema[1])
	})

	t.Run("rejects empty field list", func(t *testing.T) {
		t.Parallel()

		_, err := parseFields(nil)
		require.Error(t, err)
		assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()

		_, err := parseFields([]string{"name", "name:again"})
		require.Error(t, err)
	})
}

func TestScrapeCmd_Schema(t *testing.T) {
	t.Parallel()

	t.Run("loads fields from a schema file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "schema.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"name": "name"},
			{"name": "email", "description": "work email address"}
		]`), 0o600))

		cmd := &ScrapeCmd{Schema: path}
		schema, err := cmd.schema()

		require.NoError(t, err)
		require.Len(t, schema, 2)
		assert.Equal(t, "email", schema[1].Name)
		assert.Equal(t, "work email address", schema[1].Description)
	})

	t.Run("rejects schema file combined with field arguments", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "schema.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name": "name"}]`), 0o600))

		cmd := &ScrapeCmd{Schema: path, Fields: []string{"email"}}
		_, err := cmd.schema()

		require.Error(t, err)
		assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	})

	t.Run("rejects an unparsable schema file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "schema.json")
		require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

		cmd := &ScrapeCmd{Schema: path}
		_, err := cmd.schema()

		require.Error(t, err)
		assert.Equal(t, dirscrape.EINVALID, dirscrape.ErrorCode(err))
	})
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("emits JSON records", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(t)
		cmd := &ScrapeCmd{
			URL:    "https://example.com/people",
			Fields: []string{"name", "email"},
			Output: "json",
		}

		require.NoError(t, cmd.Run(deps))

		var records []map[string]string
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
		require.Len(t, records, 3)
		assert.Equal(t, "Alice Anderson", records[0]["name"])
		assert.Equal(t, "carol@example.com", records[2]["email"])

		assert.Contains(t, stderr.String(), "3 records")
	})

	t.Run("emits CSV with a header row", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		cmd := &ScrapeCmd{
			URL:    "https://example.com/people",
			Fields: []string{"name", "email"},
			Output: "csv",
		}

		require.NoError(t, cmd.Run(deps))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "name,email", lines[0])
		assert.Equal(t, "Alice Anderson,alice@example.com", lines[1])
	})
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), nil, &stdout, &stderr)
		require.Error(t, err)
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)
		require.NoError(t, err)
	})
}
