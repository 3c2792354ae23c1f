package bloom_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnanthHariharan/directory-scraper/bloom"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("added URLs test positive", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.Add("https://example.com/dir?page=1")

		assert.True(t, f.Test("https://example.com/dir?page=1"))
		assert.False(t, f.Test("https://example.com/dir?page=2"))
	})

	t.Run("TestAndAdd reports prior membership", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		assert.False(t, f.TestAndAdd("https://example.com/next"))
		assert.True(t, f.TestAndAdd("https://example.com/next"))
	})

	t.Run("estimates the number of recorded URLs", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(10000, 0.01)
		for i := 0; i < 100; i++ {
			f.Add(fmt.Sprintf("https://example.com/page/%d", i))
		}

		assert.InDelta(t, 100, float64(f.EstimatedCount()), 10)
	})
}
