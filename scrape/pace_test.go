package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnanthHariharan/directory-scraper/scrape"
)

func TestPacer_Wait(t *testing.T) {
	t.Parallel()

	t.Run("zero interval never blocks", func(t *testing.T) {
		t.Parallel()

		p := scrape.NewPacer(0)
		for i := 0; i < 100; i++ {
			require.NoError(t, p.Wait(context.Background()))
		}
	})

	t.Run("first wait already observes the interval", func(t *testing.T) {
		t.Parallel()

		p := scrape.NewPacer(50 * time.Millisecond)

		start := time.Now()
		require.NoError(t, p.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		t.Parallel()

		p := scrape.NewPacer(time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, p.Wait(ctx))
	})
}
