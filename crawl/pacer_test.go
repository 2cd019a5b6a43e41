package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/harvest/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer(t *testing.T) {
	t.Parallel()

	t.Run("spaces consecutive waits by the delay", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPacer(50 * time.Millisecond)

		start := time.Now()
		require.NoError(t, p.Wait(context.Background()))
		require.NoError(t, p.Wait(context.Background()))
		elapsed := time.Since(start)

		assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	})

	t.Run("zero delay does not block", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPacer(0)

		start := time.Now()
		for i := 0; i < 100; i++ {
			require.NoError(t, p.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPacer(time.Hour)
		require.NoError(t, p.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := p.Wait(ctx)
		require.Error(t, err)
	})
}
