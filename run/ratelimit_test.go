package run_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/run"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements dropwatch.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ dropwatch.HostLimiter = run.NewHostLimiter(time.Second)
	})

	t.Run("first probe to a host is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := run.NewHostLimiter(time.Second)

		start := time.Now()
		err := limiter.Wait(context.Background(), "gofile.io")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("spaces probes to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := run.NewHostLimiter(100 * time.Millisecond)

		require.NoError(t, limiter.Wait(context.Background(), "gofile.io"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "gofile.io")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for the interval")
	})

	t.Run("different hosts have independent intervals", func(t *testing.T) {
		t.Parallel()

		limiter := run.NewHostLimiter(time.Second)

		require.NoError(t, limiter.Wait(context.Background(), "gofile.io"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "nitter.net")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := run.NewHostLimiter(time.Second)
		require.NoError(t, limiter.Wait(context.Background(), "gofile.io"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "gofile.io")

		require.Error(t, err)
	})

	t.Run("zero interval never waits", func(t *testing.T) {
		t.Parallel()

		limiter := run.NewHostLimiter(0)

		start := time.Now()
		for i := 0; i < 5; i++ {
			require.NoError(t, limiter.Wait(context.Background(), "gofile.io"))
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})
}
