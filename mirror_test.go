package dropwatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/dropwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryMirrors(t *testing.T) {
	t.Parallel()

	m1 := dropwatch.Mirror{Name: "m1"}
	m2 := dropwatch.Mirror{Name: "m2"}
	m3 := dropwatch.Mirror{Name: "m3"}

	t.Run("first success short-circuits the chain", func(t *testing.T) {
		t.Parallel()

		var tried []string
		got, err := dropwatch.TryMirrors(context.Background(), []dropwatch.Mirror{m1, m2, m3}, func(_ context.Context, m dropwatch.Mirror) error {
			tried = append(tried, m.Name)
			if m.Name == "m1" {
				return errors.New("timeout")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, "m2", got.Name)
		assert.Equal(t, []string{"m1", "m2"}, tried, "m3 must not be reached")
	})

	t.Run("returns EUNAVAILABLE when every mirror fails", func(t *testing.T) {
		t.Parallel()

		var calls int
		_, err := dropwatch.TryMirrors(context.Background(), []dropwatch.Mirror{m1, m2}, func(_ context.Context, m dropwatch.Mirror) error {
			calls++
			return errors.New(m.Name + " down")
		})

		require.Error(t, err)
		assert.Equal(t, 2, calls, "each mirror is tried exactly once")
		assert.Equal(t, dropwatch.EUNAVAILABLE, dropwatch.ErrorCode(err))
		assert.Contains(t, err.Error(), "m1 down")
		assert.Contains(t, err.Error(), "m2 down")
	})

	t.Run("returns EUNAVAILABLE for an empty chain", func(t *testing.T) {
		t.Parallel()

		_, err := dropwatch.TryMirrors(context.Background(), nil, func(context.Context, dropwatch.Mirror) error {
			return nil
		})

		assert.Equal(t, dropwatch.EUNAVAILABLE, dropwatch.ErrorCode(err))
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var calls int
		_, err := dropwatch.TryMirrors(ctx, []dropwatch.Mirror{m1, m2, m3}, func(context.Context, dropwatch.Mirror) error {
			calls++
			cancel()
			return errors.New("canceled mid-request")
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestMirror_Request(t *testing.T) {
	t.Parallel()

	src := dropwatch.Source{URL: "https://x.com/uploader", Handle: "uploader"}

	t.Run("expands handle into path", func(t *testing.T) {
		t.Parallel()

		m := dropwatch.Mirror{BaseURL: "https://rsshub.app/", Path: "/twitter/user/{handle}"}

		got, err := m.Request(src)

		require.NoError(t, err)
		assert.Equal(t, "https://rsshub.app/twitter/user/uploader", got)
	})

	t.Run("identity mirror returns the source URL", func(t *testing.T) {
		t.Parallel()

		m := dropwatch.Mirror{Path: "{rawurl}"}

		got, err := m.Request(dropwatch.Source{URL: "https://example.com/feed.xml"})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/feed.xml", got)
	})

	t.Run("query-escapes the source URL", func(t *testing.T) {
		t.Parallel()

		m := dropwatch.Mirror{BaseURL: "https://proxy.example", Path: "/convert?url={url}"}

		got, err := m.Request(dropwatch.Source{URL: "https://example.com/a?b=c"})

		require.NoError(t, err)
		assert.Equal(t, "https://proxy.example/convert?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc", got)
	})

	t.Run("rejects handle template for source without handle", func(t *testing.T) {
		t.Parallel()

		m := dropwatch.Mirror{BaseURL: "https://rsshub.app", Path: "/twitter/user/{handle}"}

		_, err := m.Request(dropwatch.Source{URL: "https://example.com/feed.xml"})

		assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode(err))
	})

	t.Run("rejects non-http result", func(t *testing.T) {
		t.Parallel()

		m := dropwatch.Mirror{Path: "/relative/{handle}"}

		_, err := m.Request(src)

		assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode(err))
	})
}

func TestMirror_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "named", dropwatch.Mirror{Name: "named", BaseURL: "https://a"}.String())
	assert.Equal(t, "https://a", dropwatch.Mirror{BaseURL: "https://a"}.String())
}
