package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Load(t *testing.T) {
	t.Parallel()

	t.Run("missing file creates empty ledger with parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data", "nested", "seen_urls.json")
		ledger := fs.NewLedger(path)

		seen, err := ledger.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, seen.Len())
		assert.False(t, ledger.Corrupt())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("reads existing links", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seen_urls.json")
		require.NoError(t, os.WriteFile(path, []byte(`["https://gofile.io/d/a","https://gofile.io/d/b"]`), 0644))

		seen, err := fs.NewLedger(path).Load(context.Background())

		require.NoError(t, err)
		assert.True(t, seen.Has("https://gofile.io/d/a"))
		assert.True(t, seen.Has("https://gofile.io/d/b"))
		assert.False(t, seen.Changed())
	})

	t.Run("corrupt content yields empty set", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seen_urls.json")
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
		ledger := fs.NewLedger(path)

		seen, err := ledger.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, seen.Len())
		assert.True(t, ledger.Corrupt())
	})

	t.Run("object instead of array is corrupt", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seen_urls.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"links":[]}`), 0644))
		ledger := fs.NewLedger(path)

		seen, err := ledger.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, seen.Len())
		assert.True(t, ledger.Corrupt())
	})
}

func TestLedger_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes sorted indented array", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seen_urls.json")
		ledger := fs.NewLedger(path)
		seen := dropwatch.NewSeenSet("https://gofile.io/d/b")
		seen.Add("https://gofile.io/d/a")

		err := ledger.Save(context.Background(), seen)

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[\n  \"https://gofile.io/d/a\",\n  \"https://gofile.io/d/b\"\n]\n", string(data))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ledger := fs.NewLedger(filepath.Join(dir, "seen_urls.json"))

		require.NoError(t, ledger.Save(context.Background(), dropwatch.NewSeenSet("https://gofile.io/d/a")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "seen_urls.json", entries[0].Name())
	})

	t.Run("saves after context cancellation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seen_urls.json")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := fs.NewLedger(path).Save(ctx, dropwatch.NewSeenSet("https://gofile.io/d/a"))

		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("round trips through load", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seen_urls.json")
		ledger := fs.NewLedger(path)
		require.NoError(t, ledger.Save(context.Background(), dropwatch.NewSeenSet("https://gofile.io/d/x", "https://gofile.io/d/y")))

		seen, err := ledger.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://gofile.io/d/x", "https://gofile.io/d/y"}, seen.Sorted())
	})
}
