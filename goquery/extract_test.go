package goquery_test

import (
	"testing"

	"github.com/fwojciec/dropwatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnchorLinks(t *testing.T) {
	t.Parallel()

	t.Run("extracts direct anchor targets", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="tweet-content"><a href="https://gofile.io/d/AbC123">gofile.io/d/AbC123</a></div>
<a href="/uploader/status/1">permalink</a>
</body></html>`

		links, err := goquery.ExtractAnchorLinks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://gofile.io/d/AbC123"}, links)
	})

	t.Run("decodes redirector query parameters", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://out.example.com/redirect?url=https%3A%2F%2Fgofile.io%2Fd%2FHidden1">link</a>`

		links, err := goquery.ExtractAnchorLinks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://gofile.io/d/Hidden1"}, links)
	})

	t.Run("unwraps nested redirectors", func(t *testing.T) {
		t.Parallel()

		inner := "https%3A%2F%2Fgo.example%2F%3Fu%3Dhttps%253A%252F%252Fgofile.io%252Fd%252FDeep2"
		html := `<a href="https://out.example.com/?target=` + inner + `">link</a>`

		links, err := goquery.ExtractAnchorLinks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://gofile.io/d/Deep2"}, links)
	})

	t.Run("reads expanded URL attributes of shortened links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://t.co/xyz" data-expanded-url="https://gofile.io/d/Exp3">t.co/xyz</a>`

		links, err := goquery.ExtractAnchorLinks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://gofile.io/d/Exp3"}, links)
	})

	t.Run("finds links in plain text and scripts", func(t *testing.T) {
		t.Parallel()

		html := `<p>mirror: gofile.io/d/Txt4</p><script>var x = {"u":"https:\/\/gofile.io\/d\/Js5"};</script>`

		links, err := goquery.ExtractAnchorLinks(html)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"https://gofile.io/d/Txt4", "https://gofile.io/d/Js5"}, links)
	})

	t.Run("skips non-HTTP anchors", func(t *testing.T) {
		t.Parallel()

		html := `<a href="javascript:void(0)">x</a><a href="mailto:a@b.c">y</a>`

		links, err := goquery.ExtractAnchorLinks(html)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("deduplicates across anchors and text", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://gofile.io/d/Same">https://gofile.io/d/Same</a> gofile.io/d/Same`

		links, err := goquery.ExtractAnchorLinks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://gofile.io/d/Same"}, links)
	})
}
