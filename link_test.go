package dropwatch_test

import (
	"testing"

	"github.com/fwojciec/dropwatch"
	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("normalizes JSON-escaped links", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks(`{"text":"https:\/\/gofile.io\/d\/AbC123"}`)

		assert.Equal(t, []string{"https://gofile.io/d/AbC123"}, links)
	})

	t.Run("normalizes schemeless links", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks("new upload gofile.io/d/AbC123 enjoy")

		assert.Equal(t, []string{"https://gofile.io/d/AbC123"}, links)
	})

	t.Run("forces https and rewrites protocol-relative links", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks(`<a href="http://gofile.io/d/one">x</a> <a href="//gofile.io/d/two">y</a>`)

		assert.Equal(t, []string{"https://gofile.io/d/one", "https://gofile.io/d/two"}, links)
	})

	t.Run("unescapes unicode-escaped slashes", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks(`"https:\u002f\u002fgofile.io\u002Fd\u002fXyz9"`)

		assert.Equal(t, []string{"https://gofile.io/d/Xyz9"}, links)
	})

	t.Run("strips www and keeps identifier case", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks("https://www.GoFile.io/d/MiXeD")

		assert.Equal(t, []string{"https://gofile.io/d/MiXeD"}, links)
	})

	t.Run("deduplicates after normalization", func(t *testing.T) {
		t.Parallel()

		text := `gofile.io/d/AbC123 https://gofile.io/d/AbC123 https:\/\/gofile.io\/d\/AbC123`

		links := dropwatch.ExtractLinks(text)

		assert.Equal(t, []string{"https://gofile.io/d/AbC123"}, links)
	})

	t.Run("stops identifier at first non-alphanumeric character", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks("(https://gofile.io/d/abc?x=1) https://gofile.io/d/def#frag")

		assert.Equal(t, []string{"https://gofile.io/d/abc", "https://gofile.io/d/def"}, links)
	})

	t.Run("ignores hosts that end in the link host", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks("https://notgofile.io/d/abc notgofile.io/d/x https://cdn.gofile.io/d/y")

		assert.Empty(t, links)
	})

	t.Run("ignores the link host inside another URL's path", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks("https://evil.example/gofile.io/d/xyz evil.example/gofile.io/d/x")

		assert.Empty(t, links)
	})

	t.Run("finds a real link after a rejected one", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks("notgofile.io/d/fake, then gofile.io/d/Real1 and =gofile.io/d/Real2")

		assert.Equal(t, []string{"https://gofile.io/d/Real1", "https://gofile.io/d/Real2"}, links)
	})

	t.Run("ignores other hosts and paths", func(t *testing.T) {
		t.Parallel()

		links := dropwatch.ExtractLinks("https://example.com/d/abc https://gofile.io/login https://gofile.io/d/")

		assert.Empty(t, links)
	})
}

func TestNormalizeLink(t *testing.T) {
	t.Parallel()

	link, ok := dropwatch.NormalizeLink("gofile.io/d/AbC123")
	assert.True(t, ok)
	assert.Equal(t, "https://gofile.io/d/AbC123", link)

	_, ok = dropwatch.NormalizeLink("https://example.com")
	assert.False(t, ok)

	_, ok = dropwatch.NormalizeLink("https://evil.example/gofile.io/d/AbC123")
	assert.False(t, ok)
}
