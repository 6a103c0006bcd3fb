package dropwatch_test

import (
	"testing"

	"github.com/fwojciec/dropwatch"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	src := []dropwatch.Source{{URL: "https://x.com/u", Handle: "u"}}

	assert.NoError(t, dropwatch.NewConfig(src).Validate())
	assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode(dropwatch.NewConfig(nil).Validate()))

	cfg := dropwatch.NewConfig(src)
	cfg.Budget = -1
	assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode(cfg.Validate()))

	cfg = dropwatch.NewConfig(src)
	cfg.MaxPages = 0
	assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode(cfg.Validate()))
}

func TestDefaultFeedMirrors_StartsWithDirectFetch(t *testing.T) {
	t.Parallel()

	mirrors := dropwatch.DefaultFeedMirrors()

	got, err := mirrors[0].Request(dropwatch.Source{URL: "https://example.com/rss"})

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/rss", got)
}
