package dropwatch_test

import (
	"testing"
	"time"

	"github.com/fwojciec/dropwatch"
	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2026, 3, 1, 9, 30, 15, 987654321, loc)

	assert.Equal(t, "2026-03-01T00:30:15Z", dropwatch.FormatTimestamp(ts))
}

func TestDeliveryRecord_Validate(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.NoError(t, (&dropwatch.DeliveryRecord{Timestamp: now, Link: "https://gofile.io/d/a", Source: "https://x.com/u"}).Validate())
	assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode((&dropwatch.DeliveryRecord{Timestamp: now, Source: "s"}).Validate()))
	assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode((&dropwatch.DeliveryRecord{Timestamp: now, Link: "l"}).Validate()))
	assert.Equal(t, dropwatch.EINVALID, dropwatch.ErrorCode((&dropwatch.DeliveryRecord{Link: "l", Source: "s"}).Validate()))
}

func TestDeliveryRecord_Fields(t *testing.T) {
	t.Parallel()

	rec := &dropwatch.DeliveryRecord{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Link:      "https://gofile.io/d/a",
		Source:    "https://x.com/u",
	}

	assert.Equal(t, []string{"2026-01-02T03:04:05Z", "https://gofile.io/d/a", "https://x.com/u"}, rec.Fields())
}
