package dropwatch

import (
	"context"
	"time"
)

// TimestampFormat is the ISO-8601 UTC layout used for delivery records.
const TimestampFormat = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t in UTC with second precision and a Z suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// DeliveryRecord is one row appended to the sink for a live link.
type DeliveryRecord struct {
	// Row is the 1-based row position assigned by the sink on append.
	Row int `json:"row"`

	Timestamp time.Time `json:"timestamp"`
	Link      string    `json:"link"`
	Source    string    `json:"source"`
}

// Validate returns an error if the record contains invalid fields.
func (r *DeliveryRecord) Validate() error {
	if r.Link == "" {
		return Errorf(EINVALID, "delivery link required")
	}
	if r.Source == "" {
		return Errorf(EINVALID, "delivery source required")
	}
	if r.Timestamp.IsZero() {
		return Errorf(EINVALID, "delivery timestamp required")
	}
	return nil
}

// Fields returns the three ordered fields written to the sink.
func (r *DeliveryRecord) Fields() []string {
	return []string{FormatTimestamp(r.Timestamp), r.Link, r.Source}
}

// Sink is the durable, append-only destination for live links.
type Sink interface {
	// Append writes rec as a new row after the current last row and sets rec.Row.
	Append(ctx context.Context, rec *DeliveryRecord) error

	// Rows returns the number of rows currently in the sink.
	Rows(ctx context.Context) (int, error)
}
