package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dropwatch"
)

// Ensure LoggingSink implements dropwatch.Sink.
var _ dropwatch.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink with logging.
type LoggingSink struct {
	next   dropwatch.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next dropwatch.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Append logs the delivered link and the row it landed on.
func (s *LoggingSink) Append(ctx context.Context, rec *dropwatch.DeliveryRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("deliver",
			"link", rec.Link,
			"source", rec.Source,
			"row", rec.Row,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Append(ctx, rec)
}

// Rows delegates to the wrapped sink.
func (s *LoggingSink) Rows(ctx context.Context) (int, error) {
	return s.next.Rows(ctx)
}
