package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dropwatch"
)

// Ensure LoggingLedger implements dropwatch.Ledger.
var _ dropwatch.Ledger = (*LoggingLedger)(nil)

// LoggingLedger wraps a Ledger with logging.
type LoggingLedger struct {
	next   dropwatch.Ledger
	logger *slog.Logger
}

// NewLoggingLedger creates a new LoggingLedger.
func NewLoggingLedger(next dropwatch.Ledger, logger *slog.Logger) *LoggingLedger {
	return &LoggingLedger{next: next, logger: logger}
}

// Load logs the number of links loaded.
func (l *LoggingLedger) Load(ctx context.Context) (s *dropwatch.SeenSet, err error) {
	defer func(begin time.Time) {
		size := 0
		if s != nil {
			size = s.Len()
		}
		l.logger.Info("ledger load",
			"links", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx)
}

// Save logs the number of links saved.
func (l *LoggingLedger) Save(ctx context.Context, s *dropwatch.SeenSet) (err error) {
	defer func(begin time.Time) {
		l.logger.Info("ledger save",
			"links", s.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Save(ctx, s)
}
