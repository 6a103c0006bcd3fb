// Package slog provides logging decorators for dropwatch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dropwatch"
)

// Ensure LoggingStrategy implements dropwatch.Strategy.
var _ dropwatch.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with logging.
type LoggingStrategy struct {
	next   dropwatch.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next dropwatch.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Collect logs the source, strategy and number of links found.
func (s *LoggingStrategy) Collect(ctx context.Context, src dropwatch.Source) (links []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("collect",
			"strategy", s.next.Name(),
			"source", src.URL,
			"links", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Collect(ctx, src)
}
