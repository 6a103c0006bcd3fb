package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dropwatch"
)

// Ensure LoggingClassifier implements dropwatch.LivenessClassifier.
var _ dropwatch.LivenessClassifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a LivenessClassifier with logging.
type LoggingClassifier struct {
	next   dropwatch.LivenessClassifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next dropwatch.LivenessClassifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify logs the probed URL and its verdict.
func (c *LoggingClassifier) Classify(ctx context.Context, url string) (verdict dropwatch.Verdict) {
	defer func(begin time.Time) {
		c.logger.Info("classify",
			"url", url,
			"verdict", verdict,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Classify(ctx, url)
}
