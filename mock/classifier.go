package mock

import (
	"context"

	"github.com/fwojciec/dropwatch"
)

var _ dropwatch.LivenessClassifier = (*Classifier)(nil)

// Classifier is a mock implementation of dropwatch.LivenessClassifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, url string) dropwatch.Verdict
}

func (c *Classifier) Classify(ctx context.Context, url string) dropwatch.Verdict {
	return c.ClassifyFn(ctx, url)
}
