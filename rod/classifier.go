package rod

import (
	"context"
	"time"

	"github.com/fwojciec/dropwatch"
)

// Ensure Classifier implements dropwatch.LivenessClassifier at compile time.
var _ dropwatch.LivenessClassifier = (*Classifier)(nil)

// Classifier probes candidate links by rendering them and matching the page
// text against the configured phrases.
type Classifier struct {
	page    Page
	phrases dropwatch.Phrases
	settle  time.Duration
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithPhrases overrides the classification phrases.
func WithPhrases(p dropwatch.Phrases) ClassifierOption {
	return func(c *Classifier) {
		c.phrases = p
	}
}

// WithSettleDelay sets the wait between navigation and reading the page.
// Defaults to dropwatch.DefaultSettleDelay (3s) if not specified.
func WithSettleDelay(d time.Duration) ClassifierOption {
	return func(c *Classifier) {
		c.settle = d
	}
}

// NewClassifier creates a Classifier that probes links on page.
func NewClassifier(page Page, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		page:    page,
		phrases: dropwatch.DefaultPhrases(),
		settle:  dropwatch.DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify renders url and classifies its body text. Navigation or read
// failures yield VerdictDead; nothing is retried.
func (c *Classifier) Classify(ctx context.Context, url string) dropwatch.Verdict {
	if err := c.page.Navigate(ctx, url); err != nil {
		return dropwatch.VerdictDead
	}
	if err := c.page.Settle(ctx, c.settle); err != nil {
		return dropwatch.VerdictDead
	}
	text, err := c.page.Text(ctx)
	if err != nil {
		return dropwatch.VerdictDead
	}
	return c.phrases.Classify(text)
}
