package dropwatch

import (
	"context"
	"strings"
)

// Verdict is the outcome of probing a candidate link.
type Verdict string

// Liveness verdicts.
const (
	// VerdictAlive means the link serves content.
	VerdictAlive Verdict = "alive"

	// VerdictDead means the content is gone, empty, password protected,
	// or liveness could not be confirmed.
	VerdictDead Verdict = "dead"

	// VerdictBlocked means the host is rate limiting or banning the caller.
	VerdictBlocked Verdict = "blocked"
)

// DefaultDeadPhrases are rendered-page phrases meaning the content is not
// available to us.
var DefaultDeadPhrases = []string{
	"This content does not exist",
	"The content you are looking for could not be found",
	"No items to display",
	"This content is password protected",
	"This content has been removed",
}

// DefaultBlockPhrases are rendered-page phrases correlated with the host
// rate limiting or banning the caller.
var DefaultBlockPhrases = []string{
	"Your IP has been temporarily blocked",
	"Too many requests",
	"rate limit exceeded",
}

// Phrases holds the text patterns used to classify a rendered page.
// Matching is case-insensitive.
type Phrases struct {
	Dead    []string `json:"dead,omitempty"`
	Blocked []string `json:"blocked,omitempty"`
}

// DefaultPhrases returns the default classification phrases.
func DefaultPhrases() Phrases {
	return Phrases{
		Dead:    append([]string(nil), DefaultDeadPhrases...),
		Blocked: append([]string(nil), DefaultBlockPhrases...),
	}
}

// Classify classifies rendered page text. Block phrases take precedence over
// dead phrases; text matching neither is alive.
func (p Phrases) Classify(text string) Verdict {
	lower := strings.ToLower(text)
	if containsAny(lower, p.Blocked) {
		return VerdictBlocked
	}
	if containsAny(lower, p.Dead) {
		return VerdictDead
	}
	return VerdictAlive
}

// ClassifyText classifies rendered page text using the default phrases.
func ClassifyText(text string) Verdict {
	return DefaultPhrases().Classify(text)
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// LivenessClassifier probes a candidate link and classifies it.
type LivenessClassifier interface {
	// Classify navigates to url and returns exactly one verdict.
	// It never fails: anything that prevents confirming liveness is VerdictDead.
	Classify(ctx context.Context, url string) Verdict
}
