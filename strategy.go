package dropwatch

import "context"

// Strategy is one way of fetching candidate links for a source, such as a
// feed-conversion proxy, a rendered listing page or a plain HTML timeline.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Collect returns the candidate links found for src.
	// Returns EUNAVAILABLE if every mirror of the strategy failed.
	Collect(ctx context.Context, src Source) ([]string, error)
}

// CandidateSource produces the sorted candidate set for a source.
type CandidateSource interface {
	Candidates(ctx context.Context, src Source) ([]string, error)
}
