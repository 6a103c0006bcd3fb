// Package run orchestrates one batch pass: gathering candidate links for
// each source, probing unseen ones and delivering those that are alive.
package run

import (
	"context"
	"slices"

	"github.com/fwojciec/dropwatch"
)

var _ dropwatch.CandidateSource = (*Aggregator)(nil)

// Aggregator unions the candidates of several strategies. A failing
// strategy does not fail the aggregate; it is reported to OnError and
// the remaining strategies still run.
type Aggregator struct {
	Strategies []dropwatch.Strategy

	// OnError, if set, receives each strategy failure.
	OnError func(strategy string, src dropwatch.Source, err error)
}

// NewAggregator creates an Aggregator over strategies, run in order.
func NewAggregator(strategies ...dropwatch.Strategy) *Aggregator {
	return &Aggregator{Strategies: strategies}
}

// Candidates returns the sorted, deduplicated, normalized links found by
// all strategies for src. It fails only if ctx is done.
func (a *Aggregator) Candidates(ctx context.Context, src dropwatch.Source) ([]string, error) {
	var all []string
	for _, s := range a.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		links, err := s.Collect(ctx, src)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if a.OnError != nil {
				a.OnError(s.Name(), src, err)
			}
			continue
		}
		all = append(all, links...)
	}

	return normalized(all), nil
}

// normalized keeps only well-formed candidate links, in canonical form.
func normalized(links []string) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if n, ok := dropwatch.NormalizeLink(l); ok {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
