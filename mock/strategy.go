package mock

import (
	"context"

	"github.com/fwojciec/dropwatch"
)

var _ dropwatch.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of dropwatch.Strategy.
type Strategy struct {
	NameFn    func() string
	CollectFn func(ctx context.Context, src dropwatch.Source) ([]string, error)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *Strategy) Collect(ctx context.Context, src dropwatch.Source) ([]string, error) {
	return s.CollectFn(ctx, src)
}

var _ dropwatch.CandidateSource = (*CandidateSource)(nil)

// CandidateSource is a mock implementation of dropwatch.CandidateSource.
type CandidateSource struct {
	CandidatesFn func(ctx context.Context, src dropwatch.Source) ([]string, error)
}

func (c *CandidateSource) Candidates(ctx context.Context, src dropwatch.Source) ([]string, error) {
	return c.CandidatesFn(ctx, src)
}
