package goquery

import (
	"context"

	"github.com/fwojciec/dropwatch"
)

// Ensure HTMLStrategy implements dropwatch.Strategy at compile time.
var _ dropwatch.Strategy = (*HTMLStrategy)(nil)

// HTMLStrategy collects candidate links from a lightweight HTML timeline
// served by the first available mirror.
type HTMLStrategy struct {
	Fetcher dropwatch.MirrorFetcher
	Mirrors []dropwatch.Mirror

	// Request shapes mirror requests. Defaults to dropwatch.DefaultRequest.
	Request dropwatch.RequestFunc
}

// NewHTMLStrategy creates a new HTMLStrategy.
func NewHTMLStrategy(fetcher dropwatch.MirrorFetcher, mirrors []dropwatch.Mirror) *HTMLStrategy {
	return &HTMLStrategy{Fetcher: fetcher, Mirrors: mirrors}
}

// Name returns the strategy identifier.
func (s *HTMLStrategy) Name() string {
	return "html"
}

// Collect fetches the timeline page and extracts anchor links from it.
func (s *HTMLStrategy) Collect(ctx context.Context, src dropwatch.Source) ([]string, error) {
	resp, err := s.Fetcher.FetchFirst(ctx, src, s.Mirrors, s.Request, nil)
	if err != nil {
		return nil, err
	}
	return ExtractAnchorLinks(resp.Body)
}
