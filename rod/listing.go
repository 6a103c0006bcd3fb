package rod

import (
	"context"
	"time"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/goquery"
)

// DefaultLoadMoreSelectors match the "load more" controls of common
// timeline mirrors, tried in order.
var DefaultLoadMoreSelectors = []string{
	".show-more a",
	`a[href*="cursor="]`,
	"button[data-load-more]",
}

// Ensure ListingStrategy implements dropwatch.Strategy at compile time.
var _ dropwatch.Strategy = (*ListingStrategy)(nil)

// ListingStrategy collects candidates from interactive listing mirrors by
// rendering the listing and following its "load more" control.
type ListingStrategy struct {
	page      Page
	mirrors   []dropwatch.Mirror
	maxPages  int
	settle    time.Duration
	selectors []string
}

// ListingOption configures a ListingStrategy.
type ListingOption func(*ListingStrategy)

// WithMaxPages bounds the number of listing pages read per source,
// including the first. Defaults to dropwatch.DefaultMaxPages.
func WithMaxPages(n int) ListingOption {
	return func(s *ListingStrategy) {
		s.maxPages = n
	}
}

// WithListingSettle sets the wait after each navigation or click.
func WithListingSettle(d time.Duration) ListingOption {
	return func(s *ListingStrategy) {
		s.settle = d
	}
}

// WithLoadMoreSelectors overrides the "load more" selectors.
func WithLoadMoreSelectors(selectors ...string) ListingOption {
	return func(s *ListingStrategy) {
		s.selectors = selectors
	}
}

// NewListingStrategy creates a ListingStrategy over mirrors, browsing on page.
func NewListingStrategy(page Page, mirrors []dropwatch.Mirror, opts ...ListingOption) *ListingStrategy {
	s := &ListingStrategy{
		page:      page,
		mirrors:   mirrors,
		maxPages:  dropwatch.DefaultMaxPages,
		settle:    dropwatch.DefaultSettleDelay,
		selectors: DefaultLoadMoreSelectors,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "listing".
func (s *ListingStrategy) Name() string {
	return "listing"
}

// Collect renders the first mirror that navigates successfully and returns
// the sorted links found across up to maxPages listing pages. Paging stops
// early, without error, when no control is found or a click fails.
func (s *ListingStrategy) Collect(ctx context.Context, src dropwatch.Source) ([]string, error) {
	var links []string
	_, err := dropwatch.TryMirrors(ctx, s.mirrors, func(ctx context.Context, m dropwatch.Mirror) error {
		target, err := m.Request(src)
		if err != nil {
			return err
		}
		if err := s.page.Navigate(ctx, target); err != nil {
			return err
		}
		if err := s.page.Settle(ctx, s.settle); err != nil {
			return err
		}
		html, err := s.page.HTML(ctx)
		if err != nil {
			return err
		}
		found, err := goquery.ExtractAnchorLinks(html)
		if err != nil {
			return err
		}
		links = append(links[:0], found...)

		s.loadMore(ctx, &links)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dropwatch.SortLinks(links), nil
}

// loadMore clicks through additional listing pages, appending their links.
func (s *ListingStrategy) loadMore(ctx context.Context, links *[]string) {
	for page := 1; page < s.maxPages; page++ {
		clicked, err := s.page.ClickFirst(ctx, s.selectors...)
		if err != nil || !clicked {
			return
		}
		if err := s.page.Settle(ctx, s.settle); err != nil {
			return
		}
		html, err := s.page.HTML(ctx)
		if err != nil {
			return
		}
		found, err := goquery.ExtractAnchorLinks(html)
		if err != nil {
			return
		}
		*links = append(*links, found...)
	}
}
