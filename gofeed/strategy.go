// Package gofeed collects candidate links from RSS, Atom and JSON feeds,
// fetched directly or through feed-conversion proxies, using gofeed.
package gofeed

import (
	"context"
	"strings"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/goquery"
	"github.com/mmcdole/gofeed"
)

// Ensure FeedStrategy implements dropwatch.Strategy at compile time.
var _ dropwatch.Strategy = (*FeedStrategy)(nil)

// FeedStrategy fetches a feed payload from the first available mirror and
// extracts candidate links from it.
type FeedStrategy struct {
	Fetcher dropwatch.MirrorFetcher
	Mirrors []dropwatch.Mirror

	// Request shapes mirror requests. Defaults to dropwatch.DefaultRequest.
	Request dropwatch.RequestFunc
}

// NewFeedStrategy creates a new FeedStrategy.
func NewFeedStrategy(fetcher dropwatch.MirrorFetcher, mirrors []dropwatch.Mirror) *FeedStrategy {
	return &FeedStrategy{Fetcher: fetcher, Mirrors: mirrors}
}

// Name returns the strategy identifier.
func (s *FeedStrategy) Name() string {
	return "feed"
}

// Collect fetches the feed and returns the links it contains. A mirror
// answering with something other than a feed, such as the JavaScript shell
// of a timeline page, fails and the next mirror is tried.
func (s *FeedStrategy) Collect(ctx context.Context, src dropwatch.Source) ([]string, error) {
	resp, err := s.Fetcher.FetchFirst(ctx, src, s.Mirrors, s.Request, AcceptFeed)
	if err != nil {
		return nil, err
	}
	return ExtractFeedLinks(resp.Body), nil
}

// AcceptFeed rejects payloads that do not parse as an RSS, Atom or JSON feed.
func AcceptFeed(body string) error {
	if _, err := gofeed.NewParser().ParseString(body); err != nil {
		return dropwatch.Errorf(dropwatch.EINVALID, "not a feed: %v", err)
	}
	return nil
}

// ExtractFeedLinks returns the candidate links in a feed payload. The raw
// payload is always scanned; when it parses as a feed, item links, entity
// encoded descriptions and contents are scanned as markup too, so that
// links hidden behind redirectors in item HTML are found.
func ExtractFeedLinks(payload string) []string {
	links := dropwatch.ExtractLinks(payload)

	feed, err := gofeed.NewParser().ParseString(payload)
	if err != nil {
		return dropwatch.SortLinks(links)
	}

	for _, item := range feed.Items {
		links = append(links, itemLinks(item)...)
	}
	return dropwatch.SortLinks(links)
}

func itemLinks(item *gofeed.Item) []string {
	var links []string
	for _, l := range append([]string{item.Link}, item.Links...) {
		links = append(links, dropwatch.ExtractLinks(l)...)
	}
	for _, enc := range item.Enclosures {
		links = append(links, dropwatch.ExtractLinks(enc.URL)...)
	}

	for _, markup := range []string{item.Title, item.Description, item.Content} {
		if strings.TrimSpace(markup) == "" {
			continue
		}
		anchors, err := goquery.ExtractAnchorLinks(markup)
		if err != nil {
			links = append(links, dropwatch.ExtractLinks(markup)...)
			continue
		}
		links = append(links, anchors...)
	}
	return links
}
