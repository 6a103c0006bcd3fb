// Package goquery extracts candidate links from HTML markup using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dropwatch"
)

// redirectParams are query parameters redirectors use to carry the real target.
var redirectParams = []string{"url", "u", "q", "target", "dest", "link", "to", "redirect"}

// anchorAttrs are attributes that may carry the expanded target of an anchor.
var anchorAttrs = []string{"href", "data-expanded-url", "data-url", "title"}

// ExtractAnchorLinks returns the unique candidate links found in html.
// It scans anchor targets and texts, follows redirector URLs that carry the
// real link in a query parameter, and also scans the raw markup so links in
// inline scripts and plain text are found. Order is unspecified.
func ExtractAnchorLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dropwatch.Errorf(dropwatch.EINVALID, "failed to parse HTML: %v", err)
	}

	var found []string
	found = append(found, dropwatch.ExtractLinks(html)...)

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range anchorAttrs {
			value, exists := sel.Attr(attr)
			if !exists || value == "" {
				continue
			}
			found = append(found, linksFromTarget(value)...)
		}
		found = append(found, dropwatch.ExtractLinks(sel.Text())...)
	})

	return dedupe(found), nil
}

// linksFromTarget scans an anchor target, decoding redirector parameters.
func linksFromTarget(target string) []string {
	if isNonHTTPLink(target) {
		return nil
	}

	links := dropwatch.ExtractLinks(target)
	for _, inner := range redirectTargets(target) {
		links = append(links, dropwatch.ExtractLinks(inner)...)
	}
	return links
}

// redirectTargets returns the decoded values of redirector query parameters
// in target. Values that are themselves redirectors are unwrapped once more.
func redirectTargets(target string) []string {
	var out []string
	for depth := 0; depth < 2; depth++ {
		u, err := url.Parse(strings.TrimSpace(target))
		if err != nil {
			return out
		}
		query := u.Query()

		next := ""
		for _, p := range redirectParams {
			v := query.Get(p)
			if v == "" {
				continue
			}
			out = append(out, v)
			if next == "" {
				next = v
			}
		}
		if next == "" {
			return out
		}
		target = next
	}
	return out
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func dedupe(links []string) []string {
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
