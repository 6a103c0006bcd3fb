package dropwatch

import (
	"net/url"
	"strings"
)

// Source is one configured origin to monitor: a profile page, a search
// query or a feed URL.
type Source struct {
	// URL is the canonical source URL as configured.
	URL string `json:"url"`

	// Handle is the account name derived from profile URLs on timeline hosts.
	// Mirrors use it to build host-specific queries.
	Handle string `json:"handle,omitempty"`

	// Query is the search term for search URLs.
	Query string `json:"query,omitempty"`
}

// timelineHosts are hosts whose first path segment names an account.
var timelineHosts = map[string]bool{
	"x.com":              true,
	"twitter.com":        true,
	"mobile.x.com":       true,
	"mobile.twitter.com": true,
	"nitter.net":         true,
}

// reservedSegments are first path segments on timeline hosts that are not accounts.
var reservedSegments = map[string]bool{
	"search":  true,
	"i":       true,
	"home":    true,
	"hashtag": true,
	"explore": true,
}

// ParseSource validates raw and derives the source identity tokens.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, Errorf(EINVALID, "source URL required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Source{}, Errorf(EINVALID, "invalid source URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Source{}, Errorf(EINVALID, "source URL %q must be http or https", raw)
	}
	if u.Host == "" {
		return Source{}, Errorf(EINVALID, "source URL %q has no host", raw)
	}

	src := Source{URL: raw}
	if q := u.Query().Get("q"); q != "" {
		src.Query = q
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if timelineHosts[host] || strings.HasPrefix(host, "nitter.") {
		segment, _, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		segment = strings.TrimPrefix(segment, "@")
		if segment != "" && !reservedSegments[strings.ToLower(segment)] {
			src.Handle = segment
		}
	}

	return src, nil
}

// ParseSources parses each raw URL with ParseSource, preserving order.
// Duplicate URLs are dropped.
func ParseSources(raw []string) ([]Source, error) {
	seen := make(map[string]bool, len(raw))
	sources := make([]Source, 0, len(raw))
	for _, r := range raw {
		src, err := ParseSource(r)
		if err != nil {
			return nil, err
		}
		if seen[src.URL] {
			continue
		}
		seen[src.URL] = true
		sources = append(sources, src)
	}
	return sources, nil
}
