// Package http provides an HTTP implementation of dropwatch.MirrorFetcher
// for retrieving feed and timeline payloads that don't require JavaScript
// rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/fwojciec/dropwatch"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for each mirror request.
const DefaultFetchTimeout = dropwatch.DefaultTimeout

// DefaultUserAgent is a desktop Chrome user agent. Several feed proxies
// reject requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 16 << 20

// Ensure MirrorFetcher implements dropwatch.MirrorFetcher at compile time.
var _ dropwatch.MirrorFetcher = (*MirrorFetcher)(nil)

// MirrorFetcher retrieves a payload from the first mirror that answers with a
// non-empty 2xx response. It keeps no state between calls other than the
// cookie jar shared by its client.
type MirrorFetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a MirrorFetcher.
type Option func(*MirrorFetcher)

// WithTimeout sets the timeout for each mirror request.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *MirrorFetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent to mirrors.
func WithUserAgent(ua string) Option {
	return func(f *MirrorFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of bytes read from a response body.
func WithMaxBodySize(n int64) Option {
	return func(f *MirrorFetcher) {
		f.maxBodySize = n
	}
}

// NewMirrorFetcher creates a new HTTP-based MirrorFetcher.
func NewMirrorFetcher(opts ...Option) *MirrorFetcher {
	f := &MirrorFetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	// Jar creation only fails on invalid options.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// FetchFirst tries each mirror in order and returns the first usable response.
// A body rejected by accept fails its mirror like a non-2xx status would.
func (f *MirrorFetcher) FetchFirst(ctx context.Context, src dropwatch.Source, mirrors []dropwatch.Mirror, shape dropwatch.RequestFunc, accept dropwatch.AcceptFunc) (*dropwatch.MirrorResponse, error) {
	if shape == nil {
		shape = dropwatch.DefaultRequest
	}

	var resp *dropwatch.MirrorResponse
	_, err := dropwatch.TryMirrors(ctx, mirrors, func(ctx context.Context, m dropwatch.Mirror) error {
		target, err := shape(m, src)
		if err != nil {
			return err
		}
		body, err := f.Fetch(ctx, target)
		if err != nil {
			return err
		}
		if accept != nil {
			if err := accept(body); err != nil {
				return fmt.Errorf("unusable response from %s: %w", target, err)
			}
		}
		resp = &dropwatch.MirrorResponse{Mirror: m, URL: target, Body: body}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Fetch retrieves the body of a single URL. Non-2xx responses and empty
// bodies are errors.
func (f *MirrorFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/html;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(string(body)) == "" {
		return "", fmt.Errorf("empty response from %s", url)
	}

	return string(body), nil
}
