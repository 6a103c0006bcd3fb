package dropwatch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Mirror is one of several interchangeable endpoints implementing the same
// capability (feed conversion or content listing). Mirrors are tried in
// list order; position in the list is the preference.
type Mirror struct {
	// Name identifies the mirror in logs. Defaults to the base URL.
	Name string `json:"name,omitempty"`

	// BaseURL is prepended to the expanded Path.
	BaseURL string `json:"base"`

	// Path is a request template. It may reference {handle}, {query},
	// {url} (query-escaped source URL) and {rawurl} (source URL as is).
	Path string `json:"path"`
}

// String returns the mirror name, falling back to the base URL.
func (m Mirror) String() string {
	if m.Name != "" {
		return m.Name
	}
	if m.BaseURL != "" {
		return m.BaseURL
	}
	return m.Path
}

// Request expands the mirror template for src and returns the request URL.
// Returns EINVALID if the template needs an identity token src lacks.
func (m Mirror) Request(src Source) (string, error) {
	if strings.Contains(m.Path, "{handle}") && src.Handle == "" {
		return "", Errorf(EINVALID, "mirror %s needs a handle, source %s has none", m, src.URL)
	}
	if strings.Contains(m.Path, "{query}") && src.Query == "" {
		return "", Errorf(EINVALID, "mirror %s needs a query, source %s has none", m, src.URL)
	}

	r := strings.NewReplacer(
		"{handle}", url.PathEscape(src.Handle),
		"{query}", url.QueryEscape(src.Query),
		"{url}", url.QueryEscape(src.URL),
		"{rawurl}", src.URL,
	)
	path := r.Replace(m.Path)
	target := path
	if m.BaseURL != "" {
		target = strings.TrimSuffix(m.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	}

	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", Errorf(EINVALID, "mirror %s produced invalid URL %q", m, target)
	}
	return target, nil
}

// RequestFunc shapes a mirror-specific request URL for a source.
type RequestFunc func(m Mirror, src Source) (string, error)

// DefaultRequest expands the mirror's own template.
func DefaultRequest(m Mirror, src Source) (string, error) {
	return m.Request(src)
}

// AcceptFunc reports why a mirror's body cannot be used by the caller.
// A non-nil error fails that mirror and the chain moves on.
type AcceptFunc func(body string) error

// MirrorResponse is the first usable response of a mirror chain.
type MirrorResponse struct {
	Mirror Mirror
	URL    string
	Body   string
}

// MirrorFetcher retrieves a payload for a source from the first mirror that
// returns a usable response.
type MirrorFetcher interface {
	// FetchFirst tries mirrors strictly in order and returns the first usable
	// response: a non-empty 2xx body that accept, if non-nil, does not reject.
	// A failing mirror is skipped, never retried.
	// Returns EUNAVAILABLE if every mirror failed.
	FetchFirst(ctx context.Context, src Source, mirrors []Mirror, shape RequestFunc, accept AcceptFunc) (*MirrorResponse, error)
}

// TryMirrors calls attempt for each mirror in order until one succeeds and
// returns that mirror. Failures are non-fatal and advance to the next mirror;
// the first success short-circuits the rest of the list. If every mirror
// failed, the returned error has code EUNAVAILABLE and wraps each cause.
// Context cancellation stops the chain and returns the context error.
func TryMirrors(ctx context.Context, mirrors []Mirror, attempt func(ctx context.Context, m Mirror) error) (Mirror, error) {
	if len(mirrors) == 0 {
		return Mirror{}, Errorf(EUNAVAILABLE, "no mirrors configured")
	}

	errs := make([]error, 0, len(mirrors))
	for _, m := range mirrors {
		if err := ctx.Err(); err != nil {
			return Mirror{}, err
		}
		err := attempt(ctx, m)
		if err == nil {
			return m, nil
		}
		if ctx.Err() != nil {
			return Mirror{}, ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%s: %w", m, err))
	}

	return Mirror{}, &exhaustedError{
		app:   Errorf(EUNAVAILABLE, "all %d mirrors failed", len(mirrors)),
		cause: errors.Join(errs...),
	}
}

// exhaustedError carries the per-mirror causes behind an EUNAVAILABLE error.
type exhaustedError struct {
	app   *Error
	cause error
}

func (e *exhaustedError) Error() string {
	return e.app.Message + ": " + e.cause.Error()
}

func (e *exhaustedError) Unwrap() []error {
	return []error{e.app, e.cause}
}
