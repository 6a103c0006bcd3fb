package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Page is the subset of browser page behavior the classifier, listing
// strategy and form sink rely on. Session implements it.
type Page interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// Settle waits d for client-side rendering to finish.
	Settle(ctx context.Context, d time.Duration) error

	// Text returns the visible text of the document body.
	Text(ctx context.Context) (string, error)

	// HTML returns the rendered document markup.
	HTML(ctx context.Context) (string, error)

	// ClickFirst clicks the first element matching any selector, tried in
	// order. It reports false if no selector matched.
	ClickFirst(ctx context.Context, selectors ...string) (bool, error)

	// Fill replaces the value of the input matching selector.
	Fill(ctx context.Context, selector, value string) error
}

// Ensure Session implements Page at compile time.
var _ Page = (*Session)(nil)

// Session is one reused browser page. Every operation holds the session
// lock, so concurrent callers serialize instead of interleaving navigations.
type Session struct {
	page    *rod.Page
	timeout time.Duration
	mu      sync.Mutex
}

// Navigate loads url, bounded by the navigation timeout.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	p := s.page.Context(ctx).Timeout(s.timeout)
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("loading %s: %w", url, err)
	}
	return nil
}

// Settle waits d or until ctx is done.
func (s *Session) Settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Text returns the inner text of the body element.
func (s *Session) Text(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.page.Context(ctx).Timeout(s.timeout)
	defer p.CancelTimeout()

	body, err := p.Element("body")
	if err != nil {
		return "", fmt.Errorf("finding body: %w", err)
	}
	text, err := body.Text()
	if err != nil {
		return "", fmt.Errorf("reading body text: %w", err)
	}
	return text, nil
}

// HTML returns the rendered markup of the current document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.page.Context(ctx).Timeout(s.timeout)
	defer p.CancelTimeout()

	html, err := p.HTML()
	if err != nil {
		return "", fmt.Errorf("reading HTML: %w", err)
	}
	return html, nil
}

// ClickFirst clicks the first element matching one of selectors.
func (s *Session) ClickFirst(ctx context.Context, selectors ...string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.page.Context(ctx).Timeout(s.timeout)
	defer p.CancelTimeout()

	for _, sel := range selectors {
		has, el, err := p.Has(sel)
		if err != nil {
			return false, fmt.Errorf("looking up %q: %w", sel, err)
		}
		if !has {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return false, fmt.Errorf("clicking %q: %w", sel, err)
		}
		return true, nil
	}
	return false, nil
}

// Fill types value into the input matching selector, replacing its content.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.page.Context(ctx).Timeout(s.timeout)
	defer p.CancelTimeout()

	el, err := p.Element(selector)
	if err != nil {
		return fmt.Errorf("finding %q: %w", selector, err)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("selecting %q: %w", selector, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("filling %q: %w", selector, err)
	}
	return nil
}

// Close closes the underlying page.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Close()
}
