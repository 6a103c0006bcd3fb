package rod_test

import (
	"context"
	"time"
)

// fakePage is a scripted rod.Page for tests that don't need a browser.
type fakePage struct {
	NavigateFn   func(ctx context.Context, url string) error
	SettleFn     func(ctx context.Context, d time.Duration) error
	TextFn       func(ctx context.Context) (string, error)
	HTMLFn       func(ctx context.Context) (string, error)
	ClickFirstFn func(ctx context.Context, selectors ...string) (bool, error)
	FillFn       func(ctx context.Context, selector, value string) error
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	return p.NavigateFn(ctx, url)
}

func (p *fakePage) Settle(ctx context.Context, d time.Duration) error {
	if p.SettleFn == nil {
		return nil
	}
	return p.SettleFn(ctx, d)
}

func (p *fakePage) Text(ctx context.Context) (string, error) {
	return p.TextFn(ctx)
}

func (p *fakePage) HTML(ctx context.Context) (string, error) {
	return p.HTMLFn(ctx)
}

func (p *fakePage) ClickFirst(ctx context.Context, selectors ...string) (bool, error) {
	return p.ClickFirstFn(ctx, selectors...)
}

func (p *fakePage) Fill(ctx context.Context, selector, value string) error {
	return p.FillFn(ctx, selector, value)
}
