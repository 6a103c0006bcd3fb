// Package rod drives a headless Chrome browser for the parts of a run that
// need rendered pages: probing candidate links, paging through interactive
// listing mirrors and submitting live links to a web form.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/dropwatch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultUserAgent is a desktop Chrome user agent. File hosts and timeline
// mirrors serve degraded pages to obvious headless agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Default viewport size.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Browser owns one Chrome process. Pages opened from it share a single
// browsing context, so cookies set while browsing a mirror are visible to
// the classifier and the form sink.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	userAgent string
	width     int
	height    int
	timeout   time.Duration
	headless  bool

	mu     sync.Mutex
	closed atomic.Bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithUserAgent sets the user agent of every session.
func WithUserAgent(ua string) BrowserOption {
	return func(b *Browser) {
		b.userAgent = ua
	}
}

// WithViewport sets the viewport size of every session.
func WithViewport(width, height int) BrowserOption {
	return func(b *Browser) {
		b.width = width
		b.height = height
	}
}

// WithNavigationTimeout bounds each navigation and page read.
// Defaults to dropwatch.DefaultTimeout (30s) if not specified.
func WithNavigationTimeout(d time.Duration) BrowserOption {
	return func(b *Browser) {
		b.timeout = d
	}
}

// WithHeadless controls whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) BrowserOption {
	return func(b *Browser) {
		b.headless = headless
	}
}

// NewBrowser launches Chrome (finding or downloading it as needed).
// Close must be called when the Browser is no longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{
		userAgent: DefaultUserAgent,
		width:     DefaultViewportWidth,
		height:    DefaultViewportHeight,
		timeout:   dropwatch.DefaultTimeout,
		headless:  true,
	}
	for _, opt := range opts {
		opt(b)
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(b.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, dropwatch.Errorf(dropwatch.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, dropwatch.Errorf(dropwatch.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	b.browser = browser
	b.launcher = lnchr
	return b, nil
}

// NewSession opens a new page with the configured identity.
func (b *Browser) NewSession() (*Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed.Load() {
		return nil, fmt.Errorf("browser is closed")
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("setting user agent: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             b.width,
		Height:            b.height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("setting viewport: %w", err)
	}

	return &Session{page: page, timeout: b.timeout}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
