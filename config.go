package dropwatch

import "time"

// Config is process-wide configuration, loaded once at startup and passed
// explicitly to the components that need it.
type Config struct {
	Sources []Source

	FeedMirrors    []Mirror
	HTMLMirrors    []Mirror
	ListingMirrors []Mirror

	Phrases Phrases

	// Budget is the maximum number of liveness probes per run. Zero means unlimited.
	Budget int

	// MaxPages bounds "load more" paging on listing mirrors.
	MaxPages int

	// SettleDelay is the fixed wait after navigating before reading a page.
	SettleDelay time.Duration

	// Timeout bounds each network round-trip or navigation.
	Timeout time.Duration

	// ProbeInterval is the minimum spacing between probes to the same host.
	ProbeInterval time.Duration
}

// Defaults for Config fields.
const (
	DefaultBudget        = 50
	DefaultMaxPages      = 3
	DefaultSettleDelay   = 3 * time.Second
	DefaultTimeout       = 30 * time.Second
	DefaultProbeInterval = 2 * time.Second
)

// DefaultFeedMirrors returns the default feed mirror chain. The first entry
// fetches the configured source URL itself, so plain RSS sources need no proxy.
func DefaultFeedMirrors() []Mirror {
	return []Mirror{
		{Name: "direct", Path: "{rawurl}"},
		{Name: "rsshub", BaseURL: "https://rsshub.app", Path: "/twitter/user/{handle}"},
		{Name: "rsshub-rssforever", BaseURL: "https://rsshub.rssforever.com", Path: "/twitter/user/{handle}"},
	}
}

// DefaultHTMLMirrors returns the default lightweight HTML timeline mirrors.
func DefaultHTMLMirrors() []Mirror {
	return []Mirror{
		{Name: "nitter.net", BaseURL: "https://nitter.net", Path: "/{handle}"},
		{Name: "nitter.poast.org", BaseURL: "https://nitter.poast.org", Path: "/{handle}"},
		{Name: "xcancel", BaseURL: "https://xcancel.com", Path: "/{handle}"},
	}
}

// DefaultListingMirrors returns the default interactive search mirrors.
func DefaultListingMirrors() []Mirror {
	return []Mirror{
		{Name: "nitter.net-search", BaseURL: "https://nitter.net", Path: "/search?f=tweets&q=gofile.io%2Fd+from%3A{handle}"},
		{Name: "xcancel-search", BaseURL: "https://xcancel.com", Path: "/search?f=tweets&q=gofile.io%2Fd+from%3A{handle}"},
	}
}

// NewConfig returns a Config for sources with every other field defaulted.
func NewConfig(sources []Source) *Config {
	return &Config{
		Sources:        sources,
		FeedMirrors:    DefaultFeedMirrors(),
		HTMLMirrors:    DefaultHTMLMirrors(),
		ListingMirrors: DefaultListingMirrors(),
		Phrases:        DefaultPhrases(),
		Budget:         DefaultBudget,
		MaxPages:       DefaultMaxPages,
		SettleDelay:    DefaultSettleDelay,
		Timeout:        DefaultTimeout,
		ProbeInterval:  DefaultProbeInterval,
	}
}

// Validate returns an error if the configuration cannot drive a run.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return Errorf(EINVALID, "at least one source required")
	}
	if c.Budget < 0 {
		return Errorf(EINVALID, "budget must not be negative")
	}
	if c.MaxPages < 1 {
		return Errorf(EINVALID, "max pages must be at least 1")
	}
	return nil
}
