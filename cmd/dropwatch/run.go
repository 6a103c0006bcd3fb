package main

import (
	"fmt"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/fs"
	"github.com/fwojciec/dropwatch/gofeed"
	"github.com/fwojciec/dropwatch/goquery"
	dwhttp "github.com/fwojciec/dropwatch/http"
	"github.com/fwojciec/dropwatch/rod"
	"github.com/fwojciec/dropwatch/run"
	dwslog "github.com/fwojciec/dropwatch/slog"
)

// Run executes one batch pass.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg, err := fs.LoadConfig(c.Config)
	if err != nil {
		if dropwatch.ErrorCode(err) == dropwatch.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "Hint: create %s or pass --config\n", c.Config)
		}
		return err
	}
	cfg.Budget = c.Budget
	cfg.MaxPages = c.MaxPages
	cfg.SettleDelay = c.Settle
	cfg.Timeout = c.Timeout
	cfg.ProbeInterval = c.ProbeInterval
	if err := cfg.Validate(); err != nil {
		return err
	}

	creds, err := dropwatch.ParseCredentials(deps.Getenv(dropwatch.CredentialsEnv))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: set %s to the sink credentials JSON (a .env file works too)\n", dropwatch.CredentialsEnv)
		return err
	}
	deps.Logger.Debug("credentials loaded", "fingerprint", creds.Fingerprint())

	browser, err := deps.OpenBrowser(rod.WithNavigationTimeout(cfg.Timeout))
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.OpenPage()
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}

	var sink dropwatch.Sink = deps.Deliveries
	if c.FormURL != "" {
		formPage, err := browser.OpenPage()
		if err != nil {
			return fmt.Errorf("failed to open form page: %w", err)
		}
		sink = rod.NewFormSink(formPage, c.FormURL, sink, rod.WithFormSettle(cfg.SettleDelay))
	}

	fetcher := dwhttp.NewMirrorFetcher(dwhttp.WithTimeout(cfg.Timeout))
	strategies := []dropwatch.Strategy{
		gofeed.NewFeedStrategy(fetcher, cfg.FeedMirrors),
		goquery.NewHTMLStrategy(fetcher, cfg.HTMLMirrors),
		rod.NewListingStrategy(page, cfg.ListingMirrors,
			rod.WithMaxPages(cfg.MaxPages),
			rod.WithListingSettle(cfg.SettleDelay),
		),
	}

	ledger := fs.NewLedger(c.Ledger)
	var runLedger dropwatch.Ledger = ledger
	var classifier dropwatch.LivenessClassifier = rod.NewClassifier(page,
		rod.WithPhrases(cfg.Phrases),
		rod.WithSettleDelay(cfg.SettleDelay),
	)

	if deps.Verbose {
		for i, s := range strategies {
			strategies[i] = dwslog.NewLoggingStrategy(s, deps.Logger)
		}
		classifier = rod.NewLoggingClassifier(classifier, deps.Logger)
		sink = dwslog.NewLoggingSink(sink, deps.Logger)
		runLedger = dwslog.NewLoggingLedger(runLedger, deps.Logger)
	}

	aggregator := run.NewAggregator(strategies...)
	aggregator.OnError = func(strategy string, src dropwatch.Source, err error) {
		deps.Logger.Warn("strategy failed", "strategy", strategy, "source", src.URL, "err", err)
	}

	ctrl := &run.Controller{
		Sources:    cfg.Sources,
		Candidates: aggregator,
		Ledger:     runLedger,
		Classifier: classifier,
		Sink:       sink,
		Limiter:    run.NewHostLimiter(cfg.ProbeInterval),
		Runs:       deps.Runs,
		Budget:     cfg.Budget,
		DryRun:     c.DryRun,
		Progress:   newProgressPrinter(deps.Stdout, deps.Logger),
	}

	result, err := ctrl.Run(deps.Ctx)
	if ledger.Corrupt() {
		deps.Logger.Warn("ledger was unreadable, started from an empty set", "path", ledger.Path())
	}
	if result != nil {
		printSummary(deps.Stdout, result, c.DryRun)
	}
	return err
}
