package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Verbose     bool
	Getenv      func(string) string
	OpenBrowser BrowserFunc
	Deliveries  *sqlite.DeliveryService
	Runs        dropwatch.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"SQLite database for deliveries and run history" env:"DROPWATCH_DB" default:"data/dropwatch.db"`
	Verbose bool   `short:"v" help:"Log every fetch, probe and delivery"`

	Run        RunCmd        `cmd:"" default:"withargs" help:"Run one batch pass over all sources"`
	History    HistoryCmd    `cmd:"" help:"List recent runs"`
	Deliveries DeliveriesCmd `cmd:"" help:"List delivered links"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Config        string        `short:"c" help:"Source configuration file" env:"DROPWATCH_CONFIG" default:"config/sources.json"`
	Ledger        string        `help:"Seen-links ledger file" env:"DROPWATCH_LEDGER" default:"data/seen_urls.json"`
	Budget        int           `short:"b" help:"Maximum liveness probes per run (0 for unlimited)" env:"DROPWATCH_BUDGET" default:"50"`
	MaxPages      int           `help:"Listing pages to read per source" env:"DROPWATCH_MAX_PAGES" default:"3"`
	Settle        time.Duration `help:"Wait after each navigation before reading the page" env:"DROPWATCH_SETTLE" default:"3s"`
	Timeout       time.Duration `help:"Timeout for each request or navigation" env:"DROPWATCH_TIMEOUT" default:"30s"`
	ProbeInterval time.Duration `help:"Minimum spacing between probes to one host" env:"DROPWATCH_PROBE_INTERVAL" default:"2s"`
	FormURL       string        `help:"Web form that live links are submitted to" env:"DROPWATCH_FORM_URL"`
	DryRun        bool          `short:"n" help:"Classify candidates without delivering or saving the ledger"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"l" default:"10" help:"Number of runs to show"`
}

// DeliveriesCmd is the "deliveries" subcommand.
type DeliveriesCmd struct {
	Limit  int `short:"l" default:"50" help:"Number of rows to show"`
	Offset int `help:"Rows to skip"`
}
