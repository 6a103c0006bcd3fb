package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/run"
)

// newProgressPrinter renders run progress as one line per notable event.
func newProgressPrinter(w io.Writer, logger *slog.Logger) run.ProgressFunc {
	return func(e run.ProgressEvent) {
		switch e.Type {
		case run.ProgressSource:
			fmt.Fprintf(w, "source %s\n", e.Source)
		case run.ProgressCandidates:
			fmt.Fprintf(w, "  %d candidates\n", e.Count)
		case run.ProgressCandidatesFailed:
			logger.Warn("no candidates", "source", e.Source, "err", e.Error)
		case run.ProgressProbed:
			fmt.Fprintf(w, "  %-7s %s\n", e.Verdict, e.URL)
		case run.ProgressDelivered:
			fmt.Fprintf(w, "  delivered %s (row %d)\n", e.URL, e.Row)
		case run.ProgressDeliveryFailed:
			logger.Warn("delivery failed", "url", e.URL, "err", e.Error)
		case run.ProgressBlocked:
			fmt.Fprintf(w, "blocked while probing %s, stopping\n", e.URL)
		case run.ProgressBudgetExhausted:
			fmt.Fprintf(w, "probe budget of %d reached, stopping\n", e.Count)
		case run.ProgressLedgerSaved:
			fmt.Fprintf(w, "ledger saved (%d links)\n", e.Count)
		case run.ProgressRunRecordFailed:
			logger.Warn("failed to record run", "err", e.Error)
		}
	}
}

// printSummary writes the final run counts.
func printSummary(w io.Writer, r *dropwatch.RunResult, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "dry run "
	}
	fmt.Fprintf(w, "%s%s: %d sources, %d candidates, %d probed, %d alive, %d dead, %d delivered",
		prefix, r.Status, r.Sources, r.Candidates, r.Probed, r.Alive, r.Dead, r.Delivered)
	if r.DeliveryFailed > 0 {
		fmt.Fprintf(w, ", %d delivery failures", r.DeliveryFailed)
	}
	fmt.Fprintln(w)
}
