package main

import (
	"fmt"

	"github.com/fwojciec/dropwatch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dropwatch.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded yet. Use 'dropwatch run' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-16s probed=%d delivered=%d dead=%d\n",
			r.ID, dropwatch.FormatTimestamp(r.StartedAt), r.Status, r.Probed, r.Delivered, r.Dead)
	}

	return nil
}

// Run executes the deliveries command.
func (c *DeliveriesCmd) Run(deps *Dependencies) error {
	records, err := deps.Deliveries.FindDeliveries(deps.Ctx, c.Limit, c.Offset)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dropwatch.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No deliveries yet.")
		return nil
	}

	for _, rec := range records {
		fields := rec.Fields()
		fmt.Fprintf(deps.Stdout, "%d\t%s\t%s\t%s\n", rec.Row, fields[0], fields[1], fields[2])
	}

	return nil
}
