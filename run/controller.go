package run

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/dropwatch"
)

// Controller executes one batch pass over the configured sources.
// Sources are processed strictly in order and candidates strictly in
// sorted order; one probe runs at a time.
type Controller struct {
	Sources    []dropwatch.Source
	Candidates dropwatch.CandidateSource
	Ledger     dropwatch.Ledger
	Classifier dropwatch.LivenessClassifier
	Sink       dropwatch.Sink

	// Limiter, if set, paces probes per link host.
	Limiter dropwatch.HostLimiter

	// Runs, if set, records the run summary.
	Runs dropwatch.RunService

	// Budget is the maximum number of probes. Zero or less means unlimited.
	Budget int

	// DryRun classifies candidates without delivering or saving the ledger.
	DryRun bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Progress, if set, receives events as the run proceeds.
	Progress ProgressFunc
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type    ProgressType
	Source  string
	URL     string
	Verdict dropwatch.Verdict
	Row     int
	Count   int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressSource is emitted when a source is about to be processed.
	ProgressSource ProgressType = iota
	// ProgressCandidates carries the number of candidates found for a source.
	ProgressCandidates
	// ProgressCandidatesFailed means no candidates could be gathered for a source.
	ProgressCandidatesFailed
	// ProgressProbed carries the verdict of one probe.
	ProgressProbed
	// ProgressDelivered carries the sink row of a delivered link.
	ProgressDelivered
	// ProgressDeliveryFailed means the sink rejected a live link.
	ProgressDeliveryFailed
	// ProgressBlocked means a probe detected blocking and the run stops.
	ProgressBlocked
	// ProgressBudgetExhausted carries the probe count that hit the budget.
	ProgressBudgetExhausted
	// ProgressLedgerSaved carries the size of the saved seen set.
	ProgressLedgerSaved
	// ProgressRunRecordFailed means the run summary could not be stored.
	ProgressRunRecordFailed
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run loads the ledger, processes every source until a policy stop and
// saves the ledger if it changed. The ledger is saved on early stops and
// after cancellation too.
//
// Errors are returned for ledger load or save failures and for context
// cancellation; the result is non-nil whenever the ledger was loaded.
func (c *Controller) Run(ctx context.Context) (*dropwatch.RunResult, error) {
	result := &dropwatch.RunResult{
		Sources:   len(c.Sources),
		StartedAt: c.now(),
	}

	seen, err := c.Ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	status := dropwatch.RunContinue
	var runErr error
	for _, src := range c.Sources {
		status, runErr = c.runSource(ctx, src, seen, result)
		if status.Stopped() {
			break
		}
	}
	if status == dropwatch.RunContinue {
		status = dropwatch.RunCompleted
	}
	result.Status = status

	if seen.Changed() && !c.DryRun {
		// Probes already made must not be repeated, even if ctx is done.
		if err := c.Ledger.Save(context.WithoutCancel(ctx), seen); err != nil {
			result.FinishedAt = c.now()
			return result, fmt.Errorf("saving ledger: %w", err)
		}
		result.LedgerSaved = true
		c.emit(ProgressEvent{Type: ProgressLedgerSaved, Count: seen.Len()})
	}

	result.FinishedAt = c.now()

	if c.Runs != nil && !c.DryRun {
		if err := c.Runs.CreateRun(context.WithoutCancel(ctx), result); err != nil {
			c.emit(ProgressEvent{Type: ProgressRunRecordFailed, Error: err})
		}
	}

	return result, runErr
}

// runSource processes one source and reports whether the run should go on.
func (c *Controller) runSource(ctx context.Context, src dropwatch.Source, seen *dropwatch.SeenSet, result *dropwatch.RunResult) (dropwatch.RunStatus, error) {
	if err := ctx.Err(); err != nil {
		return dropwatch.RunCanceled, err
	}
	c.emit(ProgressEvent{Type: ProgressSource, Source: src.URL})

	candidates, err := c.Candidates.Candidates(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return dropwatch.RunCanceled, ctx.Err()
		}
		c.emit(ProgressEvent{Type: ProgressCandidatesFailed, Source: src.URL, Error: err})
		return dropwatch.RunContinue, nil
	}
	result.Candidates += len(candidates)
	c.emit(ProgressEvent{Type: ProgressCandidates, Source: src.URL, Count: len(candidates)})

	for _, link := range candidates {
		if seen.Has(link) {
			continue
		}

		if c.Budget > 0 && result.Probed >= c.Budget {
			c.emit(ProgressEvent{Type: ProgressBudgetExhausted, Source: src.URL, URL: link, Count: result.Probed})
			return dropwatch.RunBudgetExhausted, nil
		}

		if err := c.pace(ctx, link); err != nil {
			return dropwatch.RunCanceled, err
		}

		verdict := c.Classifier.Classify(ctx, link)
		if err := ctx.Err(); err != nil {
			// An interrupted probe proves nothing about the link.
			return dropwatch.RunCanceled, err
		}
		result.Probed++
		c.emit(ProgressEvent{Type: ProgressProbed, Source: src.URL, URL: link, Verdict: verdict})

		switch verdict {
		case dropwatch.VerdictBlocked:
			result.BlockedURL = link
			c.emit(ProgressEvent{Type: ProgressBlocked, Source: src.URL, URL: link})
			return dropwatch.RunBlocked, nil
		case dropwatch.VerdictAlive:
			result.Alive++
			c.deliver(ctx, src, link, seen, result)
		default:
			result.Dead++
			seen.Add(link)
		}
	}

	return dropwatch.RunContinue, nil
}

// deliver appends a live link to the sink. The link joins the seen set
// only once the sink accepted it.
func (c *Controller) deliver(ctx context.Context, src dropwatch.Source, link string, seen *dropwatch.SeenSet, result *dropwatch.RunResult) {
	if c.DryRun {
		seen.Add(link)
		return
	}

	rec := &dropwatch.DeliveryRecord{
		Timestamp: c.now(),
		Link:      link,
		Source:    src.URL,
	}
	if err := c.Sink.Append(ctx, rec); err != nil {
		result.DeliveryFailed++
		c.emit(ProgressEvent{Type: ProgressDeliveryFailed, Source: src.URL, URL: link, Error: err})
		return
	}

	seen.Add(link)
	result.Delivered++
	c.emit(ProgressEvent{Type: ProgressDelivered, Source: src.URL, URL: link, Row: rec.Row})
}

func (c *Controller) pace(ctx context.Context, link string) error {
	if c.Limiter == nil {
		return nil
	}
	host := link
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host = u.Hostname()
	}
	return c.Limiter.Wait(ctx, host)
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Controller) emit(e ProgressEvent) {
	if c.Progress != nil {
		c.Progress(e)
	}
}
