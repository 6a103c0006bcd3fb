package dropwatch

import (
	"context"
	"time"
)

// RunStatus tells the source loop whether to keep going after a source,
// and records how a finished run ended.
type RunStatus string

// Run statuses.
const (
	RunContinue        RunStatus = "continue"
	RunCompleted       RunStatus = "completed"
	RunBudgetExhausted RunStatus = "budget_exhausted"
	RunBlocked         RunStatus = "blocked"
	RunCanceled        RunStatus = "canceled"
)

// Stopped reports whether the status ends the run early.
func (s RunStatus) Stopped() bool {
	return s == RunBudgetExhausted || s == RunBlocked || s == RunCanceled
}

// RunResult summarizes one batch pass.
type RunResult struct {
	ID     string    `json:"id"`
	Status RunStatus `json:"status"`

	Sources        int `json:"sources"`
	Candidates     int `json:"candidates"`
	Probed         int `json:"probed"`
	Alive          int `json:"alive"`
	Dead           int `json:"dead"`
	Delivered      int `json:"delivered"`
	DeliveryFailed int `json:"deliveryFailed"`

	// BlockedURL is the link whose probe detected the block, if any.
	BlockedURL string `json:"blockedUrl,omitempty"`

	// LedgerSaved is true if the seen set changed and was persisted.
	LedgerSaved bool `json:"ledgerSaved"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// RunService records run summaries.
type RunService interface {
	// CreateRun stores r and assigns r.ID.
	CreateRun(ctx context.Context, r *RunResult) error

	// FindRuns returns the most recent runs, newest first.
	FindRuns(ctx context.Context, limit int) ([]*RunResult, error)
}
