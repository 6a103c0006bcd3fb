package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/dropwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ dropwatch.RunService = (*RunService)(nil)

// RunService implements dropwatch.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run summary with a generated ID.
func (s *RunService) CreateRun(ctx context.Context, r *dropwatch.RunResult) error {
	if r.Status == "" {
		return dropwatch.Errorf(dropwatch.EINVALID, "run status required")
	}
	if r.StartedAt.IsZero() {
		return dropwatch.Errorf(dropwatch.EINVALID, "run start time required")
	}

	r.ID = uuid.New().String()
	finishedAt := r.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = r.StartedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, status, sources, candidates, probed, alive, dead, delivered,
			delivery_failed, blocked_url, ledger_saved, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, string(r.Status), r.Sources, r.Candidates, r.Probed, r.Alive, r.Dead, r.Delivered,
		r.DeliveryFailed, r.BlockedURL, r.LedgerSaved,
		dropwatch.FormatTimestamp(r.StartedAt), dropwatch.FormatTimestamp(finishedAt))

	return err
}

// FindRuns returns up to limit runs, newest first. A limit of zero returns all runs.
func (s *RunService) FindRuns(ctx context.Context, limit int) ([]*dropwatch.RunResult, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, status, sources, candidates, probed, alive, dead, delivered,
		delivery_failed, blocked_url, ledger_saved, started_at, finished_at
		FROM runs ORDER BY started_at DESC, rowid DESC`)
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*dropwatch.RunResult
	for rows.Next() {
		var r dropwatch.RunResult
		var status, startedAt, finishedAt string

		if err := rows.Scan(&r.ID, &status, &r.Sources, &r.Candidates, &r.Probed, &r.Alive, &r.Dead,
			&r.Delivered, &r.DeliveryFailed, &r.BlockedURL, &r.LedgerSaved, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		r.Status = dropwatch.RunStatus(status)

		r.StartedAt, err = parseTimestamp(startedAt, "started_at")
		if err != nil {
			return nil, err
		}
		r.FinishedAt, err = parseTimestamp(finishedAt, "finished_at")
		if err != nil {
			return nil, err
		}

		runs = append(runs, &r)
	}

	return runs, rows.Err()
}
