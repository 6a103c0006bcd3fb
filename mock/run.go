package mock

import (
	"context"

	"github.com/fwojciec/dropwatch"
)

var _ dropwatch.RunService = (*RunService)(nil)

// RunService is a mock implementation of dropwatch.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, r *dropwatch.RunResult) error
	FindRunsFn  func(ctx context.Context, limit int) ([]*dropwatch.RunResult, error)
}

func (s *RunService) CreateRun(ctx context.Context, r *dropwatch.RunResult) error {
	return s.CreateRunFn(ctx, r)
}

func (s *RunService) FindRuns(ctx context.Context, limit int) ([]*dropwatch.RunResult, error) {
	return s.FindRunsFn(ctx, limit)
}

var _ dropwatch.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of dropwatch.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
