package mock

import (
	"context"

	"github.com/fwojciec/dropwatch"
)

var _ dropwatch.Sink = (*Sink)(nil)

// Sink is a mock implementation of dropwatch.Sink.
type Sink struct {
	AppendFn func(ctx context.Context, rec *dropwatch.DeliveryRecord) error
	RowsFn   func(ctx context.Context) (int, error)
}

func (s *Sink) Append(ctx context.Context, rec *dropwatch.DeliveryRecord) error {
	return s.AppendFn(ctx, rec)
}

func (s *Sink) Rows(ctx context.Context) (int, error) {
	return s.RowsFn(ctx)
}
