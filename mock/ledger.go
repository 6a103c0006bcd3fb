package mock

import (
	"context"

	"github.com/fwojciec/dropwatch"
)

var _ dropwatch.Ledger = (*Ledger)(nil)

// Ledger is a mock implementation of dropwatch.Ledger.
type Ledger struct {
	LoadFn func(ctx context.Context) (*dropwatch.SeenSet, error)
	SaveFn func(ctx context.Context, s *dropwatch.SeenSet) error
}

func (l *Ledger) Load(ctx context.Context) (*dropwatch.SeenSet, error) {
	return l.LoadFn(ctx)
}

func (l *Ledger) Save(ctx context.Context, s *dropwatch.SeenSet) error {
	return l.SaveFn(ctx, s)
}
