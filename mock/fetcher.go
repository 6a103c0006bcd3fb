package mock

import (
	"context"

	"github.com/fwojciec/dropwatch"
)

var _ dropwatch.MirrorFetcher = (*MirrorFetcher)(nil)

// MirrorFetcher is a mock implementation of dropwatch.MirrorFetcher.
type MirrorFetcher struct {
	FetchFirstFn func(ctx context.Context, src dropwatch.Source, mirrors []dropwatch.Mirror, shape dropwatch.RequestFunc, accept dropwatch.AcceptFunc) (*dropwatch.MirrorResponse, error)
}

func (f *MirrorFetcher) FetchFirst(ctx context.Context, src dropwatch.Source, mirrors []dropwatch.Mirror, shape dropwatch.RequestFunc, accept dropwatch.AcceptFunc) (*dropwatch.MirrorResponse, error) {
	return f.FetchFirstFn(ctx, src, mirrors, shape, accept)
}
