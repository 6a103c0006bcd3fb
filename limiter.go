package dropwatch

import "context"

// HostLimiter spaces out requests to the same host.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed.
	// Returns an error if ctx is done first.
	Wait(ctx context.Context, host string) error
}
