// Package delivery defines the contract every transport implementation
// (HTTP server, worker, etc.) must fulfill so main can run them uniformly.
package delivery

import "context"

// Delivery is a long-running server started by main and stopped through
// its Fx lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
