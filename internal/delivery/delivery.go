// Package delivery defines the contract every transport-facing server
// implements. Servers are collected into an Fx value group and started
// together by the application entrypoint.
package delivery

import "context"

// Delivery is a long-running server bound to one transport.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
