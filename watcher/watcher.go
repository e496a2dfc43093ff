// Package watcher provides change detection for configuration
// sources. It supports polling and subscription (event-driven)
// strategies behind a single interface, plus a noop strategy for
// immutable sources.
package watcher

import "context"

// Type identifies a watcher strategy.
type Type string

// Standard watcher types.
const (
	// TypePolling polls at a fixed interval and compares contents.
	TypePolling Type = "polling"

	// TypeSubscription reacts to change events pushed by the source.
	TypeSubscription Type = "subscription"

	// TypeNoop never reports changes.
	TypeNoop Type = "noop"
)

// Watcher watches for changes and delivers results on a channel.
type Watcher interface {
	// Type returns the watcher strategy identifier.
	Type() Type

	// Start begins watching. Results are sent to the channel
	// returned by Results. Starting a running watcher is a no-op.
	Start(ctx context.Context, cfg Config) error

	// Stop stops watching and closes the results channel. Stopping
	// a stopped watcher is a no-op.
	Stop(ctx context.Context) error

	// Results returns the channel receiving watch results. It
	// returns nil before the first Start.
	Results() <-chan Result
}

// emit delivers r unless the watcher is stopping or ctx is done. It
// reports whether the result was delivered.
func emit(ctx context.Context, results chan<- Result, stop <-chan struct{}, r Result) bool {
	select {
	case results <- r:
		return true
	case <-ctx.Done():
		return false
	case <-stop:
		return false
	}
}
