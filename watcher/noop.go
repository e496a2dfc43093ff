package watcher

import (
	"context"
	"sync"
)

// noopWatcher implements Watcher but never reports changes. It serves
// immutable sources, making "watching is unnecessary" explicit
// instead of an error.
type noopWatcher struct {
	mu      sync.Mutex
	running bool
	results chan Result
}

// NewNoop returns a Watcher that never fires.
func NewNoop() Watcher {
	return &noopWatcher{}
}

// Type returns the watcher strategy identifier.
func (w *noopWatcher) Type() Type {
	return TypeNoop
}

// Start creates the results channel. Nothing is ever sent to it.
func (w *noopWatcher) Start(ctx context.Context, cfg Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	w.running = true
	w.results = make(chan Result)
	return nil
}

// Stop closes the results channel.
func (w *noopWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	w.running = false
	close(w.results)
	return nil
}

// Results returns the channel receiving watch results. For a noop
// watcher it never receives any.
func (w *noopWatcher) Results() <-chan Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results
}
