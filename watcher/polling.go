package watcher

import (
	"context"
	"sync"
	"time"
)

// pollingWatcher fetches content at a fixed interval and emits a
// Result whenever it differs from the previously fetched content.
type pollingWatcher struct {
	fetch FetchFunc

	mu      sync.Mutex
	running bool
	results chan Result
	stopCh  chan struct{}
	done    chan struct{}
}

// NewPolling returns a polling Watcher reading content via fetch.
// The first fetch after Start establishes the baseline and is not
// emitted as a change.
func NewPolling(fetch FetchFunc) Watcher {
	return &pollingWatcher{fetch: fetch}
}

// Type returns the watcher strategy identifier.
func (w *pollingWatcher) Type() Type {
	return TypePolling
}

// Start begins polling with the given configuration.
func (w *pollingWatcher) Start(ctx context.Context, cfg Config) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	cfg.applyDefaults()
	w.running = true
	w.results = make(chan Result)
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})
	results, stopCh, done := w.results, w.stopCh, w.done
	w.mu.Unlock()

	go func() {
		defer close(done)

		prev, err := w.fetch(ctx)
		if err != nil {
			if !emit(ctx, results, stopCh, Result{Error: err}) {
				return
			}
			prev = nil
		}

		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
			}

			data, err := w.fetch(ctx)
			if err != nil {
				if !emit(ctx, results, stopCh, Result{Error: err}) {
					return
				}
				continue
			}
			if !cfg.Compare(prev, data) {
				continue
			}
			prev = data
			if !emit(ctx, results, stopCh, Result{Data: data}) {
				return
			}
		}
	}()

	return nil
}

// Stop stops polling and closes the results channel.
func (w *pollingWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	results, done := w.results, w.done
	w.mu.Unlock()

	<-done
	close(results)
	return nil
}

// Results returns the channel receiving poll results.
func (w *pollingWatcher) Results() <-chan Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results
}
