package watcher

import (
	"context"
	"sync"
)

// subscriptionWatcher bridges a SubscribeFunc to the Watcher
// interface. Notifications are forwarded as Results unmodified, so
// event-only notifications arrive with nil Data.
type subscriptionWatcher struct {
	subscribe SubscribeFunc

	mu      sync.Mutex
	running bool
	results chan Result
	stopCh  chan struct{}
	stopFn  StopFunc
}

// NewSubscription returns a Watcher fed by a subscription feed, such
// as a source.Watchable.
func NewSubscription(subscribe SubscribeFunc) Watcher {
	return &subscriptionWatcher{subscribe: subscribe}
}

// Type returns the watcher strategy identifier.
func (w *subscriptionWatcher) Type() Type {
	return TypeSubscription
}

// Start subscribes to the feed. Config is accepted for interface
// symmetry; subscriptions have nothing to poll or compare.
func (w *subscriptionWatcher) Start(ctx context.Context, cfg Config) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.results = make(chan Result)
	w.stopCh = make(chan struct{})
	results, stopCh := w.results, w.stopCh
	w.mu.Unlock()

	notify := func(data []byte, err error) {
		emit(ctx, results, stopCh, Result{Data: data, Error: err})
	}

	stop, err := w.subscribe(ctx, notify)
	if err != nil {
		w.mu.Lock()
		w.running = false
		close(w.stopCh)
		close(w.results)
		w.mu.Unlock()
		return err
	}

	w.mu.Lock()
	w.stopFn = stop
	w.mu.Unlock()
	return nil
}

// Stop unsubscribes and closes the results channel. The feed's
// StopFunc runs before the channel closes, relying on the StopFunc
// contract that no notification is delivered after it returns.
func (w *subscriptionWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	stopFn, results := w.stopFn, w.results
	w.stopFn = nil
	w.mu.Unlock()

	var err error
	if stopFn != nil {
		err = stopFn(ctx)
	}
	close(results)
	return err
}

// Results returns the channel receiving subscription results.
func (w *subscriptionWatcher) Results() <-chan Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results
}
