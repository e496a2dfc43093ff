package dedokoro

import (
	"context"
	"sync"
	"time"

	"github.com/yacchi/dedokoro/source"
	"github.com/yacchi/dedokoro/watcher"
)

// ReloadFunc receives the result of a load: the flattened documents,
// or the error that prevented them.
type ReloadFunc func(docs []*Properties, err error)

// ReloadOption configures a Reloader.
type ReloadOption func(*Reloader)

// WithWatcher overrides the watcher used for change detection. By
// default a subscription watcher is used when the source implements
// source.Watchable, and a polling watcher otherwise.
func WithWatcher(w watcher.Watcher) ReloadOption {
	return func(r *Reloader) { r.watcher = w }
}

// WithPollInterval sets the polling interval used when the source
// does not support subscriptions.
func WithPollInterval(d time.Duration) ReloadOption {
	return func(r *Reloader) { r.cfg.PollInterval = d }
}

// WithCompare sets the change comparison function used when polling.
func WithCompare(fn watcher.CompareFunc) ReloadOption {
	return func(r *Reloader) { r.cfg.Compare = fn }
}

// Reloader loads a source once at Start and reloads it whenever the
// source reports a change, delivering every result to a callback.
//
// Example:
//
//	src := fs.New("config/application.yaml")
//	r := dedokoro.NewReloader(src, yaml.Load, func(docs []*dedokoro.Properties, err error) {
//		if err != nil {
//			log.Printf("reload failed: %v", err)
//			return
//		}
//		apply(docs)
//	})
//	if err := r.Start(ctx); err != nil {
//		return err
//	}
//	defer r.Stop(context.Background())
type Reloader struct {
	src  source.Source
	load LoadFunc
	fn   ReloadFunc

	watcher watcher.Watcher
	cfg     watcher.Config

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewReloader returns a Reloader that loads src with load and
// delivers results to fn.
func NewReloader(src source.Source, load LoadFunc, fn ReloadFunc, opts ...ReloadOption) *Reloader {
	r := &Reloader{src: src, load: load, fn: fn}
	for _, opt := range opts {
		opt(r)
	}
	if r.watcher == nil {
		r.watcher = watcherFor(src)
	}
	return r
}

// watcherFor picks the watch strategy a source supports.
func watcherFor(src source.Source) watcher.Watcher {
	if ws, ok := src.(source.Watchable); ok {
		return watcher.NewSubscription(ws.Subscribe)
	}
	return watcher.NewPolling(func(ctx context.Context) ([]byte, error) {
		return src.Load(ctx)
	})
}

// Start performs the initial load and begins watching. The initial
// documents are delivered through the callback before Start returns;
// if the initial load fails, Start returns the error without
// starting a watch. Starting a running Reloader is a no-op.
func (r *Reloader) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	docs, err := r.load(ctx, r.src)
	if err != nil {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		return err
	}
	r.fn(docs, nil)

	if err := r.watcher.Start(ctx, r.cfg); err != nil {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		return err
	}

	done := make(chan struct{})
	r.mu.Lock()
	r.done = done
	r.mu.Unlock()

	go func() {
		defer close(done)
		for result := range r.watcher.Results() {
			if result.Error != nil {
				r.fn(nil, result.Error)
				continue
			}
			docs, err := r.load(ctx, r.src)
			r.fn(docs, err)
		}
	}()

	return nil
}

// Stop stops watching and waits for in-flight callbacks to finish.
// Stopping a stopped Reloader is a no-op.
func (r *Reloader) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	done := r.done
	r.mu.Unlock()

	err := r.watcher.Stop(ctx)
	if done != nil {
		<-done
	}
	return err
}
