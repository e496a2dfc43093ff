package watcher_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yacchi/dedokoro/watcher"
)

// waitResult receives one result or fails the test after a timeout.
func waitResult(t *testing.T, w watcher.Watcher) watcher.Result {
	t.Helper()
	select {
	case r, ok := <-w.Results():
		if !ok {
			t.Fatal("results channel closed")
		}
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return watcher.Result{}
}

func TestDefaultCompare(t *testing.T) {
	tests := []struct {
		name     string
		old, new []byte
		want     bool
	}{
		{"equal", []byte("a"), []byte("a"), false},
		{"different", []byte("a"), []byte("b"), true},
		{"nil vs empty", nil, []byte{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := watcher.DefaultCompare(tt.old, tt.new); got != tt.want {
				t.Errorf("DefaultCompare() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolling(t *testing.T) {
	newSource := func(initial string) (fetch watcher.FetchFunc, set func(string), setErr func(error)) {
		var mu sync.Mutex
		content := initial
		var fetchErr error
		fetch = func(ctx context.Context) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			if fetchErr != nil {
				return nil, fetchErr
			}
			return []byte(content), nil
		}
		set = func(s string) {
			mu.Lock()
			defer mu.Unlock()
			content = s
			fetchErr = nil
		}
		setErr = func(err error) {
			mu.Lock()
			defer mu.Unlock()
			fetchErr = err
		}
		return fetch, set, setErr
	}

	cfg := watcher.NewConfig(watcher.WithPollInterval(20 * time.Millisecond))

	t.Run("type", func(t *testing.T) {
		w := watcher.NewPolling(func(ctx context.Context) ([]byte, error) { return nil, nil })
		if got := w.Type(); got != watcher.TypePolling {
			t.Errorf("Type() = %q, want %q", got, watcher.TypePolling)
		}
	})

	t.Run("results nil before start", func(t *testing.T) {
		fetch, _, _ := newSource("v1")
		w := watcher.NewPolling(fetch)
		if w.Results() != nil {
			t.Error("Results() != nil before Start")
		}
	})

	t.Run("baseline is not a change", func(t *testing.T) {
		fetch, set, _ := newSource("v1")
		w := watcher.NewPolling(fetch)
		if err := w.Start(context.Background(), cfg); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer w.Stop(context.Background())

		select {
		case r := <-w.Results():
			t.Fatalf("unexpected result for unchanged content: %+v", r)
		case <-time.After(100 * time.Millisecond):
		}

		set("v2")
		r := waitResult(t, w)
		if r.Error != nil {
			t.Fatalf("Result.Error = %v", r.Error)
		}
		if string(r.Data) != "v2" {
			t.Errorf("Result.Data = %q, want v2", r.Data)
		}
	})

	t.Run("fetch error is delivered", func(t *testing.T) {
		fetch, _, setErr := newSource("v1")
		w := watcher.NewPolling(fetch)
		if err := w.Start(context.Background(), cfg); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer w.Stop(context.Background())

		wantErr := errors.New("fetch failed")
		setErr(wantErr)

		r := waitResult(t, w)
		if !errors.Is(r.Error, wantErr) {
			t.Errorf("Result.Error = %v, want %v", r.Error, wantErr)
		}
	})

	t.Run("stop closes results", func(t *testing.T) {
		fetch, _, _ := newSource("v1")
		w := watcher.NewPolling(fetch)
		if err := w.Start(context.Background(), cfg); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if err := w.Stop(context.Background()); err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
		if _, ok := <-w.Results(); ok {
			t.Error("results channel still open after Stop")
		}
		if err := w.Stop(context.Background()); err != nil {
			t.Errorf("second Stop() error = %v", err)
		}
	})

	t.Run("start is idempotent", func(t *testing.T) {
		fetch, _, _ := newSource("v1")
		w := watcher.NewPolling(fetch)
		if err := w.Start(context.Background(), cfg); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if err := w.Start(context.Background(), cfg); err != nil {
			t.Fatalf("second Start() error = %v", err)
		}
		if err := w.Stop(context.Background()); err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
	})
}

func TestSubscription(t *testing.T) {
	type feed struct {
		mu         sync.Mutex
		notify     watcher.NotifyFunc
		stopCalled bool
	}
	newFeed := func() (*feed, watcher.SubscribeFunc) {
		f := &feed{}
		subscribe := func(ctx context.Context, notify watcher.NotifyFunc) (watcher.StopFunc, error) {
			f.mu.Lock()
			f.notify = notify
			f.mu.Unlock()
			return func(context.Context) error {
				f.mu.Lock()
				f.stopCalled = true
				f.notify = nil
				f.mu.Unlock()
				return nil
			}, nil
		}
		return f, subscribe
	}
	fire := func(f *feed, data []byte, err error) {
		f.mu.Lock()
		notify := f.notify
		f.mu.Unlock()
		if notify != nil {
			go notify(data, err)
		}
	}

	t.Run("type", func(t *testing.T) {
		_, subscribe := newFeed()
		w := watcher.NewSubscription(subscribe)
		if got := w.Type(); got != watcher.TypeSubscription {
			t.Errorf("Type() = %q, want %q", got, watcher.TypeSubscription)
		}
	})

	t.Run("notifications become results", func(t *testing.T) {
		f, subscribe := newFeed()
		w := watcher.NewSubscription(subscribe)
		if err := w.Start(context.Background(), watcher.NewConfig()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer w.Stop(context.Background())

		fire(f, []byte("pushed"), nil)
		r := waitResult(t, w)
		if string(r.Data) != "pushed" || r.Error != nil {
			t.Errorf("result = %+v, want pushed content", r)
		}

		wantErr := errors.New("feed broke")
		fire(f, nil, wantErr)
		r = waitResult(t, w)
		if !errors.Is(r.Error, wantErr) {
			t.Errorf("Result.Error = %v, want %v", r.Error, wantErr)
		}

		fire(f, nil, nil)
		r = waitResult(t, w)
		if r.Data != nil || r.Error != nil {
			t.Errorf("event-only result = %+v, want empty", r)
		}
	})

	t.Run("stop unsubscribes and closes results", func(t *testing.T) {
		f, subscribe := newFeed()
		w := watcher.NewSubscription(subscribe)
		if err := w.Start(context.Background(), watcher.NewConfig()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if err := w.Stop(context.Background()); err != nil {
			t.Fatalf("Stop() error = %v", err)
		}

		f.mu.Lock()
		stopCalled := f.stopCalled
		f.mu.Unlock()
		if !stopCalled {
			t.Error("stop function was not called")
		}
		if _, ok := <-w.Results(); ok {
			t.Error("results channel still open after Stop")
		}
	})

	t.Run("subscribe error fails start", func(t *testing.T) {
		wantErr := errors.New("cannot subscribe")
		w := watcher.NewSubscription(func(ctx context.Context, notify watcher.NotifyFunc) (watcher.StopFunc, error) {
			return nil, wantErr
		})
		if err := w.Start(context.Background(), watcher.NewConfig()); !errors.Is(err, wantErr) {
			t.Errorf("Start() error = %v, want %v", err, wantErr)
		}
	})
}

func TestNoop(t *testing.T) {
	w := watcher.NewNoop()
	if got := w.Type(); got != watcher.TypeNoop {
		t.Errorf("Type() = %q, want %q", got, watcher.TypeNoop)
	}
	if w.Results() != nil {
		t.Error("Results() != nil before Start")
	}

	if err := w.Start(context.Background(), watcher.NewConfig()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if w.Results() == nil {
		t.Fatal("Results() = nil after Start")
	}

	select {
	case r := <-w.Results():
		t.Fatalf("noop watcher emitted %+v", r)
	case <-time.After(50 * time.Millisecond):
	}

	if err := w.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, ok := <-w.Results(); ok {
		t.Error("results channel still open after Stop")
	}
}
