package dktest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/yacchi/dedokoro/source"
	"github.com/yacchi/dedokoro/watcher"
)

// SourceFactory creates a Source serving the given test data. The
// factory is called for each test case to ensure test isolation.
type SourceFactory func(t *testing.T, data []byte) source.Source

// NotExistFactory creates a Source whose target does not exist. It
// is used to verify source.ErrNotExist handling.
type NotExistFactory func(t *testing.T) source.Source

// SourceTesterOption configures SourceTester behavior.
type SourceTesterOption func(*SourceTester)

// WithNotExistFactory enables the missing-target test for sources
// that can distinguish a missing target from an empty one.
func WithNotExistFactory(factory NotExistFactory) SourceTesterOption {
	return func(st *SourceTester) {
		st.notExistFactory = factory
	}
}

// SourceTester provides utilities to verify Source implementations.
type SourceTester struct {
	t               *testing.T
	factory         SourceFactory
	notExistFactory NotExistFactory
}

// NewSourceTester creates a SourceTester for the given SourceFactory.
// The factory will be used to create new Source instances for each test.
func NewSourceTester(t *testing.T, factory SourceFactory, opts ...SourceTesterOption) *SourceTester {
	st := &SourceTester{
		t:       t,
		factory: factory,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// TestAll runs all standard compliance tests for Source implementations.
func (st *SourceTester) TestAll() {
	st.t.Run("Describe", st.testDescribe)
	st.t.Run("Load", st.testLoad)
	st.t.Run("LoadCanceled", st.testLoadCanceled)
	st.t.Run("Subscribe", st.testSubscribe)
	st.t.Run("NotExist", st.testNotExist)
}

// testDescribe verifies Describe() names the source.
func (st *SourceTester) testDescribe(t *testing.T) {
	s := st.factory(t, []byte("key: value\n"))

	require(t, s.Describe() != "", "Describe() returned empty string")
}

// testLoad verifies Load() returns the content the source was
// created with.
func (st *SourceTester) testLoad(t *testing.T) {
	testData := []byte("key: value\n")
	s := st.factory(t, testData)

	data, err := s.Load(context.Background())
	requireNoError(t, err, "Load() error = %v", err)
	require(t, bytes.Equal(data, testData), "Load() = %q, want %q", data, testData)
}

// testLoadCanceled verifies Load() honors context cancellation.
func (st *SourceTester) testLoadCanceled(t *testing.T) {
	s := st.factory(t, []byte("key: value\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	check(t, err != nil, "Load() with canceled context returned no error")
}

// testSubscribe verifies the subscription contract for Watchable
// sources: Subscribe returns a working stop function and the source
// can be subscribed again afterwards.
func (st *SourceTester) testSubscribe(t *testing.T) {
	s := st.factory(t, []byte("key: value\n"))

	ws, ok := s.(source.Watchable)
	if !ok {
		t.Skip("source does not implement source.Watchable")
		return
	}

	ctx := context.Background()
	notify := watcher.NotifyFunc(func(data []byte, err error) {})

	stop, err := ws.Subscribe(ctx, notify)
	requireNoError(t, err, "Subscribe() error = %v", err)
	require(t, stop != nil, "Subscribe() returned nil stop function")
	requireNoError(t, stop(ctx), "stop() error = %v", err)

	stop, err = ws.Subscribe(ctx, notify)
	requireNoError(t, err, "second Subscribe() error = %v", err)
	requireNoError(t, stop(ctx), "second stop() error = %v", err)
}

// testNotExist verifies a missing target reports source.ErrNotExist.
func (st *SourceTester) testNotExist(t *testing.T) {
	if st.notExistFactory == nil {
		t.Skip("no NotExistFactory configured")
		return
	}
	s := st.notExistFactory(t)

	_, err := s.Load(context.Background())
	require(t, err != nil, "Load() of missing target returned no error")
	check(t, errors.Is(err, source.ErrNotExist),
		"Load() of missing target = %v, want source.ErrNotExist", err)
}
