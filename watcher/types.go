package watcher

import (
	"bytes"
	"context"
	"time"
)

// DefaultPollInterval is the default interval for polling watchers.
const DefaultPollInterval = 30 * time.Second

// Result is the outcome of one detected change.
type Result struct {
	// Data is the source content after the change, when the
	// strategy fetched it. Event-only strategies leave it nil and
	// consumers re-read the source themselves.
	Data []byte

	// Error is set when a watch cycle failed.
	Error error
}

// CompareFunc reports whether old and new contents differ.
type CompareFunc func(old, new []byte) bool

// DefaultCompare reports difference using bytes.Equal.
func DefaultCompare(old, new []byte) bool {
	return !bytes.Equal(old, new)
}

// NotifyFunc is called by subscription sources when something
// changes. Three patterns are accepted:
//   - notify(data, nil): the new content is pushed directly
//   - notify(nil, err): the subscription observed an error
//   - notify(nil, nil): a change happened; content must be re-read
//
// Implementations handed to Subscribe do not block indefinitely.
type NotifyFunc func(data []byte, err error)

// StopFunc cancels a subscription. After it returns, the associated
// NotifyFunc is not called again.
type StopFunc func(ctx context.Context) error

// SubscribeFunc registers notify with a change feed and returns a
// StopFunc that unregisters it.
type SubscribeFunc func(ctx context.Context, notify NotifyFunc) (StopFunc, error)

// FetchFunc reads the current content of a watched resource.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Config configures watcher behavior.
type Config struct {
	// PollInterval is the polling period. Zero or negative means
	// DefaultPollInterval. Ignored by non-polling watchers.
	PollInterval time.Duration

	// Compare detects content changes between polls. Nil means
	// DefaultCompare. Ignored by non-polling watchers.
	Compare CompareFunc
}

// Option mutates a Config.
type Option func(*Config)

// WithPollInterval sets the polling period.
func WithPollInterval(d time.Duration) Option {
	return func(c *Config) { c.PollInterval = d }
}

// WithCompare sets the change comparison function.
func WithCompare(fn CompareFunc) Option {
	return func(c *Config) { c.Compare = fn }
}

// NewConfig builds a Config from opts, applying defaults.
func NewConfig(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Compare == nil {
		c.Compare = DefaultCompare
	}
}
