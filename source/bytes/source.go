// Package bytes provides an immutable in-memory Source, mainly for
// tests and embedded defaults.
package bytes

import (
	"context"

	"github.com/yacchi/dedokoro/source"
)

// DefaultName is the identity reported when WithName is not given.
const DefaultName = "bytes"

// Option configures a Source.
type Option func(*Source)

// WithName sets the identity returned by Describe. Loaders put it in
// the Source field of every origin, so tests usually pass a file-like
// name here.
func WithName(name string) Option {
	return func(s *Source) { s.name = name }
}

// Source serves a fixed byte slice.
type Source struct {
	name string
	data []byte
}

var _ source.Source = (*Source)(nil)

// New returns a Source serving data. The slice is copied, so later
// mutation of data does not affect the source.
func New(data []byte, opts ...Option) *Source {
	s := &Source{name: DefaultName, data: make([]byte, len(data))}
	copy(s.data, data)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromString returns a Source serving the bytes of text.
func FromString(text string, opts ...Option) *Source {
	return New([]byte(text), opts...)
}

// Load returns a copy of the data.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return data, nil
}

// Describe returns the configured name.
func (s *Source) Describe() string {
	return s.name
}
