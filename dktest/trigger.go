package dktest

import (
	"context"
	"sync"

	"github.com/yacchi/dedokoro/source"
	"github.com/yacchi/dedokoro/watcher"
)

// TriggerSource is an in-memory watchable source whose change
// notifications are fired manually, so reload paths can be exercised
// without touching the filesystem.
type TriggerSource struct {
	mu     sync.Mutex
	name   string
	data   []byte
	err    error
	notify watcher.NotifyFunc
}

var (
	_ source.Source    = (*TriggerSource)(nil)
	_ source.Watchable = (*TriggerSource)(nil)
)

// NewTriggerSource returns a TriggerSource serving data under the
// given name.
func NewTriggerSource(name string, data []byte) *TriggerSource {
	return &TriggerSource{name: name, data: append([]byte(nil), data...)}
}

// Load returns the current content, or the error set with SetError.
func (s *TriggerSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]byte(nil), s.data...), nil
}

// Describe returns the name the source was created with.
func (s *TriggerSource) Describe() string {
	return s.name
}

// Set replaces the content served by Load. It does not notify; call
// Trigger to announce the change.
func (s *TriggerSource) Set(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.err = nil
}

// SetError makes subsequent Loads fail with err until Set is called.
func (s *TriggerSource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Subscribe registers the notify function Trigger will call. The
// returned stop function unregisters it.
func (s *TriggerSource) Subscribe(ctx context.Context, notify watcher.NotifyFunc) (watcher.StopFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = notify
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.notify = nil
		return nil
	}, nil
}

// Trigger fires a change notification if a subscriber is registered.
func (s *TriggerSource) Trigger() {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify(nil, nil)
	}
}

// TriggerError delivers err to the subscriber as a watch failure.
func (s *TriggerSource) TriggerError(err error) {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify(nil, err)
	}
}
