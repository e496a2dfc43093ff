package dedokoro

import "sync"

// PropertySource is a named flattened document inside a
// PropertySources collection. The name typically combines the source
// description with a document index, e.g. "config.yaml#0".
type PropertySource struct {
	Name       string
	Properties *Properties
}

// PropertySources is an ordered collection of named flattened
// documents. Earlier entries take precedence on lookup, so the
// collection answers "which value applies and where was it defined"
// across any number of loaded files.
//
// It is safe for concurrent use.
type PropertySources struct {
	mu      sync.RWMutex
	sources []*PropertySource
}

// NewPropertySources returns an empty PropertySources.
func NewPropertySources() *PropertySources {
	return &PropertySources{}
}

// AddFirst inserts a source with the highest precedence. An existing
// source with the same name is removed first.
func (s *PropertySources) AddFirst(name string, props *Properties) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(name)
	entry := &PropertySource{Name: name, Properties: props}
	s.sources = append([]*PropertySource{entry}, s.sources...)
}

// AddLast appends a source with the lowest precedence. An existing
// source with the same name is removed first.
func (s *PropertySources) AddLast(name string, props *Properties) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(name)
	s.sources = append(s.sources, &PropertySource{Name: name, Properties: props})
}

// Get returns the named source.
func (s *PropertySources) Get(name string) (*PropertySource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, src := range s.sources {
		if src.Name == name {
			return src, true
		}
	}
	return nil, false
}

// Remove removes the named source, reporting whether it was present.
func (s *PropertySources) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(name)
}

func (s *PropertySources) removeLocked(name string) bool {
	for i, src := range s.sources {
		if src.Name == name {
			s.sources = append(s.sources[:i], s.sources[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of sources.
func (s *PropertySources) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources)
}

// Names returns the source names in precedence order.
func (s *PropertySources) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.Name
	}
	return names
}

// Lookup returns the tracked value for key from the first source that
// contains it.
func (s *PropertySources) Lookup(key string) (TrackedValue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, src := range s.sources {
		if v, ok := src.Properties.Get(key); ok {
			return v, true
		}
	}
	return TrackedValue{}, false
}

// Origin returns the origin of key from the first source that
// contains it.
func (s *PropertySources) Origin(key string) (Origin, bool) {
	v, ok := s.Lookup(key)
	return v.Origin, ok
}

// Keys returns the union of all keys, ordered by source precedence
// and then by each document's insertion order, without duplicates.
func (s *PropertySources) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	seen := map[string]bool{}
	for _, src := range s.sources {
		src.Properties.Walk(func(key string, _ TrackedValue) bool {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
			return true
		})
	}
	return keys
}
