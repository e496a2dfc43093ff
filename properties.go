package dedokoro

// Properties is an insertion-ordered map from flattened property keys
// to tracked values. Loaders produce one Properties per document, with
// keys in document declaration order.
//
// The first Put of a key fixes its position in iteration order; later
// Puts replace the value in place. Properties is not safe for
// concurrent mutation; wrap loaded documents in PropertySources for
// shared access.
type Properties struct {
	keys   []string
	values map[string]TrackedValue
}

// NewProperties returns an empty Properties.
func NewProperties() *Properties {
	return &Properties{values: map[string]TrackedValue{}}
}

// Put stores value under key, keeping the key's original position if
// it is already present.
func (p *Properties) Put(key string, value TrackedValue) {
	if p.values == nil {
		p.values = map[string]TrackedValue{}
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the tracked value stored under key.
func (p *Properties) Get(key string) (TrackedValue, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Keys returns the keys in insertion order. The returned slice is a
// copy and may be modified by the caller.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Walk calls fn for each key/value pair in insertion order until fn
// returns false.
func (p *Properties) Walk(fn func(key string, value TrackedValue) bool) {
	for _, k := range p.keys {
		if !fn(k, p.values[k]) {
			return
		}
	}
}
