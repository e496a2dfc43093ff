package yaml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yacchi/dedokoro"
)

// documentKey holds the value of a document whose root is not a
// mapping.
const documentKey = "document"

// orderedMap is a mapping in document order. put keeps the position
// of the first occurrence of a key and replaces its value, matching
// how merged entries are overridden.
type orderedMap struct {
	items []mapItem
	index map[any]int
}

type mapItem struct {
	key   any
	value any
}

func newOrderedMap() *orderedMap { return &orderedMap{} }

func (m *orderedMap) put(key, value any) {
	if isHashable(key) {
		if m.index == nil {
			m.index = make(map[any]int)
		}
		if at, ok := m.index[key]; ok {
			m.items[at].value = value
			return
		}
		m.index[key] = len(m.items)
	}
	m.items = append(m.items, mapItem{key: key, value: value})
}

func (m *orderedMap) String() string {
	var b strings.Builder
	b.WriteString("map[")
	for i, item := range m.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v:%v", item.key, item.value)
	}
	b.WriteByte(']')
	return b.String()
}

// isHashable reports whether a constructed key can index a Go map.
// Sequence and binary keys cannot; they are kept positionally and
// never deduplicated.
func isHashable(key any) bool {
	switch k := key.(type) {
	case []any, []byte, map[string]any:
		return false
	case dedokoro.TrackedValue:
		return isHashable(k.Value)
	}
	return true
}

// flatten renders one constructed document as flat properties. A
// non-mapping root lands under the "document" key.
func flatten(root any) *dedokoro.Properties {
	props := dedokoro.NewProperties()
	if m, ok := root.(*orderedMap); ok {
		flattenInto(props, "", m)
	} else {
		flattenValue(props, documentKey, root)
	}
	return props
}

func flattenInto(props *dedokoro.Properties, path string, m *orderedMap) {
	for _, item := range m.items {
		flattenValue(props, joinPath(path, keySegment(item.key)), item.value)
	}
}

func flattenValue(props *dedokoro.Properties, path string, value any) {
	switch v := value.(type) {
	case dedokoro.TrackedValue:
		props.Put(path, v)
	case *orderedMap:
		// Empty only when merge consumption removed every entry; a
		// literal {} is already a tracked leaf. An emptied mapping
		// emits nothing.
		flattenInto(props, path, v)
	case []any:
		for i, item := range v {
			flattenValue(props, path+"["+strconv.Itoa(i)+"]", item)
		}
	}
}

// joinPath appends a segment to a path. Bracketed segments attach
// without a dot, so list indexes and non-string keys read a[0] and
// a[key].
func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	if strings.HasPrefix(segment, "[") {
		return path + segment
	}
	return path + "." + segment
}

func keySegment(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return "[" + keyText(key) + "]"
}

func keyText(key any) string {
	switch k := key.(type) {
	case nil:
		return "null"
	case string:
		return k
	case dedokoro.TrackedValue:
		return keyText(k.Value)
	}
	return fmt.Sprint(key)
}

// nativeMap renders a constructed document as plain nested Go values
// for callers that want the document shape rather than flat keys.
// Tracking wrappers are removed and key order is not preserved.
func nativeMap(root any) map[string]any {
	if m, ok := root.(*orderedMap); ok {
		return nativeMapOf(m)
	}
	return map[string]any{documentKey: nativeValue(root)}
}

func nativeMapOf(m *orderedMap) map[string]any {
	out := make(map[string]any, len(m.items))
	for _, item := range m.items {
		out[keySegment(item.key)] = nativeValue(item.value)
	}
	return out
}

func nativeValue(value any) any {
	switch v := value.(type) {
	case dedokoro.TrackedValue:
		return nativeValue(v.Value)
	case *orderedMap:
		return nativeMapOf(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = nativeValue(item)
		}
		return out
	}
	return value
}
