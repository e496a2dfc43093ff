package yaml

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/yacchi/dedokoro"
)

// nonPlainStyles marks scalars whose text must not be re-resolved.
// Quoted and block scalars are always strings, tagged scalars follow
// their tag.
const nonPlainStyles = yaml.TaggedStyle | yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle

// constructor turns one decoded document into native values. Every
// scalar and empty collection in value position becomes a
// dedokoro.TrackedValue; keys stay raw so they can serve as map keys
// and path segments.
type constructor struct {
	source   string
	anchors  map[*yaml.Node]any
	visiting map[*yaml.Node]bool
}

func newConstructor(source string) *constructor {
	return &constructor{
		source:   source,
		anchors:  make(map[*yaml.Node]any),
		visiting: make(map[*yaml.Node]bool),
	}
}

func (c *constructor) origin(node *yaml.Node) dedokoro.Origin {
	// The decoder reports one-based positions; origins are zero-based.
	return dedokoro.Origin{
		Source:   c.source,
		Location: dedokoro.Location{Line: node.Line - 1, Column: node.Column - 1},
	}
}

func (c *constructor) construct(node *yaml.Node, key bool) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return c.construct(node.Content[0], false)
	case yaml.AliasNode:
		return c.alias(node, key)
	}

	if node.Anchor != "" {
		if v, ok := c.anchors[node]; ok {
			return c.repositioned(v, key, node), nil
		}
	}

	var v any
	var err error
	switch node.Kind {
	case yaml.ScalarNode:
		v, err = c.scalar(node, key)
	case yaml.SequenceNode:
		c.visiting[node] = true
		v, err = c.sequence(node)
		delete(c.visiting, node)
	case yaml.MappingNode:
		c.visiting[node] = true
		v, err = c.mapping(node)
		delete(c.visiting, node)
	default:
		err = fmt.Errorf("cannot construct %s node (%s)", kindName(node), c.origin(node))
	}
	if err != nil {
		return nil, err
	}
	if node.Anchor != "" {
		c.anchors[node] = v
	}
	return v, nil
}

// alias resolves *name references through the anchor cache, so every
// use of an anchor shares the value constructed at the anchor site.
func (c *constructor) alias(node *yaml.Node, key bool) (any, error) {
	target := node.Alias
	if target == nil {
		return nil, fmt.Errorf("unknown alias *%s (%s)", node.Value, c.origin(node))
	}
	if c.visiting[target] {
		return nil, fmt.Errorf("%w: *%s (%s)", ErrRecursiveAlias, node.Value, c.origin(node))
	}
	return c.construct(target, key)
}

// repositioned adapts a cached anchor value to the position of the
// current reference. Scalars are tracked in value position and raw
// in key position; collections keep their first form.
func (c *constructor) repositioned(v any, key bool, target *yaml.Node) any {
	if tv, ok := v.(dedokoro.TrackedValue); ok {
		if key && !isCollection(tv.Value) {
			return tv.Value
		}
		return v
	}
	if !key && !isCollection(v) {
		// A null key caches raw nil; as a value it tracks as "".
		if v == nil {
			v = ""
		}
		return dedokoro.Track(v, c.origin(target))
	}
	return v
}

func isCollection(v any) bool {
	switch v.(type) {
	case *orderedMap, map[string]any, []any:
		return true
	}
	return false
}

func (c *constructor) scalar(node *yaml.Node, key bool) (any, error) {
	v, err := c.scalarValue(node)
	if err != nil {
		return nil, err
	}
	if key {
		return v, nil
	}
	if v == nil {
		v = ""
	}
	return dedokoro.Track(v, c.origin(node)), nil
}

func (c *constructor) scalarValue(node *yaml.Node) (any, error) {
	if node.Style&yaml.TaggedStyle != 0 {
		return c.taggedScalar(node)
	}
	if node.Style&nonPlainStyles != 0 {
		return node.Value, nil
	}
	switch resolveTag(node.Value) {
	case tagNull:
		return nil, nil
	case tagBool:
		return node.Value == "true" || node.Value == "True" || node.Value == "TRUE", nil
	case tagInt:
		// Numbers too large even for float64 stay strings.
		if v, err := constructInt(node.Value); err == nil {
			return v, nil
		}
		return node.Value, nil
	case tagFloat:
		if v, err := constructFloat(node.Value); err == nil {
			return v, nil
		}
		return node.Value, nil
	case tagMerge:
		// Merge keys are consumed during mapping construction; one
		// in value position has nothing to merge into.
		return nil, &TagError{Tag: tagMerge, Origin: c.origin(node)}
	}
	return node.Value, nil
}

func (c *constructor) taggedScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case tagStr:
		return node.Value, nil
	case tagNull:
		return nil, nil
	case tagBool:
		return constructBool(node.Value, c.origin(node))
	case tagInt:
		v, err := constructInt(node.Value)
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, c.origin(node))
		}
		return v, nil
	case tagFloat:
		v, err := constructFloat(node.Value)
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, c.origin(node))
		}
		return v, nil
	case tagTimestamp:
		v, err := constructTimestamp(node.Value)
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, c.origin(node))
		}
		return v, nil
	case tagBinary:
		v, err := constructBinary(node.Value)
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, c.origin(node))
		}
		return v, nil
	}
	return nil, &TagError{Tag: node.Tag, Origin: c.origin(node)}
}

func constructBool(s string, origin dedokoro.Origin) (any, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return nil, fmt.Errorf("cannot construct !!bool from %q (%s)", s, origin)
}

// constructInt parses decimal and hexadecimal integers, widening to
// uint64 and then float64 when the value does not fit.
func constructInt(s string) (any, error) {
	plain := strings.ReplaceAll(s, "_", "")
	if v, err := strconv.ParseInt(plain, 0, 64); err == nil {
		if v == int64(int(v)) {
			return int(v), nil
		}
		return v, nil
	}
	if v, err := strconv.ParseUint(plain, 0, 64); err == nil {
		return v, nil
	}
	if v, err := strconv.ParseFloat(plain, 64); err == nil {
		return v, nil
	}
	return nil, fmt.Errorf("cannot construct !!int from %q", s)
}

func constructFloat(s string) (any, error) {
	plain := strings.ReplaceAll(s, "_", "")
	switch {
	case strings.EqualFold(plain, ".inf"), strings.EqualFold(plain, "+.inf"):
		return math.Inf(1), nil
	case strings.EqualFold(plain, "-.inf"):
		return math.Inf(-1), nil
	case strings.EqualFold(plain, ".nan"):
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(plain, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot construct !!float from %q", s)
	}
	return v, nil
}

// timestampLayouts are the forms accepted for explicit !!timestamp
// tags: RFC 3339 with short fields and an upper or lower case T,
// space separated without a zone, and date only.
var timestampLayouts = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func constructTimestamp(s string) (any, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("cannot construct !!timestamp from %q", s)
}

func constructBinary(s string) (any, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("cannot construct !!binary: %v", err)
	}
	return data, nil
}

func (c *constructor) sequence(node *yaml.Node) (any, error) {
	if node.Style&yaml.TaggedStyle != 0 && node.Tag != tagSeq {
		return nil, &TagError{Tag: node.Tag, Origin: c.origin(node)}
	}
	if len(node.Content) == 0 {
		return dedokoro.Track([]any{}, c.origin(node)), nil
	}
	items := make([]any, 0, len(node.Content))
	for _, itemNode := range node.Content {
		v, err := c.construct(itemNode, false)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// mapEntry pairs a constructed key with the value node it will be
// constructed from, so merge flattening can reorder entries before
// any value is built.
type mapEntry struct {
	key       any
	valueNode *yaml.Node
}

func (c *constructor) mapping(node *yaml.Node) (any, error) {
	if node.Style&yaml.TaggedStyle != 0 && node.Tag != tagMap {
		return nil, &TagError{Tag: node.Tag, Origin: c.origin(node)}
	}
	// Empty collections survive flattening as leaves, so they use
	// plain exported types rather than the internal ordered form.
	if len(node.Content) == 0 {
		return dedokoro.Track(map[string]any{}, c.origin(node)), nil
	}
	if err := c.checkDuplicateKeys(node); err != nil {
		return nil, err
	}
	entries, err := c.mergedEntries(node, true, make(map[any]int), nil)
	if err != nil {
		return nil, err
	}
	m := newOrderedMap()
	for _, entry := range entries {
		v, err := c.construct(entry.valueNode, false)
		if err != nil {
			return nil, err
		}
		m.put(entry.key, v)
	}
	return m, nil
}

// checkDuplicateKeys rejects a mapping that literally repeats a key.
// Merge keys never count, and keys introduced by merging are
// resolved silently instead.
func (c *constructor) checkDuplicateKeys(node *yaml.Node) error {
	seen := make(map[any]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if c.isMergeKey(keyNode) {
			continue
		}
		key, err := c.construct(keyNode, true)
		if err != nil {
			return err
		}
		if !isHashable(key) {
			continue
		}
		if _, ok := seen[key]; ok {
			return &DuplicateKeyError{Key: keyText(key), Origin: c.origin(keyNode)}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// mergedEntries flattens a mapping and its merge keys into the final
// entry list. Entries of the mapping itself are preferred: they
// replace a merged entry in place, keeping its position. Between
// merge sources the first occurrence of a key wins.
func (c *constructor) mergedEntries(node *yaml.Node, preferred bool, index map[any]int, entries []mapEntry) ([]mapEntry, error) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if c.isMergeKey(keyNode) {
			var err error
			entries, err = c.mergeValue(valueNode, index, entries)
			if err != nil {
				return nil, err
			}
			continue
		}
		key, err := c.construct(keyNode, true)
		if err != nil {
			return nil, err
		}
		entry := mapEntry{key: key, valueNode: valueNode}
		if isHashable(key) {
			if at, ok := index[key]; ok {
				if preferred {
					entries[at] = entry
				}
				continue
			}
			index[key] = len(entries)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// mergeValue expands one merge key value, which must be a mapping, an
// alias to a mapping, or a sequence of those.
func (c *constructor) mergeValue(valueNode *yaml.Node, index map[any]int, entries []mapEntry) ([]mapEntry, error) {
	target, err := c.mergeTarget(valueNode)
	if err != nil {
		return nil, err
	}
	switch target.Kind {
	case yaml.MappingNode:
		return c.mergedEntries(target, false, index, entries)
	case yaml.SequenceNode:
		for _, itemNode := range target.Content {
			item, err := c.mergeTarget(itemNode)
			if err != nil {
				return nil, err
			}
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("cannot merge %s value into mapping (%s)", kindName(item), c.origin(item))
			}
			entries, err = c.mergedEntries(item, false, index, entries)
			if err != nil {
				return nil, err
			}
		}
		return entries, nil
	}
	return nil, fmt.Errorf("cannot merge %s value into mapping (%s)", kindName(target), c.origin(target))
}

// mergeTarget resolves a merge source through aliases, rejecting one
// that is still under construction: a mapping cannot merge into
// itself.
func (c *constructor) mergeTarget(node *yaml.Node) (*yaml.Node, error) {
	target := deref(node)
	if c.visiting[target] {
		return nil, fmt.Errorf("%w: *%s (%s)", ErrRecursiveAlias, node.Value, c.origin(node))
	}
	return target, nil
}

func (c *constructor) isMergeKey(node *yaml.Node) bool {
	node = deref(node)
	if node.Kind != yaml.ScalarNode {
		return false
	}
	if node.Style&yaml.TaggedStyle != 0 {
		return node.Tag == tagMerge
	}
	if node.Style&nonPlainStyles != 0 {
		return false
	}
	return resolveTag(node.Value) == tagMerge
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
