package dedokoro

import "fmt"

// Location identifies a position within a text resource. Line and
// Column are zero-based, matching the marks reported by YAML parsers.
// String renders the position one-based for humans.
type Location struct {
	// Line is the zero-based line number.
	Line int

	// Column is the zero-based column number.
	Column int
}

// String returns the location as "line:column", one-based.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Column+1)
}

// Origin identifies where a configuration value came from: the
// resource it was loaded from and the position within it.
//
// Example:
//
//	origin := dedokoro.Origin{
//		Source:   "config/application.yaml",
//		Location: dedokoro.Location{Line: 11, Column: 8},
//	}
//	fmt.Println(origin) // config/application.yaml - 12:9
type Origin struct {
	// Source describes the providing resource, typically the value
	// of source.Source.Describe.
	Source string

	// Location is the position of the value within the source.
	Location Location
}

// String returns the origin as "<source> - <line>:<column>".
func (o Origin) String() string {
	if o.Source == "" {
		return o.Location.String()
	}
	return o.Source + " - " + o.Location.String()
}

// TrackedValue pairs a configuration value with its Origin.
//
// Loaders wrap every leaf in a TrackedValue: scalars, and empty
// collections, which flatten to leaves because they have no children
// to descend into. Mapping keys are never wrapped. Null scalars load
// as the empty string, never as nil, so consumers always have an
// origin to report against.
type TrackedValue struct {
	// Value is the parsed value.
	Value any

	// Origin records where the value was defined.
	Origin Origin
}

// Track returns a TrackedValue wrapping value with origin.
func Track(value any, origin Origin) TrackedValue {
	return TrackedValue{Value: value, Origin: origin}
}

// String returns the underlying value rendered with fmt.Sprint.
func (v TrackedValue) String() string {
	return fmt.Sprint(v.Value)
}
