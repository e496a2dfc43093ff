// Package dedokoro loads configuration files while tracking where
// every value came from.
//
// The name is the Japanese 出所 (dedokoro), the place something
// originates. For each value in a loaded document the library records
// an Origin: the source it was read from and the zero-based line and
// column where it was written. Error messages built from origins can
// point at the exact position of a bad value.
//
// Key features:
//   - Flattened documents: nested structures become ordered maps with
//     dotted keys (server.port) and bracketed indexes (hosts[0])
//   - Every leaf value wrapped in a TrackedValue carrying its Origin
//   - Strict YAML scalar typing (yes/no and dates stay strings)
//   - Origin-tracked .properties loading with the same output shape
//   - Precedence-ordered lookup across sources via PropertySources
//   - Live reloading with change notification via Reloader
package dedokoro
