// Package source abstracts where configuration text comes from.
//
// A Source is an identifiable, re-readable resource: Load returns its
// current content and Describe names it for error messages and value
// origins. Sources that can push change notifications additionally
// implement Watchable.
package source

import (
	"context"
	"errors"

	"github.com/yacchi/dedokoro/watcher"
)

// ErrNotExist indicates the underlying resource does not exist.
// Implementations wrap it so callers can test with errors.Is.
var ErrNotExist = errors.New("source does not exist")

// Source is an identifiable, re-readable text resource.
type Source interface {
	// Load returns the current content of the resource. Every call
	// re-reads the resource; implementations do not serve stale
	// caches. The returned slice is owned by the caller.
	Load(ctx context.Context) ([]byte, error)

	// Describe returns a stable, human-readable identity for the
	// resource, such as a file path. It is used in error messages
	// and as the Source field of origins.
	Describe() string
}

// Watchable is implemented by sources that can push change
// notifications. Subscribe registers notify with the source's change
// feed and returns a stop function; after the stop function returns,
// notify is not called again.
type Watchable interface {
	Subscribe(ctx context.Context, notify watcher.NotifyFunc) (watcher.StopFunc, error)
}
