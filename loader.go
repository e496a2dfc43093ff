package dedokoro

import (
	"context"

	"github.com/yacchi/dedokoro/source"
)

// LoadFunc loads every document from a source into flattened form,
// one Properties per document in source order. The format packages
// provide implementations: yaml.Load and properties.Load.
//
// A LoadFunc must be re-runnable: the Reloader calls it again after
// every detected change.
type LoadFunc func(ctx context.Context, src source.Source) ([]*Properties, error)
