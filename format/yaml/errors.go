package yaml

import (
	"errors"
	"fmt"

	"github.com/yacchi/dedokoro"
)

// ErrRecursiveAlias is returned when an alias chain refers back to a
// node that is still being constructed.
var ErrRecursiveAlias = errors.New("recursive alias expansion")

// DuplicateKeyError is returned when a mapping defines the same key
// more than once. Origin points at the second occurrence.
type DuplicateKeyError struct {
	Key    string
	Origin dedokoro.Origin
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("found duplicate key %q (%s)", e.Key, e.Origin)
}

// TagError is returned when a node carries a tag that has no
// registered constructor.
type TagError struct {
	Tag    string
	Origin dedokoro.Origin
}

func (e *TagError) Error() string {
	return fmt.Sprintf("cannot construct value with tag %s (%s)", e.Tag, e.Origin)
}
