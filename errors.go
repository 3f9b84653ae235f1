package glint

import (
	"errors"

	"github.com/reoring/glint/conflict"
)

var (
	// ErrNilRoot is returned by New for a nil root.
	ErrNilRoot = errors.New("glint: nil root")
	// ErrUnknownNode is returned when a NodeRef matches nothing in the tree.
	ErrUnknownNode = errors.New("glint: unknown node")
)

// AsConflicts extracts conflicts from an error returned by Check.
func AsConflicts(err error) (conflict.Conflicts, bool) { return conflict.AsConflicts(err) }
