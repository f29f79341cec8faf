package dynbitvec

import (
	"errors"

	"github.com/dynbitvec/dynbitvec/internal/tree"
)

// ErrIndexOutOfRange is returned when an Access or Insert index falls
// outside the current sequence (for Insert, outside [0, Size()]).
//
// There is only one engine behind the public API, so internal/tree's
// errors ARE the public errors — re-exported here via type aliases rather
// than translated through a second set of types.
type ErrIndexOutOfRange = tree.ErrIndexOutOfRange

// ErrCapacityExceeded is returned when an Insert would grow the sequence
// past the capacity fixed at construction. Dynamic growth beyond that
// maximum is out of scope.
type ErrCapacityExceeded = tree.ErrCapacityExceeded

// ErrConfigurationInvalid is returned by New when the requested capacity
// and word width cannot produce a valid set of derived tree dimensions
// (degree, counter width, pointer width, buffer sizes).
type ErrConfigurationInvalid = tree.ErrConfigurationInvalid

// ErrInternalInvariantViolated is raised when an internal consistency
// check fails. It should never occur in a correct build.
type ErrInternalInvariantViolated = tree.ErrInternalInvariantViolated

// Is reports whether err is, or wraps, target — a thin re-export so
// callers do not need a separate import of "errors" just to compare these
// types.
func Is(err, target error) bool { return errors.Is(err, target) }
