// Package gcerr defines the closed error taxonomy shared by every collector
// implementation in this module. It plays the same role as the gc_api crate's
// error module: a single Kind enum plus a wrapping Error type, in the spirit
// of the standard library's *fs.PathError rather than an exception hierarchy.
package gcerr

import (
	"errors"
	"fmt"
)

// Kind classifies the observable failure modes a collector may report.
// The set is closed: new kinds are not added without updating every
// collector's propagation policy.
type Kind int

const (
	// OutOfMemory means free heap space was insufficient for the requested
	// layout even after the allocation retry protocol ran to completion.
	OutOfMemory Kind = iota

	// AllocationTooLarge means the request cannot fit in any empty heap
	// configuration. Reserved: the reference collectors never emit this,
	// since their heaps are fixed-size and OutOfMemory already covers the
	// case of a request exceeding total capacity.
	AllocationTooLarge

	// UnsupportedAlignment means the requested alignment exceeds the fixed
	// alignment the heap guarantees (heapcore.FixedAlign).
	UnsupportedAlignment

	// IllegalState means a request would put a heap into an invalid state,
	// or an internal invariant was observed violated. In this module it is
	// returned by heapcore.NewBase for a zero capacity; a handle-table
	// lookup that finds no matching slot panics instead of returning it.
	IllegalState

	// UseAfterFree is reserved for implementations that can detect access
	// through a reclaimed handle. Neither collector in this module attempts
	// that detection; the kind is kept so the taxonomy stays stable if one
	// ever does.
	UseAfterFree

	// Other is the escape hatch for anything not covered above.
	Other
)

func (k Kind) String() string {
	switch k {
	case OutOfMemory:
		return "out of memory"
	case AllocationTooLarge:
		return "allocation exceeds the maximum allowed size for this heap"
	case UnsupportedAlignment:
		return "requested alignment is not supported"
	case IllegalState:
		return "attempted to enter an invalid state to complete this request"
	case UseAfterFree:
		return "attempted to access an object which has been freed"
	case Other:
		return "unknown error"
	default:
		return "invalid error kind"
	}
}

// Error is the concrete error type returned by fallible entry points
// throughout this module. It always carries a Kind and, optionally, a
// wrapped cause describing the specific circumstances.
type Error struct {
	Kind  Kind
	cause error
}

// New builds an Error of the given kind wrapping cause. cause may be nil, in
// which case Kind's own description is used as the message.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

// Newf is a convenience constructor combining New with fmt.Errorf-style
// formatting for the wrapped cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, cause: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, gcerr.New(gcerr.OutOfMemory, nil)) or more idiomatically
// compare against a Kind via Is(err, kind).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
