// Package gcheap implements the typed handle and root-set vocabulary spec
// §4.2 and §4.4 describe on top of the untyped trace engine in gctrace: a
// stable, collector-agnostic Handle[T] that survives compaction, and a
// Roots container collectors use to find their starting points for a
// collection cycle.
//
// Neither type here knows how to allocate or sweep; marksweep and
// markcompact each supply an Accessor (their own *Heap) that resolves a
// Handle's raw address to the collector's current view of that object.
package gcheap

import "github.com/jmeggitt/gc-api/gctrace"

// Accessor is implemented by a collector façade (marksweep.Heap,
// markcompact.Heap) to let a Handle resolve itself to a value outside of
// tracing (Handle[T].Get). Tracing itself goes through a *gctrace.Tracer
// directly, handed down from whichever collector started the cycle, so
// Accessor only needs to cover the read path.
//
// The method is exported, not unexported, even though this interface is
// only ever meant to be satisfied within this module: Go only allows an
// unexported interface method to be satisfied by types declared in the
// same package as the interface, and Heap lives in a sibling package.
type Accessor interface {
	// Resolve returns the current payload address a raw handle points to.
	Resolve(rawHandle uintptr) uintptr
}

// Handle is a typed, stable reference to a T value living on a collector's
// heap. Its zero value is not meaningful; handles are produced by a
// collector's Allocate/AddRoot operations.
type Handle[T gctrace.Traceable] struct {
	raw uintptr
}

// HandleFromRaw wraps a raw handle address returned by a collector's
// allocator. Collector packages use this to hand back a typed Handle from
// their own untyped allocation plumbing.
func HandleFromRaw[T gctrace.Traceable](raw uintptr) Handle[T] {
	return Handle[T]{raw: raw}
}

// Raw returns the handle's underlying address, for collectors that need to
// store it in a root set or pass it back across the gctrace boundary.
func (h Handle[T]) Raw() uintptr {
	return h.raw
}

// Get resolves the handle to its current value via acc, copying it out of
// the heap. Spec §4.2 specifies get(&accessor) -> &T, a borrowed reference
// into the heap; a Go value copy is used instead, since Go has no way to
// hand back a reference into memory a later compaction may relocate out
// from under it. The returned value is a snapshot: mutating it does not
// write back through the handle.
func (h Handle[T]) Get(acc Accessor) T {
	payload := acc.Resolve(h.raw)
	return *(*T)(ptrAt(payload))
}

// Set overwrites the value h currently points to. Handles are plain,
// copyable addresses with no borrow checking behind them, so nothing
// prevents building a cycle by allocating two objects and then writing each
// one's child handle to point at the other, the construction spec §8's
// cycle-termination scenario relies on.
func (h Handle[T]) Set(acc Accessor, value T) {
	payload := acc.Resolve(h.raw)
	*(*T)(ptrAt(payload)) = value
}

// Trace makes Handle[T] itself a gctrace.Traceable: a struct field of type
// Handle[Child] can be traced the same way any other field is, by the
// enclosing type's own Trace method calling h.Trace(t) in turn. It marks
// the object h currently points to and, the first time any handle reaches
// a given object in a cycle, recurses into that object's own Trace method.
func (h Handle[T]) Trace(t *gctrace.Tracer) {
	Visit[T](t, h)
}

// Visit is the generic free function backing Handle[T].Trace. It marks the
// object h points to through t.VisitRaw and, only if that object had not
// already been visited this cycle, calls the object's own Trace method. It
// uses the same type parameter T as the handle it is given.
func Visit[T gctrace.Traceable](t *gctrace.Tracer, h Handle[T]) {
	payload, alreadyVisited := t.VisitRaw(h.raw)
	if alreadyVisited {
		return
	}
	(*(*T)(ptrAt(payload))).Trace(t)
}
