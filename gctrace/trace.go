// Package gctrace implements the tracing protocol shared by every collector
// in this module (component C3, "Trace Engine"). It knows how to flip an
// object's mark bit and detect whether it has already been visited this
// cycle; it knows nothing about heap layout beyond the single header size a
// collector hands it, and nothing about root storage at all (gcheap owns
// that).
package gctrace

import "github.com/jmeggitt/gc-api/internal/heapcore"

// Traceable is implemented by every type that may be stored behind a
// handle. Trace must call Visit (indirectly, via a child handle's own Trace
// method) on every handle the receiver owns, exactly once per owned
// reference. Types with no outgoing references implement Trace as a no-op;
// see the leaf wrapper types in this package for the common cases.
type Traceable interface {
	Trace(t *Tracer)
}

// handleTable is the subset of *handle.Table the tracer needs: resolving a
// raw handle address to its current payload address. Declared locally so
// this package does not need to import the internal handle package's
// concrete type into its exported surface.
type handleTable interface {
	Get(handleAddr uintptr) uintptr
}

// Tracer walks the object graph from a set of roots, flipping mark bits as
// it goes. Mark polarity is not reset before a cycle; instead the
// collector façade flips its global mark state once per cycle (spec §4.3),
// so a Tracer only ever needs to know the single target state objects
// should end this cycle holding.
type Tracer struct {
	handles    handleTable
	headerSize uintptr
	markState  bool
	traced     int
}

// NewTracer constructs a Tracer for one collection cycle. headerSize is the
// owning collector's per-object header size (always at least one MarkWord);
// markState is the global mark state objects should be left holding once
// visited.
func NewTracer(handles handleTable, headerSize uintptr, markState bool) *Tracer {
	return &Tracer{handles: handles, headerSize: headerSize, markState: markState}
}

// Traced returns how many distinct objects this Tracer has visited so far
// this cycle.
func (t *Tracer) Traced() int {
	return t.traced
}

// VisitRaw is the untyped half of spec §4.3's visit(handle) operation. It
// resolves rawHandle to its current payload address, swaps that object's
// mark word to this cycle's target state, and reports whether the object
// had already been marked — the cycle/DAG-safe termination check callers
// (gcheap.Handle[T].Trace) use to decide whether to recurse into the
// object's own Trace method.
func (t *Tracer) VisitRaw(rawHandle uintptr) (payloadAddr uintptr, alreadyVisited bool) {
	payloadAddr = t.handles.Get(rawHandle)
	headerAddr := payloadAddr - t.headerSize
	mark := heapcore.HeaderMarkWord(headerAddr)

	previous := mark.SwapState(t.markState)
	alreadyVisited = previous == t.markState
	if !alreadyVisited {
		t.traced++
	}
	return payloadAddr, alreadyVisited
}
