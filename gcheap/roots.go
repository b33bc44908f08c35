package gcheap

import "github.com/jmeggitt/gc-api/gctrace"

// rootEntry pairs a raw handle with a closure that knows its static type,
// so Roots can trace a heterogeneous set of Handle[T] values without
// reflection (spec §9's Design Notes rules out a reflection-based root
// set). The closure captures the original typed Handle[T] by value.
type rootEntry struct {
	raw   uintptr
	trace func(t *gctrace.Tracer)
	live  bool
}

// RootIndex identifies a root previously added to a Roots container. It
// remains valid, and keeps pointing at the same logical root, across
// removal of other roots: Roots never renumbers its slots.
type RootIndex int

// Roots is a type-erased root set, per spec §4.4: the fixed set of handles
// a collection cycle traces from. Entries are addressed by stable index;
// removing one leaves a tombstone rather than shifting later entries.
type Roots struct {
	entries []rootEntry
	free    []RootIndex
	count   int
}

// NewRoots returns an empty root set.
func NewRoots() *Roots {
	return &Roots{}
}

// AddRoot registers h as a root and returns a stable index for later
// removal. It is a free function, not a Roots method, for the same reason
// Visit is free-standing: a method cannot introduce the type parameter T
// that is not already part of Roots' own (nonexistent) type parameter list.
func AddRoot[T gctrace.Traceable](r *Roots, h Handle[T]) RootIndex {
	entry := rootEntry{raw: h.raw, trace: h.Trace, live: true}

	if len(r.free) > 0 {
		idx := r.free[len(r.free)-1]
		r.free = r.free[:len(r.free)-1]
		r.entries[idx] = entry
		r.count++
		return idx
	}

	r.entries = append(r.entries, entry)
	r.count++
	return RootIndex(len(r.entries) - 1)
}

// Remove tombstones the root at idx, reporting whether a live root was
// actually removed. Removing an index twice, or one that was never
// returned by AddRoot, is a legal no-op that returns false rather than
// panicking, matching remove_by_index in the reference implementation.
func (r *Roots) Remove(idx RootIndex) bool {
	if int(idx) < 0 || int(idx) >= len(r.entries) || !r.entries[idx].live {
		return false
	}
	r.entries[idx] = rootEntry{}
	r.free = append(r.free, idx)
	r.count--
	return true
}

// Len reports the number of currently live roots.
func (r *Roots) Len() int {
	return r.count
}

// Trace visits every live root via t, the entry point a collector calls at
// the start of its mark phase (spec §4.3).
func (r *Roots) Trace(t *gctrace.Tracer) {
	for _, e := range r.entries {
		if e.live {
			e.trace(t)
		}
	}
}
