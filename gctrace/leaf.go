package gctrace

// Leaf wraps any value that owns no outgoing handles: integers, floats,
// bools, runes, atomics, non-zero integer wrappers, raw pointers kept only
// for identity, and similar primitives. original_source/src/trace_impls.rs
// gives each of these its own blanket trait impl; Go cannot retroactively
// attach methods to builtin types from outside their package, so this
// module collapses the whole family into one generic no-op wrapper instead.
//
// Embed Leaf[T] in a struct field, or store a value as Leaf[T] directly,
// wherever original_source would have relied on a primitive's built-in
// Trace impl.
type Leaf[T any] struct {
	Value T
}

// NewLeaf wraps a value with no outgoing references.
func NewLeaf[T any](v T) Leaf[T] {
	return Leaf[T]{Value: v}
}

// Trace is a no-op: a leaf owns no handles.
func (Leaf[T]) Trace(*Tracer) {}

// Phantom carries a type parameter with zero runtime representation, for
// callers that need a Traceable placeholder without storing a value at all
// (mirroring Rust's PhantomData<T> usage in original_source).
type Phantom[T any] struct{}

// Trace is a no-op: a phantom marker owns nothing.
func (Phantom[T]) Trace(*Tracer) {}

// ManuallyDrop wraps a value the collector must never trace, mirroring
// original_source's ManuallyDrop<T>: the wrapped value's Trace method is
// never invoked, even if T itself is Traceable.
type ManuallyDrop[T any] struct {
	Value T
}

// Trace is a no-op by definition: that is the entire point of
// ManuallyDrop.
func (ManuallyDrop[T]) Trace(*Tracer) {}
