package gctrace

// Optional wraps a Traceable value that may be absent. It mirrors
// Option<T>'s blanket Trace impl in original_source/src/trace_impls.rs.
type Optional[T Traceable] struct {
	Value   T
	Present bool
}

// Some wraps a present value.
func Some[T Traceable](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// None returns an absent Optional of type T.
func None[T Traceable]() Optional[T] {
	return Optional[T]{}
}

// Trace visits the wrapped value only if present.
func (o Optional[T]) Trace(t *Tracer) {
	if o.Present {
		o.Value.Trace(t)
	}
}

// Slice wraps a slice of Traceable elements, tracing each in turn. Go has
// no const-generic array length type parameter, so unlike
// original_source's fixed-size array impls (impl<T, const N: usize> Trace
// for [T; N]), this single type covers both slices and what would be
// fixed-size arrays in the original: callers needing array semantics keep
// a Go array and wrap a slice of it.
type Slice[T Traceable] struct {
	Values []T
}

// Trace visits every element.
func (s Slice[T]) Trace(t *Tracer) {
	for _, v := range s.Values {
		v.Trace(t)
	}
}

// Boxed wraps a single owned Traceable value, mirroring Box<T>.
type Boxed[T Traceable] struct {
	Value T
}

// Trace visits the boxed value.
func (b Boxed[T]) Trace(t *Tracer) {
	b.Value.Trace(t)
}

// Shared wraps a reference-counted Traceable value, mirroring Rc<T>/Arc<T>
// from original_source/src/trace_impls.rs. The reference count itself is
// ordinary Go data owned by the caller; Shared only carries the tracing
// obligation through to the pointee.
type Shared[T Traceable] struct {
	Value *T
}

// Trace visits the pointee if non-nil. Cycles through Shared values
// terminate the same way any other handle cycle does: via the mark-bit
// swap in Tracer.VisitRaw that the pointee's own Trace method eventually
// reaches.
func (s Shared[T]) Trace(t *Tracer) {
	if s.Value != nil {
		(*s.Value).Trace(t)
	}
}

// Cow wraps a copy-on-write Traceable value, mirroring Cow<'a, T> from
// original_source. Whether the value is currently borrowed or owned makes
// no difference to tracing: either way the current value is traced.
type Cow[T Traceable] struct {
	Value T
}

// Trace visits the current value regardless of ownership state.
func (c Cow[T]) Trace(t *Tracer) {
	c.Value.Trace(t)
}
