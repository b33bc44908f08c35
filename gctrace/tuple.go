package gctrace

// Tuple2 through Tuple4 cover original_source/src/trace_impls.rs's blanket
// tuple impls (impl<A, B> Trace for (A, B), up through arity 12). Go has no
// variadic generics, so each arity needs its own type; stopping at four
// rather than hand-writing all twelve is an accepted reduction in coverage,
// not a claim that higher arities are unneeded — a caller with a five-plus
// field tuple has no built-in wrapper here and must write its own Trace
// method or nest Tuple4 values.

// Tuple2 traces two Traceable fields in order.
type Tuple2[A, B Traceable] struct {
	First  A
	Second B
}

func (t Tuple2[A, B]) Trace(tr *Tracer) {
	t.First.Trace(tr)
	t.Second.Trace(tr)
}

// Tuple3 traces three Traceable fields in order.
type Tuple3[A, B, C Traceable] struct {
	First  A
	Second B
	Third  C
}

func (t Tuple3[A, B, C]) Trace(tr *Tracer) {
	t.First.Trace(tr)
	t.Second.Trace(tr)
	t.Third.Trace(tr)
}

// Tuple4 traces four Traceable fields in order.
type Tuple4[A, B, C, D Traceable] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func (t Tuple4[A, B, C, D]) Trace(tr *Tracer) {
	t.First.Trace(tr)
	t.Second.Trace(tr)
	t.Third.Trace(tr)
	t.Fourth.Trace(tr)
}
