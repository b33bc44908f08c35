package gctrace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxedTracesItsValue(t *testing.T) {
	var visits []int
	b := Boxed[countingLeaf]{Value: countingLeaf{visits: &visits}}
	b.Trace(nil)
	require.Len(t, visits, 1)
}

func TestSharedTracesThroughPointerRegardlessOfRefcount(t *testing.T) {
	var visits []int
	val := countingLeaf{visits: &visits}

	s := Shared[countingLeaf]{Value: &val}
	s.Trace(nil)
	s.Trace(nil)

	require.Len(t, visits, 2, "Shared has no refcount of its own; every Trace call forwards")
}

func TestSharedNilValueIsNoOp(t *testing.T) {
	var s Shared[countingLeaf]
	require.NotPanics(t, func() { s.Trace(nil) })
}

func TestCowTracesCurrentValue(t *testing.T) {
	var visits []int
	c := Cow[countingLeaf]{Value: countingLeaf{visits: &visits}}
	c.Trace(nil)
	require.Len(t, visits, 1)
}

func TestTuple2TracesBothFields(t *testing.T) {
	var visits []int
	tup := Tuple2[countingLeaf, countingLeaf]{
		First:  countingLeaf{visits: &visits},
		Second: countingLeaf{visits: &visits},
	}
	tup.Trace(nil)
	require.Len(t, visits, 2)
}

func TestPhantomNeverTraces(t *testing.T) {
	require.NotPanics(t, func() { Phantom[int]{}.Trace(nil) })
}
