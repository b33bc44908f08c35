package heapcore

import (
	"unsafe"

	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmeggitt/gc-api/gcerr"
)

type testHeader struct {
	mark MarkWord
}

const testHeaderSize = unsafe.Sizeof(testHeader{})

func allocateTestObject(t *testing.T, base *Base, size uintptr) uintptr {
	t.Helper()
	slot, err := base.Allocate(size, FixedAlign, testHeaderSize, func(headerAddr, _ uintptr, mark MarkWord) {
		(*testHeader)(unsafe.Pointer(headerAddr)).mark = mark
	})
	require.NoError(t, err)
	return slot
}

func TestAllocateRejectsOverAlignedRequests(t *testing.T) {
	base, err := NewBase(4096)
	require.NoError(t, err)
	defer base.Close()

	_, err = base.Allocate(8, 16, testHeaderSize, func(uintptr, uintptr, MarkWord) {})
	require.True(t, gcerr.Is(err, gcerr.UnsupportedAlignment))
}

func TestAllocateFailsOutOfMemoryWhenFull(t *testing.T) {
	base, err := NewBase(256)
	require.NoError(t, err)
	defer base.Close()

	var lastErr error
	for i := 0; i < 1000 && lastErr == nil; i++ {
		_, lastErr = base.Allocate(1, FixedAlign, testHeaderSize, func(uintptr, uintptr, MarkWord) {})
	}

	require.Error(t, lastErr)
	require.True(t, gcerr.Is(lastErr, gcerr.OutOfMemory))
}

func TestNewBaseRejectsZeroCapacity(t *testing.T) {
	_, err := NewBase(0)
	require.True(t, gcerr.Is(err, gcerr.IllegalState))
}

// TestGrowAndSweepNoRoots covers spec Scenario 1: allocate many unrooted
// objects, run a sweep with every object left at the collector's initial
// (unmarked) state, and expect the cursor to return all the way to start.
func TestGrowAndSweepNoRoots(t *testing.T) {
	base, err := NewBase(1 << 20)
	require.NoError(t, err)
	defer base.Close()

	for i := 0; i < 1000; i++ {
		allocateTestObject(t, base, 128)
	}
	require.Greater(t, base.Used(), uintptr(0))

	// A real collection cycle flips the global mark state before tracing;
	// with no roots nothing gets re-marked, so every object built up to now
	// is left holding the stale state and is swept as dead.
	base.GlobalMarkState = !base.GlobalMarkState

	var liveCount, deadCount int
	reclaimed := base.Sweep(testHeaderSize,
		func(uintptr, uintptr, uintptr, uintptr) { liveCount++ },
		func(uintptr, uintptr, uintptr) { deadCount++ },
	)

	require.Equal(t, 0, liveCount)
	require.Equal(t, 1000, deadCount)
	require.Equal(t, base.Start(), base.Cursor())
	require.Greater(t, reclaimed, uintptr(0))
}

func TestSweepRetainsObjectsMatchingGlobalMarkState(t *testing.T) {
	base, err := NewBase(1 << 16)
	require.NoError(t, err)
	defer base.Close()

	keep := allocateTestObject(t, base, 64)
	_ = allocateTestObject(t, base, 64)

	// Simulate the start of a new cycle: flip the global mark state, then
	// mark only the object reachable from a root (as a Tracer would).
	base.GlobalMarkState = !base.GlobalMarkState
	keptPayload := base.Handles.Get(keep)
	hdr := (*testHeader)(unsafe.Pointer(keptPayload - testHeaderSize))
	hdr.mark.SwapState(base.GlobalMarkState)

	var liveCount int
	base.Sweep(testHeaderSize,
		func(uintptr, uintptr, uintptr, uintptr) { liveCount++ },
		func(uintptr, uintptr, uintptr) {},
	)

	require.Equal(t, 1, liveCount)
}

func TestAllocationWithExactRemainingSpaceSucceeds(t *testing.T) {
	base, err := NewBase(4096)
	require.NoError(t, err)
	defer base.Close()

	_, payload := NextObject(base.Cursor(), testHeaderSize)
	exact := base.End() - payload

	_, err = base.Allocate(exact, FixedAlign, testHeaderSize, func(uintptr, uintptr, MarkWord) {})
	require.NoError(t, err)
	require.Equal(t, base.End(), base.Cursor())

	_, err = base.Allocate(1, FixedAlign, testHeaderSize, func(uintptr, uintptr, MarkWord) {})
	require.True(t, gcerr.Is(err, gcerr.OutOfMemory))
}
