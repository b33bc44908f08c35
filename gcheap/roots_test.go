package gcheap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmeggitt/gc-api/gctrace"
)

// recordingLeaf is a minimal Traceable that records whether it was visited,
// standing in for a real heap object in these gcheap-level tests.
type recordingLeaf struct {
	visited *bool
}

func (l recordingLeaf) Trace(*gctrace.Tracer) {
	*l.visited = true
}

func TestAddRootAndRemoveRoundTrip(t *testing.T) {
	roots := NewRoots()
	require.Equal(t, 0, roots.Len())

	h := HandleFromRaw[recordingLeaf](0x1000)
	idx := AddRoot[recordingLeaf](roots, h)
	require.Equal(t, 1, roots.Len())

	require.True(t, roots.Remove(idx))
	require.Equal(t, 0, roots.Len())
}

func TestRemoveDoesNotRenumberOtherRoots(t *testing.T) {
	roots := NewRoots()

	idxA := AddRoot[recordingLeaf](roots, HandleFromRaw[recordingLeaf](0x1000))
	idxB := AddRoot[recordingLeaf](roots, HandleFromRaw[recordingLeaf](0x2000))

	require.True(t, roots.Remove(idxA))
	require.Equal(t, 1, roots.Len())

	// idxB must still be valid and refer to the same logical root.
	require.True(t, roots.Remove(idxB))
	require.Equal(t, 0, roots.Len())
}

func TestRemoveOfNonLiveRootReturnsFalse(t *testing.T) {
	roots := NewRoots()
	idx := AddRoot[recordingLeaf](roots, HandleFromRaw[recordingLeaf](0x1000))
	require.True(t, roots.Remove(idx))

	require.False(t, roots.Remove(idx), "removing an already-removed index is legal and reports no-op")
}

func TestRemoveOfOutOfRangeIndexReturnsFalse(t *testing.T) {
	roots := NewRoots()
	require.False(t, roots.Remove(RootIndex(42)))
}

func TestAddRootReusesTombstonedSlot(t *testing.T) {
	roots := NewRoots()

	idxA := AddRoot[recordingLeaf](roots, HandleFromRaw[recordingLeaf](0x1000))
	require.True(t, roots.Remove(idxA))

	idxC := AddRoot[recordingLeaf](roots, HandleFromRaw[recordingLeaf](0x3000))
	require.Equal(t, idxA, idxC, "a tombstoned index should be reused before growing")
}
