package heapcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkWordPacksLengthAndState(t *testing.T) {
	m := NewMarkWord(128, true)
	require.Equal(t, uintptr(128), m.Length())
	require.True(t, m.State())

	m2 := NewMarkWord(64, false)
	require.Equal(t, uintptr(64), m2.Length())
	require.False(t, m2.State())
}

func TestMarkWordSwapStateReturnsPrevious(t *testing.T) {
	m := NewMarkWord(16, false)

	previous := m.SwapState(true)
	require.False(t, previous)
	require.True(t, m.State())
	require.Equal(t, uintptr(16), m.Length(), "swapping state must not disturb the packed length")

	previous = m.SwapState(true)
	require.True(t, previous, "swapping to the same state returns that state as previous")
}

func TestNewMarkWordPanicsOnLengthCollidingWithMarkBit(t *testing.T) {
	require.Panics(t, func() {
		NewMarkWord(markBit, false)
	})
}
