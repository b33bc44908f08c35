package handle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClaimSetGetRoundTrip(t *testing.T) {
	tbl := New()

	slot := tbl.ClaimSlot()
	tbl.Set(slot, 0xdeadbeef)

	require.Equal(t, uintptr(0xdeadbeef), tbl.Get(slot))
}

func TestClaimSlotGrowsChunkWhenExhausted(t *testing.T) {
	tbl := New()
	require.Equal(t, 1, tbl.ChunkCount())

	slots := make([]uintptr, ChunkSize+1)
	for i := range slots {
		slots[i] = tbl.ClaimSlot()
		tbl.Set(slots[i], uintptr(i+1))
	}

	require.Equal(t, 2, tbl.ChunkCount())
	for i, slot := range slots {
		require.Equal(t, uintptr(i+1), tbl.Get(slot))
	}
}

func TestFreeSlotByValueReturnsSlotToFreeList(t *testing.T) {
	tbl := New()

	a := tbl.ClaimSlot()
	tbl.Set(a, 100)
	b := tbl.ClaimSlot()
	tbl.Set(b, 200)

	tbl.FreeSlotByValue(100)

	reused := tbl.ClaimSlot()
	require.Equal(t, a, reused, "freed slot should be the next one claimed")
}

func TestFreeSlotByValuePanicsWhenNotFound(t *testing.T) {
	tbl := New()
	require.Panics(t, func() { tbl.FreeSlotByValue(0x1234) })
}

func TestUpdateSlotByValueRepoints(t *testing.T) {
	tbl := New()

	slot := tbl.ClaimSlot()
	tbl.Set(slot, 111)

	tbl.UpdateSlotByValue(111, 222)

	require.Equal(t, uintptr(222), tbl.Get(slot))
}

func TestReleaseSlotIsDirectAndO1(t *testing.T) {
	tbl := New()

	slot := tbl.ClaimSlot()
	tbl.Set(slot, 999)

	tbl.ReleaseSlot(slot)

	reused := tbl.ClaimSlot()
	require.Equal(t, slot, reused)
}

func TestContainsDistinguishesHandleFromPayloadAddress(t *testing.T) {
	tbl := New()
	slot := tbl.ClaimSlot()

	require.True(t, tbl.Contains(slot))
	require.False(t, tbl.Contains(0x7fffffff0000))
}
