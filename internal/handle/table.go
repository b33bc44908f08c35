// Package handle implements the stable indirection table external handles
// are built on top of: a growable arena of pinned, pointer-sized slots. It
// is the Go counterpart of the reference implementation's PtrArena
// (examples/mark_and_sweep/src/ptr_arena.rs): a slot either holds the
// current address of an object's payload (occupied) or the address of the
// next free slot (free), with occupied-vs-free distinguished solely by
// whether the stored value falls inside or outside the table's own chunks.
//
// Slot values are stored as raw uintptr rather than unsafe.Pointer. Payload
// addresses point into a heap region reserved outside the Go runtime's own
// heap (see internal/memregion), so there is nothing for the garbage
// collector to usefully scan there; keeping slots untyped also means a
// chunk's backing array never looks, to the Go GC, like it holds live
// references into arbitrary heap objects. Chunk arrays themselves are kept
// alive for the lifetime of the Table by the chunks slice, and Go's
// allocator does not relocate heap-escaped objects, so addresses handed out
// as external handles remain valid for as long as the chunk is referenced.
package handle

import "unsafe"

// ChunkSize is the number of slots allocated per growth chunk, matching the
// reference implementation's fixed 1024-entry PtrArenaChunk.
const ChunkSize = 1024

type chunk = [ChunkSize]uintptr

// Table is a growable, pinned arena of indirection slots.
//
// The zero value is not usable; construct one with New.
type Table struct {
	chunks  []*chunk
	freePtr uintptr // address of the head of the free list; 0 means "allocate a new chunk"
}

// New creates a Table with a single initial chunk, matching the reference
// implementation which allocates its first slab eagerly.
func New() *Table {
	t := &Table{}
	t.growChunk()
	return t
}

func (t *Table) growChunk() {
	c := new(chunk)
	t.chunks = append(t.chunks, c)

	// Link every slot in the new chunk to the next one, terminating in 0 (no
	// more free slots, triggering another chunk grow on the next claim).
	for i := 0; i < ChunkSize-1; i++ {
		c[i] = addrOf(&c[i+1])
	}
	c[ChunkSize-1] = 0

	t.freePtr = addrOf(&c[0])
}

// ClaimSlot pops the head of the free list, growing the table by one chunk
// first if the free list is exhausted. It returns the address of the
// claimed slot; callers must immediately store a payload address into it via
// Set.
func (t *Table) ClaimSlot() uintptr {
	if t.freePtr == 0 {
		t.growChunk()
	}

	slot := t.freePtr
	t.freePtr = *slotPtr(slot)
	return slot
}

// Set stores a payload address into the slot at handle.
func (t *Table) Set(handleAddr, payload uintptr) {
	*slotPtr(handleAddr) = payload
}

// Get reads the current payload address stored at handle.
func (t *Table) Get(handleAddr uintptr) uintptr {
	return *slotPtr(handleAddr)
}

// FreeSlotByValue scans every chunk for the slot whose current value equals
// payload, and returns it to the free list. It panics if no such slot
// exists, matching the reference implementation's "Failed to find slot to
// free" assertion: callers only ever free a slot they previously observed
// holding that exact payload address.
func (t *Table) FreeSlotByValue(payload uintptr) {
	for _, c := range t.chunks {
		for i := range c {
			if c[i] == payload {
				addr := addrOf(&c[i])
				c[i] = t.freePtr
				t.freePtr = addr
				return
			}
		}
	}
	panic("handle: failed to find slot to free")
}

// ReleaseSlot returns the slot at the given address directly to the free
// list, without scanning for it. Used by collectors that keep a
// back-pointer to their handle slot in the object header, avoiding the
// O(N_slots) scan FreeSlotByValue requires.
func (t *Table) ReleaseSlot(slotAddr uintptr) {
	*slotPtr(slotAddr) = t.freePtr
	t.freePtr = slotAddr
}

// UpdateSlotByValue rewrites the slot currently holding previous to hold
// next instead. Used by a collector's sweep to repoint handles at objects
// that were relocated during compaction.
func (t *Table) UpdateSlotByValue(previous, next uintptr) {
	for _, c := range t.chunks {
		for i := range c {
			if c[i] == previous {
				c[i] = next
				return
			}
		}
	}
	panic("handle: failed to find slot to update")
}

// Contains reports whether addr lies within any chunk's slot range. It is
// used to distinguish a handle address (which lies inside a chunk) from a
// heap payload address (which never does).
func (t *Table) Contains(addr uintptr) bool {
	for _, c := range t.chunks {
		start := addrOf(&c[0])
		end := addrOf(&c[ChunkSize-1])
		if addr >= start && addr <= end {
			return true
		}
	}
	return false
}

// ChunkCount reports how many chunks the table has grown to, for
// instrumentation (gcmetrics).
func (t *Table) ChunkCount() int {
	return len(t.chunks)
}

func addrOf(slot *uintptr) uintptr {
	return uintptr(unsafe.Pointer(slot))
}

func slotPtr(addr uintptr) *uintptr {
	return (*uintptr)(unsafe.Pointer(addr))
}
