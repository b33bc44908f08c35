package heapcore

import "unsafe"

// WordSize is the size in bytes of a machine word on the target platform.
const WordSize = unsafe.Sizeof(uintptr(0))

// FixedAlign is the strongest alignment the heap guarantees any payload, per
// spec §3: objects are aligned to a single machine word. Requests for a
// stronger alignment fail with gcerr.UnsupportedAlignment.
const FixedAlign = 8

// markBit occupies the top bit of a machine word; the remaining bits hold
// the object's payload length. This mirrors inner/mark.rs's MarkWord, which
// packs the same two fields into a single usize.
const markBit = uintptr(1) << (WordSize*8 - 1)

// MarkWord is the one-word object header prefixing every payload: the top
// bit is the mark state for the current collection cycle, the rest is the
// payload length in bytes.
type MarkWord struct {
	value uintptr
}

// NewMarkWord packs length and an initial mark state into a MarkWord. It
// panics if length is large enough to collide with the mark bit, which spec
// §3 notes is "trivially true on realistic heaps".
func NewMarkWord(length uintptr, mark bool) MarkWord {
	if length&markBit != 0 {
		panic("heapcore: object length too large to encode in a mark word")
	}
	v := length
	if mark {
		v |= markBit
	}
	return MarkWord{value: v}
}

// Length returns the packed payload length in bytes.
func (m MarkWord) Length() uintptr {
	return m.value &^ markBit
}

// State returns the packed mark bit.
func (m MarkWord) State() bool {
	return m.value&markBit != 0
}

// SwapState overwrites the mark bit with newState and returns the bit's
// previous value. This is the fast path the trace engine uses to both test
// and set "already visited" in a single step (spec §4.3).
func (m *MarkWord) SwapState(newState bool) bool {
	old := m.State()
	if newState {
		m.value |= markBit
	} else {
		m.value &^= markBit
	}
	return old
}

// markWordAt reinterprets the bytes at addr as a *MarkWord. The mark word is
// always the first field of an object header, regardless of how much
// additional header data a particular collector stores after it.
func markWordAt(addr uintptr) *MarkWord {
	return (*MarkWord)(unsafe.Pointer(addr))
}

// HeaderMarkWord exposes markWordAt to other packages in this module (the
// trace engine needs to read/swap the mark bit given a header address, but
// has no other reason to depend on heapcore's internals).
func HeaderMarkWord(headerAddr uintptr) *MarkWord {
	return markWordAt(headerAddr)
}
