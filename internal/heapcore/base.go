// Package heapcore implements the allocation and compaction mechanics
// shared by every collector in this module (component C1, "Heap", from the
// spec's system overview). It intentionally knows nothing about object
// tracing or root sets; marksweep and markcompact each build a Façade
// (component C4) on top of it, supplying only how they lay out their
// per-object header and how they keep the handle table in sync during a
// sweep.
package heapcore

import (
	"unsafe"

	"github.com/jmeggitt/gc-api/gcerr"
	"github.com/jmeggitt/gc-api/internal/handle"
	"github.com/jmeggitt/gc-api/internal/memregion"
)

// Base is the bump-allocated heap region plus the handle table built on top
// of it. It implements spec §4.1's allocation and sweep protocols in a form
// generic over a collector's header layout.
type Base struct {
	region *memregion.Region
	start  uintptr
	end    uintptr
	cursor uintptr

	Handles *handle.Table

	GlobalMarkState bool
	RequestedGC     bool

	totalAlloc uint64
	mallocs    uint64
	frees      uint64
}

// NewBase reserves a capacity-byte region and an empty handle table.
func NewBase(capacity uintptr) (*Base, error) {
	if capacity == 0 {
		return nil, gcerr.Newf(gcerr.IllegalState, "heap capacity must be greater than zero")
	}

	region, err := memregion.New(capacity)
	if err != nil {
		return nil, gcerr.Newf(gcerr.Other, "reserving heap region: %w", err)
	}

	return &Base{
		region:  region,
		start:   region.Start(),
		end:     region.End(),
		cursor:  region.Start(),
		Handles: handle.New(),
	}, nil
}

// Close releases the heap's backing memory. The Base must not be used
// afterwards.
func (b *Base) Close() error {
	return b.region.Close()
}

// Start, End, and Cursor expose the heap's region bounds and write cursor,
// per spec §3's "Heap region" data model.
func (b *Base) Start() uintptr  { return b.start }
func (b *Base) End() uintptr    { return b.end }
func (b *Base) Cursor() uintptr { return b.cursor }

// Used returns cursor - start; Free returns end - cursor.
func (b *Base) Used() uintptr { return b.cursor - b.start }
func (b *Base) Free() uintptr { return b.end - b.cursor }

// IsOnHeap reports whether addr falls within [start, cursor), the live
// range of the heap.
func (b *Base) IsOnHeap(addr uintptr) bool {
	return addr >= b.start && addr < b.cursor
}

// Allocate performs spec §4.1's allocation protocol: it validates alignment,
// computes the next object's header and payload addresses, checks for
// space, claims a handle slot, and lets the caller write its header bytes.
// headerSize is the total size in bytes of the collector's per-object
// header (which always begins with a MarkWord); writeHeader is invoked with
// the header address, the freshly claimed handle slot, and the packed mark
// word. Allocate does not write the mark word itself: writeHeader must store
// it at the header address, and may fill in any further header bytes (e.g.
// a back-pointer to the slot).
func (b *Base) Allocate(size, align, headerSize uintptr, writeHeader func(headerAddr, slotAddr uintptr, mark MarkWord)) (slotAddr uintptr, err error) {
	if align > FixedAlign {
		return 0, gcerr.New(gcerr.UnsupportedAlignment, nil)
	}

	headerAddr, payloadAddr := NextObject(b.cursor, headerSize)
	newCursor := payloadAddr + size
	if newCursor > b.end {
		return 0, gcerr.New(gcerr.OutOfMemory, nil)
	}

	mark := NewMarkWord(size, b.GlobalMarkState)
	slot := b.Handles.ClaimSlot()
	b.Handles.Set(slot, payloadAddr)
	writeHeader(headerAddr, slot, mark)

	b.cursor = newCursor
	b.totalAlloc += uint64(size)
	b.mallocs++

	return slot, nil
}

// Sweep implements spec §4.1's sweep/compact protocol. headerSize is the
// collector's per-object header size. onLive is invoked, after an object's
// header and payload bytes have already been relocated to dstHeader and
// dstPayload, so that the collector can repoint the handle table at the
// object's new location; onDead is invoked for an unmarked object before it
// is skipped, so the collector can release its handle slot. Sweep returns
// the number of bytes reclaimed.
func (b *Base) Sweep(headerSize uintptr, onLive func(dstHeader, srcPayload, dstPayload, length uintptr), onDead func(srcHeader, srcPayload, length uintptr)) uintptr {
	oldCursor := b.cursor
	src := b.start
	dst := b.start

	for src < b.cursor {
		srcHeader, srcPayload := NextObject(src, headerSize)
		mark := markWordAt(srcHeader)
		length := mark.Length()

		if mark.State() == b.GlobalMarkState {
			dstHeader, dstPayload := NextObject(dst, headerSize)
			copyBytes(dstHeader, srcHeader, headerSize)
			copyBytes(dstPayload, srcPayload, length)
			onLive(dstHeader, srcPayload, dstPayload, length)
			dst = dstPayload + length
		} else {
			onDead(srcHeader, srcPayload, length)
			b.frees++
		}

		src = srcPayload + length
	}

	if src != b.cursor {
		panic("heapcore: sweep corruption, final cursor mismatch")
	}

	b.cursor = dst
	return oldCursor - dst
}

func copyBytes(dst, src, n uintptr) {
	if n == 0 {
		return
	}
	copy(bytesAt(dst, n), bytesAt(src, n))
}

func bytesAt(addr, n uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(n))
}

// Stats is the plain, dependency-free counterpart to gcmetrics' Prometheus
// collector, modeled on the teacher's runtime.MemStats
// (src/runtime/gc_blocks.go).
type Stats struct {
	Sys        uint64 // total size of the reserved heap region, in bytes
	HeapInuse  uint64 // bytes currently occupied by live objects
	HeapIdle   uint64 // bytes currently free
	TotalAlloc uint64 // cumulative bytes ever allocated
	Mallocs    uint64 // cumulative allocation count
	Frees      uint64 // cumulative count of objects reclaimed by a sweep
	NumChunks  int    // number of handle-table chunks currently allocated
}

// ReadStats populates a Stats snapshot from the heap's current state.
func (b *Base) ReadStats() Stats {
	return Stats{
		Sys:        uint64(b.end - b.start),
		HeapInuse:  uint64(b.Used()),
		HeapIdle:   uint64(b.Free()),
		TotalAlloc: b.totalAlloc,
		Mallocs:    b.mallocs,
		Frees:      b.frees,
		NumChunks:  b.Handles.ChunkCount(),
	}
}
