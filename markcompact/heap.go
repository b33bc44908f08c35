// Package markcompact implements spec §5's Mark-and-Compact collector: a
// Heap that slides live objects down to the front of the region during
// sweep, eliminating fragmentation entirely. Each object's header stores a
// back-pointer to its own handle-table slot, so relocating the object or
// releasing its slot is O(1) instead of the O(N_slots) scan
// marksweep.Heap performs — the complexity spec §9's Open Questions
// section explicitly allows a collector to trade a larger header for.
package markcompact

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/jmeggitt/gc-api/gcerr"
	"github.com/jmeggitt/gc-api/gcheap"
	"github.com/jmeggitt/gc-api/gctrace"
	"github.com/jmeggitt/gc-api/internal/heapcore"
)

// header is this collector's per-object metadata: the shared mark word,
// plus the address of this object's own slot in the handle table. Storing
// the back-pointer here is what lets Sweep relocate an object and update
// its handle in constant time.
type header struct {
	mark heapcore.MarkWord
	slot uintptr
}

const headerSize = unsafe.Sizeof(header{})

// Heap is a Mark-and-Compact collector façade.
type Heap struct {
	base   *heapcore.Base
	roots  *gcheap.Roots
	config heapcore.Config
}

// New constructs a Heap reserving capacity bytes of heap region.
func New(capacity uintptr, opts ...heapcore.Option) (*Heap, error) {
	base, err := heapcore.NewBase(capacity)
	if err != nil {
		return nil, err
	}

	return &Heap{
		base:   base,
		roots:  gcheap.NewRoots(),
		config: heapcore.Apply(heapcore.DefaultConfig(), opts...),
	}, nil
}

// Close releases the heap's backing memory.
func (h *Heap) Close() error {
	return h.base.Close()
}

// Resolve implements gcheap.Accessor.
func (h *Heap) Resolve(rawHandle uintptr) uintptr {
	return h.base.Handles.Get(rawHandle)
}

// Stats reports the heap's current occupancy and cumulative counters.
func (h *Heap) Stats() heapcore.Stats {
	return h.base.ReadStats()
}

// allocateOnce performs a single allocation attempt with no retry. Both
// Allocate and TryAllocate are built on top of this.
func allocateOnce[T gctrace.Traceable](h *Heap, value T) (gcheap.Handle[T], error) {
	size, align := sizeAlignOf(value)

	slot, err := h.base.Allocate(size, align, headerSize, func(headerAddr, slotAddr uintptr, mark heapcore.MarkWord) {
		hdr := (*header)(ptrAt(headerAddr))
		hdr.mark = mark
		hdr.slot = slotAddr
		writePayload(headerAddr+headerSize, value)
	})
	if err != nil {
		return gcheap.Handle[T]{}, err
	}

	return gcheap.HandleFromRaw[T](slot), nil
}

// TryAllocate implements spec §4.4's fallible allocation retry protocol,
// surfacing gcerr.OutOfMemory if every retry is exhausted.
func TryAllocate[T gctrace.Traceable](h *Heap, value T) (gcheap.Handle[T], error) {
	handle, err := allocateOnce(h, value)
	if err == nil {
		return handle, nil
	}
	if !gcerr.Is(err, gcerr.OutOfMemory) {
		return gcheap.Handle[T]{}, err
	}

	for attempt := 0; attempt < h.config.MaxAllocRetries; attempt++ {
		h.RequestGC(heapcore.Full())
		h.YieldPoint()

		handle, err = allocateOnce(h, value)
		if err == nil {
			return handle, nil
		}
		if !gcerr.Is(err, gcerr.OutOfMemory) {
			return gcheap.Handle[T]{}, err
		}
	}

	return gcheap.Handle[T]{}, gcerr.Newf(gcerr.OutOfMemory, "exhausted %d allocation retries", h.config.MaxAllocRetries)
}

// Allocate is the convenience allocation wrapper spec §7 describes: it
// applies the same retry protocol as TryAllocate and panics with the
// underlying error if every retry is exhausted.
func Allocate[T gctrace.Traceable](h *Heap, value T) gcheap.Handle[T] {
	handle, err := TryAllocate(h, value)
	if err != nil {
		panic(err)
	}
	return handle
}

// AddRoot registers handle as a root.
func AddRoot[T gctrace.Traceable](h *Heap, handle gcheap.Handle[T]) gcheap.RootIndex {
	return gcheap.AddRoot[T](h.roots, handle)
}

// RemoveRoot unregisters a previously added root, reporting whether a live
// root was actually removed; removing twice or removing an unknown index
// is legal and reports false rather than panicking.
func (h *Heap) RemoveRoot(idx gcheap.RootIndex) bool {
	return h.roots.Remove(idx)
}

// RequestGC records that a collection should run at the next yield point.
func (h *Heap) RequestGC(heapcore.CollectionKind) {
	h.base.RequestedGC = true
}

// YieldPoint implements spec §4.4's yield-point protocol.
func (h *Heap) YieldPoint() {
	if !h.base.RequestedGC {
		return
	}
	h.collect()
	h.base.RequestedGC = false
}

func (h *Heap) collect() {
	h.config.Logger.Debug("markcompact: collection starting",
		zap.Uint64("used", uint64(h.base.Used())),
		zap.Int("roots", h.roots.Len()))

	h.base.GlobalMarkState = !h.base.GlobalMarkState
	tracer := gctrace.NewTracer(h.base.Handles, headerSize, h.base.GlobalMarkState)
	h.roots.Trace(tracer)
	traced := tracer.Traced()

	reclaimed := h.base.Sweep(headerSize,
		func(dstHeader, srcPayload, dstPayload, length uintptr) {
			hdr := (*header)(ptrAt(dstHeader))
			if dstPayload != srcPayload {
				h.base.Handles.Set(hdr.slot, dstPayload)
			}
		},
		func(srcHeader, srcPayload, length uintptr) {
			hdr := (*header)(ptrAt(srcHeader))
			h.base.Handles.ReleaseSlot(hdr.slot)
		},
	)

	h.config.Logger.Info("markcompact: collection finished",
		zap.Int("traced", traced),
		zap.Uint64("reclaimed", uint64(reclaimed)))
}
