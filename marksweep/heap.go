// Package marksweep implements spec §5's Mark-and-Sweep collector: a Heap
// that traces live objects, reclaims dead ones, and slides the survivors
// down over the reclaimed gaps, at the cost of an O(N_objects × N_slots)
// handle-table scan during sweep to find each relocated or freed object's
// slot. Spec §9's Open Questions explicitly permits this complexity
// trade-off as the naive baseline, contrasted with markcompact's
// back-pointer strategy.
package marksweep

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/jmeggitt/gc-api/gcerr"
	"github.com/jmeggitt/gc-api/gcheap"
	"github.com/jmeggitt/gc-api/gctrace"
	"github.com/jmeggitt/gc-api/internal/heapcore"
)

// header is this collector's per-object metadata: just the shared mark
// word, with no back-pointer to the handle slot. Finding an object's slot
// at sweep time costs an O(N_slots) scan (handle.Table.FreeSlotByValue),
// which is the trade this collector makes for the simplest possible
// header.
type header struct {
	mark heapcore.MarkWord
}

const headerSize = unsafe.Sizeof(header{})

// Heap is a Mark-and-Sweep collector façade: component C4 wired on top of
// heapcore.Base, gcheap's typed handles, and gctrace's tracing protocol.
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

// allocateOnce performs a single allocation attempt with no retry: it fails
// immediately with gcerr.OutOfMemory if the heap has insufficient free
// space. Both Allocate and TryAllocate are built on top of this.
func allocateOnce[T gctrace.Traceable](h *Heap, value T) (gcheap.Handle[T], error) {
	var size, align uintptr
	size, align = sizeAlignOf(value)

	slot, err := h.base.Allocate(size, align, headerSize, func(headerAddr, _ uintptr, mark heapcore.MarkWord) {
		writeHeader(headerAddr, mark)
		writePayload(headerAddr+headerSize, value)
	})
	if err != nil {
		return gcheap.Handle[T]{}, err
	}

	return gcheap.HandleFromRaw[T](slot), nil
}

// TryAllocate implements spec §4.4's fallible allocation retry protocol:
// request a collection, run it at the next yield point, and retry, up to
// Config.MaxAllocRetries times, surfacing gcerr.OutOfMemory if every retry
// is exhausted.
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
// underlying error if every retry is exhausted, rather than making every
// call site handle an error that is usually a fatal, out-of-memory
// condition.
func Allocate[T gctrace.Traceable](h *Heap, value T) gcheap.Handle[T] {
	handle, err := TryAllocate(h, value)
	if err != nil {
		panic(err)
	}
	return handle
}

// AddRoot registers handle as a root, per spec §4.4.
func AddRoot[T gctrace.Traceable](h *Heap, handle gcheap.Handle[T]) gcheap.RootIndex {
	return gcheap.AddRoot[T](h.roots, handle)
}

// RemoveRoot unregisters a previously added root, reporting whether a live
// root was actually removed. Removing an index twice, or one that was
// never returned by AddRoot, is a legal no-op per spec §4.4 and reports
// false rather than panicking.
func (h *Heap) RemoveRoot(idx gcheap.RootIndex) bool {
	return h.roots.Remove(idx)
}

// RequestGC records that a collection of the given kind should run at the
// next yield point. Every CollectionKind collapses to a full collection in
// this module (spec §9's Open Questions).
func (h *Heap) RequestGC(heapcore.CollectionKind) {
	h.base.RequestedGC = true
}

// YieldPoint implements spec §4.4's yield-point protocol: if a collection
// was requested, run one full mark-and-sweep cycle now. It is a no-op if
// no collection is pending.
func (h *Heap) YieldPoint() {
	if !h.base.RequestedGC {
		return
	}
	h.collect()
	h.base.RequestedGC = false
}

func (h *Heap) collect() {
	h.config.Logger.Debug("marksweep: collection starting",
		zap.Uint64("used", uint64(h.base.Used())),
		zap.Int("roots", h.roots.Len()))

	h.base.GlobalMarkState = !h.base.GlobalMarkState
	tracer := gctrace.NewTracer(h.base.Handles, headerSize, h.base.GlobalMarkState)
	h.roots.Trace(tracer)
	traced := tracer.Traced()

	reclaimed := h.base.Sweep(headerSize,
		func(dstHeader, srcPayload, dstPayload, length uintptr) {
			if dstPayload != srcPayload {
				h.base.Handles.UpdateSlotByValue(srcPayload, dstPayload)
			}
		},
		func(srcHeader, srcPayload, length uintptr) {
			h.base.Handles.FreeSlotByValue(srcPayload)
		},
	)

	h.config.Logger.Info("marksweep: collection finished",
		zap.Int("traced", traced),
		zap.Uint64("reclaimed", uint64(reclaimed)))
}

func writeHeader(headerAddr uintptr, mark heapcore.MarkWord) {
	(*header)(ptrAt(headerAddr)).mark = mark
}
