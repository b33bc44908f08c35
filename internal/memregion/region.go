// Package memregion reserves the raw, contiguous byte region a heap is built
// on top of. It is the Go analogue of the reference implementation's
// System.alloc/System.dealloc calls against a page-aligned std::alloc::Layout:
// a region that lives outside of any Go-managed slice lifetime concerns, big
// enough to hold the whole heap, and released as a single unit on Close.
package memregion

import "unsafe"

// PageAlignment is the alignment the reference implementation requests for
// its heap allocation (HEAP_ALIGNMENT in inner/heap.rs). It is also used as
// the fallback alignment on platforms without a page-aligned mapping
// primitive.
const PageAlignment = 4096

// Region is a reserved, page-aligned block of memory of a fixed size.
// A Region must be released with Close once a heap no longer needs it.
type Region struct {
	base unsafe.Pointer
	size uintptr
	impl regionImpl
}

// Base returns the address of the first byte of the region.
func (r *Region) Base() unsafe.Pointer {
	return r.base
}

// Size returns the region's length in bytes.
func (r *Region) Size() uintptr {
	return r.size
}

// Start returns the region's base address as a uintptr, for cursor
// arithmetic in heapcore.
func (r *Region) Start() uintptr {
	return uintptr(r.base)
}

// End returns the address just past the last byte of the region.
func (r *Region) End() uintptr {
	return uintptr(r.base) + r.size
}

// Close releases the region's backing memory. The region must not be used
// afterwards.
func (r *Region) Close() error {
	return r.impl.close(r)
}

type regionImpl interface {
	close(r *Region) error
}
