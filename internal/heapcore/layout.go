package heapcore

// alignUp rounds addr up to the next multiple of align, which must be a
// power of two. Equivalent to the reference implementation's use of
// <*mut u8>::align_offset against FIXED_ALIGN.
func alignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// NextObject computes the header and payload addresses for the next object
// to be placed at pos, given that this collector's header occupies
// headerSize bytes immediately before the payload. The payload is rounded
// up to FixedAlign; the header sits directly before it.
//
// This generalizes inner/layout.rs's next_obj, which hardcodes headerSize to
// sizeof(MarkWord). A collector that stores extra per-object metadata (e.g.
// a handle-table back-pointer) passes a larger headerSize and gets the same
// layout shape.
func NextObject(pos, headerSize uintptr) (headerAddr, payloadAddr uintptr) {
	payloadAddr = alignUp(pos+headerSize, FixedAlign)
	headerAddr = payloadAddr - headerSize
	return headerAddr, payloadAddr
}
