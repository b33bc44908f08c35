package gcheap

import "unsafe"

// ptrAt reinterprets a heap payload address as a generic pointer. The
// byte layout at addr was written by a collector's Allocate using the same
// type T the caller now reads it back as; gcheap trusts that invariant the
// same way original_source trusts its own raw pointer casts in
// alloc/api.rs.
func ptrAt(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr)
}
