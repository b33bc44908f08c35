package marksweep

import "unsafe"

func ptrAt(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr)
}

func sizeAlignOf[T any](value T) (size, align uintptr) {
	return unsafe.Sizeof(value), unsafe.Alignof(value)
}

func writePayload[T any](addr uintptr, value T) {
	*(*T)(unsafe.Pointer(addr)) = value
}
