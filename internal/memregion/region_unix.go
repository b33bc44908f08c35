//go:build unix

package memregion

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// New reserves a new anonymous, page-aligned mapping of exactly size bytes.
// The mapping is zero-filled by the kernel, matching the reference
// implementation's expectation that freshly reserved heap memory starts
// clean.
func New(size uintptr) (*Region, error) {
	mapping, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}

	return &Region{
		base: unsafe.Pointer(&mapping[0]),
		size: size,
		impl: &mmapRegion{mapping: mapping},
	}, nil
}

type mmapRegion struct {
	mapping []byte
}

func (m *mmapRegion) close(_ *Region) error {
	return unix.Munmap(m.mapping)
}
