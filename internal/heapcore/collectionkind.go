package heapcore

import "fmt"

// CollectionKind enumerates the request vocabulary spec §4.4 describes for
// Heap.request_gc. Both collectors in this module collapse every kind to
// "perform a full collection at the next yield point" (spec §9's Open
// Questions notes this is permitted), but the vocabulary itself is kept
// intact since original_source/src/alloc/api.rs defines the same closed
// set.
type CollectionKind struct {
	tag    collectionTag
	layout AllocLayout // only meaningful when tag == kindAllocAtLeast
	custom uint64      // only meaningful when tag == kindCustom
}

type collectionTag int

const (
	kindFull collectionTag = iota
	kindPartial
	kindAllocAtLeast
	kindSuggest
	kindCustom
)

// AllocLayout describes the size/alignment pair a Full-ish collection was
// requested to guarantee room for, mirroring std::alloc::Layout in the
// AllocAtLeast(layout) variant.
type AllocLayout struct {
	Size  uintptr
	Align uintptr
}

// Full requests an unconditional full collection.
func Full() CollectionKind { return CollectionKind{tag: kindFull} }

// Partial requests a (currently unimplemented) partial collection; it
// collapses to Full.
func Partial() CollectionKind { return CollectionKind{tag: kindPartial} }

// AllocAtLeast requests a collection sized to guarantee room for layout
// afterwards; it collapses to Full.
func AllocAtLeast(layout AllocLayout) CollectionKind {
	return CollectionKind{tag: kindAllocAtLeast, layout: layout}
}

// Suggest requests a collection the collector is free to ignore; it
// collapses to Full.
func Suggest() CollectionKind { return CollectionKind{tag: kindSuggest} }

// Custom carries a collector-specific request code; it collapses to Full.
func Custom(code uint64) CollectionKind {
	return CollectionKind{tag: kindCustom, custom: code}
}

func (k CollectionKind) String() string {
	switch k.tag {
	case kindFull:
		return "Full"
	case kindPartial:
		return "Partial"
	case kindAllocAtLeast:
		return fmt.Sprintf("AllocAtLeast(%+v)", k.layout)
	case kindSuggest:
		return "Suggest"
	case kindCustom:
		return fmt.Sprintf("Custom(%d)", k.custom)
	default:
		return "Unknown"
	}
}
