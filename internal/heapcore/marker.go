package heapcore

// BlindTransmute is a reserved marker carried over from
// original_source/src/marker.rs. The original crate reserves an empty
// marker trait for a planned mechanism to reinterpret a handle's static
// type without allocator involvement; neither example collector implements
// it. This interface is kept, with nothing implementing it, so the
// vocabulary survives without fabricating the mechanism itself (spec §9,
// Design Notes).
type BlindTransmute interface {
	blindTransmute()
}
