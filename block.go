package memkit

import "unsafe"

// Block is an addressed byte range handed across the allocator contract.
//
// A block is either null (the zero value: nil pointer, zero length) or points
// to Len bytes of live, owned, uninitialised storage. The null block denotes
// allocation failure. Blocks carry no ownership themselves; ownership is
// expressed by which allocator instance a caller returns them to.
type Block struct {
	Ptr unsafe.Pointer
	Len int
}

// NullBlock is the distinguished failure value.
var NullBlock Block

// IsNull reports whether b denotes allocation failure.
func (b Block) IsNull() bool {
	return b.Ptr == nil
}

// End returns the address one past the last byte of the block.
func (b Block) End() unsafe.Pointer {
	return unsafe.Add(b.Ptr, b.Len)
}

// Bytes returns the block's storage as a byte slice.
//
// The slice aliases the block's memory and is valid only until the block is
// deallocated. Returns nil for the null block.
func (b Block) Bytes() []byte {
	if b.IsNull() {
		return nil
	}
	return unsafe.Slice((*byte)(b.Ptr), b.Len)
}

// within reports whether b's range lies entirely inside [base, base+size).
func (b Block) within(base unsafe.Pointer, size int) bool {
	if b.IsNull() {
		return false
	}
	start := uintptr(b.Ptr)
	lo := uintptr(base)
	return start >= lo && start+uintptr(b.Len) <= lo+uintptr(size)
}
