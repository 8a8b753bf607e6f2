package memkit

import "unsafe"

// PlatformAlignment is the default maximum alignment of the process heap:
// the larger of the pointer and size alignments. Every leaf allocator
// guarantees at least this alignment unless documented otherwise.
const PlatformAlignment = int(max(unsafe.Alignof(uintptr(0)), unsafe.Alignof((*byte)(nil))))

// Allocator is the minimum allocator contract: raw byte blocks in, raw byte
// blocks out. Out-of-memory is signalled by returning the null block, never
// by an error value. Deallocate never panics on blocks the allocator
// produced; passing a block to the wrong allocator is undefined.
type Allocator interface {
	// Alignment returns the static alignment guarantee of the allocator,
	// always a power of two.
	Alignment() int

	// Allocate returns a block of at least n bytes aligned to Alignment(),
	// or the null block on failure. The returned block's Len is exactly n.
	Allocate(n int) Block

	// Deallocate returns a block to the allocator. Passing the null block
	// is a no-op. A block may be deallocated at most once.
	Deallocate(b Block)
}

// AlignedAllocator is an Allocator that additionally honors explicit
// power-of-two alignment requests at or above its static alignment.
type AlignedAllocator interface {
	Allocator

	// AllocateAligned returns a block of n bytes whose address is aligned
	// to align, or the null block on failure. align must be a power of two
	// no smaller than Alignment().
	AllocateAligned(n, align int) Block
}

// OwningAllocator is an Allocator that can decide whether it produced a
// given block. Owning is what lets combinators route deallocations back to
// the child that produced the block.
type OwningAllocator interface {
	Allocator

	// Owns reports whether b was produced by this allocator and is still
	// outstanding.
	Owns(b Block) bool
}

// BulkDeallocator is an Allocator that can release every outstanding block
// in a single step. DeallocateAll invalidates all blocks previously
// returned by Allocate.
type BulkDeallocator interface {
	Allocator

	DeallocateAll()
}

// AllocateFor allocates storage for a single value of type T using the
// allocator's default alignment.
func AllocateFor[T any](a Allocator) Block {
	var zero T
	return a.Allocate(int(unsafe.Sizeof(zero)))
}

// AllocateSliceFor allocates storage for count contiguous values of type T,
// aligned to T's natural alignment (clamped up to the allocator's minimum).
func AllocateSliceFor[T any](a AlignedAllocator, count int) Block {
	var zero T
	align := max(int(unsafe.Alignof(zero)), a.Alignment())
	return a.AllocateAligned(count*int(unsafe.Sizeof(zero)), align)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// alignUp rounds n up to the next multiple of align. align must be a power
// of two.
func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

func alignPointer(p unsafe.Pointer, align int) unsafe.Pointer {
	mask := uintptr(align) - 1
	addr := (uintptr(p) + mask) &^ mask
	return unsafe.Add(p, addr-uintptr(p))
}

// asAligned, asOwning and asBulk probe a child allocator's optional
// capabilities once, at composite construction time, so composite methods
// do not repeat type assertions on the hot path.
func asAligned(a Allocator) AlignedAllocator {
	aligned, _ := a.(AlignedAllocator)
	return aligned
}

func asOwning(a Allocator) OwningAllocator {
	owning, _ := a.(OwningAllocator)
	return owning
}

func asBulk(a Allocator) BulkDeallocator {
	bulk, _ := a.(BulkDeallocator)
	return bulk
}
