package memkit

import (
	"sync"
	"unsafe"
)

// heapPins keeps the backing arrays of outstanding heap blocks reachable so
// the garbage collector does not reclaim them while raw pointers are live.
// Keyed by the address handed to the caller; Deallocate drops the pin.
//
// The table is process-wide shared state of the stateless heap leaves. It is
// not observable through the allocator contract, and it is mutex-protected
// because the canonical instances are shared across the whole process.
type pinTable struct {
	mu   sync.Mutex
	pins map[unsafe.Pointer][]byte
}

func (t *pinTable) add(p unsafe.Pointer, buf []byte) {
	t.mu.Lock()
	t.pins[p] = buf
	t.mu.Unlock()
}

func (t *pinTable) remove(p unsafe.Pointer) {
	t.mu.Lock()
	delete(t.pins, p)
	t.mu.Unlock()
}

var heapPins = pinTable{pins: make(map[unsafe.Pointer][]byte)}

// HeapAllocator is the process-heap leaf: the Go analogue of malloc/free.
// Blocks are backed by garbage-collected arrays that stay pinned until
// Deallocate. Alignment is the platform default.
//
// HeapAllocator does not implement Owns and therefore cannot serve as the
// Primary of a FallbackAllocator.
//
// HeapAllocator is stateless; Malloc is its canonical instance.
type HeapAllocator struct{}

// Malloc is the canonical process-wide HeapAllocator instance.
var Malloc HeapAllocator

// Alignment implements Allocator.
func (HeapAllocator) Alignment() int { return PlatformAlignment }

// Allocate returns a block of n bytes from the process heap, or the null
// block when n is not positive.
func (HeapAllocator) Allocate(n int) Block {
	if n <= 0 {
		return NullBlock
	}
	// Round the backing array up to a multiple of the platform alignment:
	// the runtime packs small odd-sized arrays at byte granularity.
	buf := make([]byte, alignUp(n, PlatformAlignment))
	p := unsafe.Pointer(&buf[0])
	heapPins.add(p, buf)
	return Block{Ptr: p, Len: n}
}

// Deallocate unpins the block's backing array, returning it to the garbage
// collector.
func (HeapAllocator) Deallocate(b Block) {
	if b.IsNull() {
		return
	}
	heapPins.remove(b.Ptr)
}

// AlignedHeapAllocator is a process-heap leaf that honors arbitrary
// power-of-two alignment requests at or above the platform default. It
// over-allocates and offsets into the backing array to find an aligned
// address.
//
// AlignedHeapAllocator is stateless; AlignedMalloc is its canonical instance.
type AlignedHeapAllocator struct{}

// AlignedMalloc is the canonical process-wide AlignedHeapAllocator instance.
var AlignedMalloc AlignedHeapAllocator

// Alignment implements Allocator.
func (AlignedHeapAllocator) Alignment() int { return PlatformAlignment }

// Allocate returns a block of n bytes at the platform default alignment.
func (a AlignedHeapAllocator) Allocate(n int) Block {
	return a.AllocateAligned(n, PlatformAlignment)
}

// AllocateAligned returns a block of n bytes aligned to align. align must be
// a power of two no smaller than the platform default.
func (AlignedHeapAllocator) AllocateAligned(n, align int) Block {
	if n <= 0 {
		return NullBlock
	}
	if !isPowerOfTwo(align) || align < PlatformAlignment {
		panic("memkit: AllocateAligned requires a power-of-two alignment >= PlatformAlignment")
	}
	// Over-allocate by align so an aligned address always exists inside
	// the backing array.
	buf := make([]byte, n+align)
	p := alignPointer(unsafe.Pointer(&buf[0]), align)
	heapPins.add(p, buf)
	return Block{Ptr: p, Len: n}
}

// Deallocate unpins the block's backing array.
func (AlignedHeapAllocator) Deallocate(b Block) {
	if b.IsNull() {
		return
	}
	heapPins.remove(b.Ptr)
}
