package memkit

import (
	"os"
	"unsafe"

	"github.com/hupe1980/memkit/internal/mmap"
)

// pageSize is the operating system page granularity; anonymous mappings are
// aligned to it.
var pageSize = os.Getpagesize()

// PageAllocator is an off-heap leaf backed by anonymous memory mappings.
// Every block gets its own mapping, so memory returns to the operating
// system on Deallocate and the garbage collector never scans it.
//
// Alignment is the OS page size. Best suited for large, long-lived blocks;
// small requests still consume a full page.
//
// PageAllocator is stateful (it tracks live mappings) and single-threaded
// like every allocator in this toolkit; wrap it in a LockedAllocator for
// shared use.
type PageAllocator struct {
	mappings map[unsafe.Pointer]*mmap.Mapping
}

// NewPage returns an empty PageAllocator.
func NewPage() *PageAllocator {
	return &PageAllocator{mappings: make(map[unsafe.Pointer]*mmap.Mapping)}
}

// Alignment implements Allocator.
func (a *PageAllocator) Alignment() int { return pageSize }

// Allocate maps n bytes of anonymous memory. The mapping is page-granular;
// the returned block's Len is exactly n.
func (a *PageAllocator) Allocate(n int) Block {
	if n <= 0 {
		return NullBlock
	}
	m, err := mmap.MapAnon(n)
	if err != nil {
		return NullBlock
	}
	p := unsafe.Pointer(&m.Bytes()[0])
	a.mappings[p] = m
	return Block{Ptr: p, Len: n}
}

// AllocateAligned maps n bytes aligned to align. Alignments up to the page
// size are free; larger ones over-map and offset into the mapping.
func (a *PageAllocator) AllocateAligned(n, align int) Block {
	if !isPowerOfTwo(align) {
		panic("memkit: AllocateAligned requires a power-of-two alignment")
	}
	if align <= pageSize {
		return a.Allocate(n)
	}
	if n <= 0 {
		return NullBlock
	}
	m, err := mmap.MapAnon(n + align)
	if err != nil {
		return NullBlock
	}
	p := alignPointer(unsafe.Pointer(&m.Bytes()[0]), align)
	a.mappings[p] = m
	return Block{Ptr: p, Len: n}
}

// Owns reports whether b was produced by this allocator and is still
// outstanding.
func (a *PageAllocator) Owns(b Block) bool {
	if b.IsNull() {
		return false
	}
	_, ok := a.mappings[b.Ptr]
	return ok
}

// Deallocate unmaps the block's backing mapping.
func (a *PageAllocator) Deallocate(b Block) {
	if b.IsNull() {
		return
	}
	m, ok := a.mappings[b.Ptr]
	if !ok {
		return
	}
	delete(a.mappings, b.Ptr)
	_ = m.Close()
}

// DeallocateAll unmaps every outstanding mapping in one step, invalidating
// all previously returned blocks.
func (a *PageAllocator) DeallocateAll() {
	for p, m := range a.mappings {
		delete(a.mappings, p)
		_ = m.Close()
	}
}
