package memkit_test

import (
	"fmt"

	"github.com/hupe1980/memkit"
)

// A small-object split: requests up to 128 bytes come from an inline
// scratch buffer, everything larger from the process heap. Deallocations
// route back by block length.
func ExampleNewSegregate() {
	inline, _ := memkit.NewInline(1024)
	alloc, _ := memkit.NewSegregate(128, inline, memkit.Malloc)

	small := alloc.Allocate(64)
	large := alloc.Allocate(4096)

	fmt.Println(inline.Owns(small))
	fmt.Println(inline.Owns(large))

	alloc.Deallocate(large)
	alloc.Deallocate(small)
	// Output:
	// true
	// false
}

// A free list recycling fixed-size nodes over the heap: after the first
// allocation, allocate/deallocate pairs never touch the parent.
func ExampleNewFreelist() {
	parent := memkit.NewCounting(memkit.Malloc)
	fl, _ := memkit.NewFreelist(parent, 64, 64)

	for i := 0; i < 10; i++ {
		node := fl.Allocate(64)
		fl.Deallocate(node)
	}

	fmt.Println(parent.Stats().Allocs)
	// Output:
	// 1
}

// An affix attaches per-block bookkeeping invisible to the caller, here a
// debug cookie that survives writes to the payload.
func ExampleNewAffix() {
	a := memkit.NewAffix[memkit.HeapAllocator, uint64, memkit.NoAffix](memkit.Malloc)

	b := a.Allocate(100)
	*a.PrefixOf(b) = 0xDEADBEEF

	for i, buf := 0, b.Bytes(); i < len(buf); i++ {
		buf[i] = 0xFF
	}

	fmt.Printf("%#x\n", *a.PrefixOf(b))
	a.Deallocate(b)
	// Output:
	// 0xdeadbeef
}

// Allocation failure is the null block, never an error or a panic: a
// fallback chain ending in the null allocator fails cleanly.
func ExampleNullAllocator() {
	inline, _ := memkit.NewInline(64)
	alloc := memkit.NewFallback(inline, memkit.Null)

	b := alloc.Allocate(1 << 20)
	fmt.Println(b.IsNull())

	alloc.Deallocate(b) // deallocating a failed allocation is a no-op
	// Output:
	// true
}
