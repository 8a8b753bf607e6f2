// Package memkit is a composable memory allocator toolkit.
//
// An allocator is a value exposing a narrow contract — allocate and
// deallocate raw byte blocks — and sophisticated memory-management policies
// are obtained by composing simple allocators rather than by a monolithic
// heap. The design follows Andrei Alexandrescu's allocator composition
// model: leaves provide storage, combinators provide policy.
//
// # Quick Start
//
// A small-object cache over the process heap:
//
//	inline, _ := memkit.NewInline(1024)
//	alloc, _ := memkit.NewSegregate(128, inline, memkit.Malloc)
//
//	b := alloc.Allocate(64)   // served from the inline buffer
//	defer alloc.Deallocate(b) // routed back by block length
//
// A free list recycling 64-byte nodes:
//
//	fl, _ := memkit.NewFreelist(memkit.Malloc, 64, 64)
//	node := fl.Allocate(64)
//	fl.Deallocate(node) // cached, not freed
//	node = fl.Allocate(64) // recycled
//
// # Contract
//
// Allocate returns a Block: either null (allocation failure) or a pointer
// to at least the requested bytes at the allocator's alignment. Blocks must
// be returned exactly once to the allocator (or composite root) that
// produced them. Out-of-memory is never an error value or a log line; it is
// the null block.
//
// # Leaves and Combinators
//
//   - NullAllocator: always fails; identity for fallback chains
//   - HeapAllocator / AlignedHeapAllocator: process heap
//   - InlineAllocator: fixed buffer, bump-to-fit, no tracking
//   - PageAllocator: off-heap anonymous mappings
//   - FallbackAllocator: primary then fallback
//   - SegregateAllocator: size threshold routes small/large
//   - FreelistAllocator: caches freed blocks of a size band
//   - AffixAllocator: per-block prefix/suffix headers
//   - LockedAllocator, CountingAllocator, TracedAllocator,
//     LimitedAllocator: decorators
//
// # Concurrency
//
// All allocators are single-threaded; callers synchronise externally or
// wrap an allocator in a LockedAllocator. The canonical stateless
// instances (Null, Malloc, AlignedMalloc) are safe to share because their
// operations touch no observable state.
package memkit
