package memkit

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/memkit/internal/conv"
)

// Stats is a snapshot of a CountingAllocator's counters.
type Stats struct {
	Allocs         uint64 // successful allocations
	Failures       uint64 // allocations that returned the null block
	Deallocs       uint64 // deallocations of non-null blocks
	BytesRequested uint64 // cumulative bytes of successful allocations
	BytesReturned  uint64 // cumulative bytes handed back
}

// CountingAllocator counts operations on a child allocator. The counters
// are atomic so a LockedAllocator-wrapped (or per-goroutine) child can be
// observed from a monitoring goroutine without races; the allocator
// operations themselves remain as single-threaded as the child.
type CountingAllocator[A Allocator] struct {
	child A

	allocs         atomic.Uint64
	failures       atomic.Uint64
	deallocs       atomic.Uint64
	bytesRequested atomic.Uint64
	bytesReturned  atomic.Uint64

	alignedChild AlignedAllocator
	owningChild  OwningAllocator
	bulkChild    BulkDeallocator
}

// NewCounting wraps child in a CountingAllocator.
func NewCounting[A Allocator](child A) *CountingAllocator[A] {
	return &CountingAllocator[A]{
		child:        child,
		alignedChild: asAligned(child),
		owningChild:  asOwning(child),
		bulkChild:    asBulk(child),
	}
}

// Stats returns a snapshot of the counters.
func (a *CountingAllocator[A]) Stats() Stats {
	return Stats{
		Allocs:         a.allocs.Load(),
		Failures:       a.failures.Load(),
		Deallocs:       a.deallocs.Load(),
		BytesRequested: a.bytesRequested.Load(),
		BytesReturned:  a.bytesReturned.Load(),
	}
}

func (a *CountingAllocator[A]) recordAllocate(n int, b Block) Block {
	if b.IsNull() {
		a.failures.Add(1)
		return b
	}
	a.allocs.Add(1)
	if size, err := conv.IntToUint64(n); err == nil {
		a.bytesRequested.Add(size)
	}
	return b
}

// Alignment implements Allocator.
func (a *CountingAllocator[A]) Alignment() int { return a.child.Alignment() }

// Allocate forwards and counts.
func (a *CountingAllocator[A]) Allocate(n int) Block {
	return a.recordAllocate(n, a.child.Allocate(n))
}

// AllocateAligned forwards and counts; the child must be an
// AlignedAllocator, otherwise the null block is returned (counted as a
// failure).
func (a *CountingAllocator[A]) AllocateAligned(n, align int) Block {
	if a.alignedChild == nil {
		a.failures.Add(1)
		return NullBlock
	}
	return a.recordAllocate(n, a.alignedChild.AllocateAligned(n, align))
}

// Deallocate forwards and counts.
func (a *CountingAllocator[A]) Deallocate(b Block) {
	if !b.IsNull() {
		a.deallocs.Add(1)
		if size, err := conv.IntToUint64(b.Len); err == nil {
			a.bytesReturned.Add(size)
		}
	}
	a.child.Deallocate(b)
}

// Owns forwards. The child must be an OwningAllocator.
func (a *CountingAllocator[A]) Owns(b Block) bool {
	if a.owningChild == nil {
		panic("memkit: CountingAllocator.Owns requires an owning child")
	}
	return a.owningChild.Owns(b)
}

// DeallocateAll forwards. The child must be a BulkDeallocator.
func (a *CountingAllocator[A]) DeallocateAll() {
	if a.bulkChild == nil {
		panic("memkit: CountingAllocator.DeallocateAll requires a bulk child")
	}
	a.bulkChild.DeallocateAll()
}

// Live returns the difference between allocated and deallocated blocks.
func (a *CountingAllocator[A]) Live() int64 {
	return int64(a.allocs.Load()) - int64(a.deallocs.Load())
}

func (a *CountingAllocator[A]) String() string {
	s := a.Stats()
	return fmt.Sprintf(
		"CountingAllocator{allocs: %d, deallocs: %d, failures: %d, requested: %d B, returned: %d B}",
		s.Allocs, s.Deallocs, s.Failures, s.BytesRequested, s.BytesReturned,
	)
}
