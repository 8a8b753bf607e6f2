package memkit

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// LimitedAllocator enforces a hard byte budget over a child allocator.
// Every successful allocation reserves its block length against the budget;
// deallocation releases it. A request that would exceed the budget fails
// with the null block before the child is asked — out-of-memory stays on
// the return channel, the same as any other allocation failure.
//
// Reservation is non-blocking: the allocator never waits for budget to
// free up, callers control retry policy. The budget is charged by block
// length, so it bounds requested bytes, not the child's internal slack
// (a free list's band maximum, an affix's headers).
type LimitedAllocator[A Allocator] struct {
	child A
	limit int64
	sem   *semaphore.Weighted
	used  atomic.Int64

	alignedChild AlignedAllocator
	owningChild  OwningAllocator
	bulkChild    BulkDeallocator
}

// NewLimited wraps child under a budget of limitBytes.
func NewLimited[A Allocator](child A, limitBytes int64) (*LimitedAllocator[A], error) {
	if limitBytes <= 0 {
		return nil, ErrInvalidLimit
	}
	return &LimitedAllocator[A]{
		child:        child,
		limit:        limitBytes,
		sem:          semaphore.NewWeighted(limitBytes),
		alignedChild: asAligned(child),
		owningChild:  asOwning(child),
		bulkChild:    asBulk(child),
	}, nil
}

// MemoryUsage returns the bytes currently reserved by outstanding blocks.
func (a *LimitedAllocator[A]) MemoryUsage() int64 { return a.used.Load() }

// MemoryLimit returns the configured budget in bytes.
func (a *LimitedAllocator[A]) MemoryLimit() int64 { return a.limit }

// reserve charges n bytes against the budget, reporting false when the
// budget would be exceeded.
func (a *LimitedAllocator[A]) reserve(n int) bool {
	if !a.sem.TryAcquire(int64(n)) {
		return false
	}
	a.used.Add(int64(n))
	return true
}

func (a *LimitedAllocator[A]) release(n int) {
	a.sem.Release(int64(n))
	a.used.Add(-int64(n))
}

// Alignment implements Allocator.
func (a *LimitedAllocator[A]) Alignment() int { return a.child.Alignment() }

// Allocate reserves n bytes of budget and forwards. Returns the null block
// when the budget would be exceeded or the child fails.
func (a *LimitedAllocator[A]) Allocate(n int) Block {
	if n <= 0 {
		return NullBlock
	}
	if !a.reserve(n) {
		return NullBlock
	}
	b := a.child.Allocate(n)
	if b.IsNull() {
		a.release(n)
	}
	return b
}

// AllocateAligned is the aligned variant; the child must be an
// AlignedAllocator, otherwise the null block is returned.
func (a *LimitedAllocator[A]) AllocateAligned(n, align int) Block {
	if a.alignedChild == nil || n <= 0 {
		return NullBlock
	}
	if !a.reserve(n) {
		return NullBlock
	}
	b := a.alignedChild.AllocateAligned(n, align)
	if b.IsNull() {
		a.release(n)
	}
	return b
}

// Deallocate forwards and returns the block's length to the budget.
func (a *LimitedAllocator[A]) Deallocate(b Block) {
	a.child.Deallocate(b)
	if !b.IsNull() {
		a.release(b.Len)
	}
}

// Owns forwards. The child must be an OwningAllocator.
func (a *LimitedAllocator[A]) Owns(b Block) bool {
	if a.owningChild == nil {
		panic("memkit: LimitedAllocator.Owns requires an owning child")
	}
	return a.owningChild.Owns(b)
}

// DeallocateAll forwards and returns the whole reservation to the budget.
// The child must be a BulkDeallocator.
func (a *LimitedAllocator[A]) DeallocateAll() {
	if a.bulkChild == nil {
		panic("memkit: LimitedAllocator.DeallocateAll requires a bulk child")
	}
	a.bulkChild.DeallocateAll()
	if reserved := a.used.Swap(0); reserved > 0 {
		a.sem.Release(reserved)
	}
}
