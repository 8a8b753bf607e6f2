package memkit

import "sync"

// LockedAllocator serialises every operation on a child allocator behind a
// mutex. It is the only concurrency-safe wrapper in the toolkit; all other
// allocators are single-threaded and callers sharing one across goroutines
// must either wrap it here or use per-goroutine instances.
type LockedAllocator[A Allocator] struct {
	mu    sync.Mutex
	child A

	alignedChild AlignedAllocator
	owningChild  OwningAllocator
	bulkChild    BulkDeallocator
}

// NewLocked wraps child in a LockedAllocator.
func NewLocked[A Allocator](child A) *LockedAllocator[A] {
	return &LockedAllocator[A]{
		child:        child,
		alignedChild: asAligned(child),
		owningChild:  asOwning(child),
		bulkChild:    asBulk(child),
	}
}

// Alignment implements Allocator.
func (a *LockedAllocator[A]) Alignment() int {
	return a.child.Alignment()
}

// Allocate forwards under the lock.
func (a *LockedAllocator[A]) Allocate(n int) Block {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.child.Allocate(n)
}

// AllocateAligned forwards under the lock; the child must be an
// AlignedAllocator, otherwise the null block is returned.
func (a *LockedAllocator[A]) AllocateAligned(n, align int) Block {
	if a.alignedChild == nil {
		return NullBlock
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alignedChild.AllocateAligned(n, align)
}

// Deallocate forwards under the lock.
func (a *LockedAllocator[A]) Deallocate(b Block) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.child.Deallocate(b)
}

// Owns forwards under the lock. The child must be an OwningAllocator.
func (a *LockedAllocator[A]) Owns(b Block) bool {
	if a.owningChild == nil {
		panic("memkit: LockedAllocator.Owns requires an owning child")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.owningChild.Owns(b)
}

// DeallocateAll forwards under the lock. The child must be a
// BulkDeallocator.
func (a *LockedAllocator[A]) DeallocateAll() {
	if a.bulkChild == nil {
		panic("memkit: LockedAllocator.DeallocateAll requires a bulk child")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bulkChild.DeallocateAll()
}
