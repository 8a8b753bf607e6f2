package memkit

// TracedAllocator logs every operation on a child allocator through a
// Logger. Allocators never log on their own (out-of-memory is the null
// block, nothing else); tracing is an explicit opt-in wrapper for
// debugging allocation patterns.
type TracedAllocator[A Allocator] struct {
	child  A
	logger *Logger

	alignedChild AlignedAllocator
	owningChild  OwningAllocator
	bulkChild    BulkDeallocator
}

// NewTraced wraps child so every operation is logged. A nil logger
// disables output.
func NewTraced[A Allocator](child A, logger *Logger) *TracedAllocator[A] {
	if logger == nil {
		logger = NoopLogger()
	}
	return &TracedAllocator[A]{
		child:        child,
		logger:       logger,
		alignedChild: asAligned(child),
		owningChild:  asOwning(child),
		bulkChild:    asBulk(child),
	}
}

// Alignment implements Allocator.
func (a *TracedAllocator[A]) Alignment() int { return a.child.Alignment() }

// Allocate forwards and logs.
func (a *TracedAllocator[A]) Allocate(n int) Block {
	b := a.child.Allocate(n)
	a.logger.LogAllocate(n, a.child.Alignment(), b)
	return b
}

// AllocateAligned forwards and logs; the child must be an
// AlignedAllocator, otherwise the null block is returned.
func (a *TracedAllocator[A]) AllocateAligned(n, align int) Block {
	if a.alignedChild == nil {
		a.logger.LogAllocate(n, align, NullBlock)
		return NullBlock
	}
	b := a.alignedChild.AllocateAligned(n, align)
	a.logger.LogAllocate(n, align, b)
	return b
}

// Deallocate forwards and logs.
func (a *TracedAllocator[A]) Deallocate(b Block) {
	a.logger.LogDeallocate(b)
	a.child.Deallocate(b)
}

// Owns forwards. The child must be an OwningAllocator.
func (a *TracedAllocator[A]) Owns(b Block) bool {
	if a.owningChild == nil {
		panic("memkit: TracedAllocator.Owns requires an owning child")
	}
	return a.owningChild.Owns(b)
}

// DeallocateAll forwards and logs. The child must be a BulkDeallocator.
func (a *TracedAllocator[A]) DeallocateAll() {
	if a.bulkChild == nil {
		panic("memkit: TracedAllocator.DeallocateAll requires a bulk child")
	}
	a.logger.LogDeallocateAll()
	a.bulkChild.DeallocateAll()
}
