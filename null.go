package memkit

// NullAllocator always fails. It is the identity element of fallback chains
// and the type-level "no allocator here".
//
// NullAllocator is stateless; Null is its canonical instance.
type NullAllocator struct{}

// Null is the canonical process-wide NullAllocator instance.
var Null NullAllocator

// nullAlignment is arbitrary but large: the null allocator never produces a
// block, so it never constrains a composite's alignment in practice.
const nullAlignment = 64 * 1024

// Alignment implements Allocator.
func (NullAllocator) Alignment() int { return nullAlignment }

// Allocate always returns the null block.
func (NullAllocator) Allocate(int) Block { return NullBlock }

// AllocateAligned always returns the null block.
func (NullAllocator) AllocateAligned(int, int) Block { return NullBlock }

// Deallocate is a no-op; only the null block can legally reach it.
func (NullAllocator) Deallocate(Block) {}

// DeallocateAll is a no-op.
func (NullAllocator) DeallocateAll() {}

// Owns reports true iff b is the null block. This is what makes deallocating
// a failed allocation through a fallback chain a safe no-op.
func (NullAllocator) Owns(b Block) bool { return b.IsNull() }
