package memkit

import "unsafe"

// NoAffix opts out of a prefix or suffix slot at the type level: it has
// zero size, so it contributes nothing to the allocation.
type NoAffix = struct{}

// AffixAllocator transparently attaches a fixed-size Prefix header (and
// optional Suffix footer) to every allocation, for external bookkeeping
// such as stats, guards or debug cookies. The block returned to the caller
// hides the affixes: its Ptr points at the payload and its Len is the
// requested size.
//
// Use NoAffix for an unused slot. A magic-cookie prefix checked on
// deallocation is the recommended opt-in mechanism for detecting
// double-deallocation and foreign blocks.
type AffixAllocator[P Allocator, Pfx, Sfx any] struct {
	parent       P
	owningParent OwningAllocator
}

// NewAffix wraps parent so every allocation carries a Pfx header and a Sfx
// footer.
func NewAffix[P Allocator, Pfx, Sfx any](parent P) *AffixAllocator[P, Pfx, Sfx] {
	return &AffixAllocator[P, Pfx, Sfx]{
		parent:       parent,
		owningParent: asOwning(parent),
	}
}

// Parent returns the parent allocator.
func (a *AffixAllocator[P, Pfx, Sfx]) Parent() P { return a.parent }

func (a *AffixAllocator[P, Pfx, Sfx]) prefixSize() int {
	var p Pfx
	return int(unsafe.Sizeof(p))
}

func (a *AffixAllocator[P, Pfx, Sfx]) suffixSize() int {
	var s Sfx
	return int(unsafe.Sizeof(s))
}

func (a *AffixAllocator[P, Pfx, Sfx]) suffixAlign() int {
	var s Sfx
	return int(unsafe.Alignof(s))
}

// suffixOffset is the payload-start-relative offset of the suffix inside
// the parent allocation, which exists iff the suffix has state.
func (a *AffixAllocator[P, Pfx, Sfx]) suffixOffset(n int) int {
	return alignUp(a.prefixSize()+n, a.suffixAlign()) - a.prefixSize()
}

// totalSize is the parent allocation length for a caller request of n bytes.
func (a *AffixAllocator[P, Pfx, Sfx]) totalSize(n int) int {
	if a.suffixSize() == 0 {
		return n + a.prefixSize()
	}
	return alignUp(n+a.prefixSize(), a.suffixAlign()) + a.suffixSize()
}

// actual reconstructs the parent block behind a caller-visible block.
func (a *AffixAllocator[P, Pfx, Sfx]) actual(b Block) Block {
	if b.IsNull() {
		return NullBlock
	}
	return Block{
		Ptr: unsafe.Add(b.Ptr, -a.prefixSize()),
		Len: a.totalSize(b.Len),
	}
}

// Alignment is the prefix's alignment when the prefix has state (so the
// prefix itself is aligned, and the payload after it at least as much),
// else the parent's.
func (a *AffixAllocator[P, Pfx, Sfx]) Alignment() int {
	if a.prefixSize() != 0 {
		var p Pfx
		return int(unsafe.Alignof(p))
	}
	return a.parent.Alignment()
}

// Allocate allocates n payload bytes plus room for the affixes from the
// parent and returns the payload block.
func (a *AffixAllocator[P, Pfx, Sfx]) Allocate(n int) Block {
	if n <= 0 {
		return NullBlock
	}
	b := a.parent.Allocate(a.totalSize(n))
	if b.IsNull() {
		return NullBlock
	}
	return Block{Ptr: unsafe.Add(b.Ptr, a.prefixSize()), Len: n}
}

// Deallocate widens b back to the parent allocation and returns it.
// Deallocating the null block is a no-op.
func (a *AffixAllocator[P, Pfx, Sfx]) Deallocate(b Block) {
	if b.IsNull() {
		return
	}
	a.parent.Deallocate(a.actual(b))
}

// Owns reconstructs the parent block and asks the parent. The parent must
// be an OwningAllocator.
func (a *AffixAllocator[P, Pfx, Sfx]) Owns(b Block) bool {
	if a.owningParent == nil {
		panic("memkit: AffixAllocator.Owns requires an owning parent")
	}
	return a.owningParent.Owns(a.actual(b))
}

// PrefixOf returns the prefix attached to a block returned by Allocate.
// Returns nil when the prefix has zero size.
func (a *AffixAllocator[P, Pfx, Sfx]) PrefixOf(b Block) *Pfx {
	if a.prefixSize() == 0 || b.IsNull() {
		return nil
	}
	return (*Pfx)(unsafe.Add(b.Ptr, -a.prefixSize()))
}

// SuffixOf returns the suffix attached to a block returned by Allocate.
// Returns nil when the suffix has zero size.
func (a *AffixAllocator[P, Pfx, Sfx]) SuffixOf(b Block) *Sfx {
	if a.suffixSize() == 0 || b.IsNull() {
		return nil
	}
	return (*Sfx)(unsafe.Add(b.Ptr, a.suffixOffset(b.Len)))
}
