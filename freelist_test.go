package memkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreelistAllocator(t *testing.T) {
	t.Run("recycles in-band blocks", func(t *testing.T) {
		spy := newSpy()

		a, err := NewFreelist(spy, 64, 64)
		require.NoError(t, err)

		// Ten allocate/deallocate pairs hit the parent exactly once.
		for i := 0; i < 10; i++ {
			b := a.Allocate(64)
			require.False(t, b.IsNull())
			a.Deallocate(b)
		}
		assert.Equal(t, 1, spy.allocs)
		assert.Zero(t, spy.deallocs)
		assert.Equal(t, 1, a.CachedNodes())

		// Out-of-band requests bypass the cache.
		b := a.Allocate(65)
		require.False(t, b.IsNull())
		assert.Equal(t, 2, spy.allocs)
		assert.Equal(t, 65, spy.lastAllocSize)
		spy.Deallocate(b)
	})

	t.Run("cache miss allocates the band maximum", func(t *testing.T) {
		spy := newSpy()

		a, err := NewFreelist(spy, 16, 64)
		require.NoError(t, err)

		b := a.Allocate(16)
		require.False(t, b.IsNull())
		assert.Equal(t, 16, b.Len, "caller sees the requested size")
		assert.Equal(t, 64, spy.lastAllocSize, "parent sees the band maximum")

		// A recycled node serves any in-band size.
		a.Deallocate(b)
		b = a.Allocate(64)
		require.False(t, b.IsNull())
		assert.Equal(t, 1, spy.allocs)
		a.Deallocate(b)
	})

	t.Run("bounded cache overflows to the parent", func(t *testing.T) {
		spy := newSpy()

		a, err := NewFreelist(spy, 64, 64, WithMaxNodes(4))
		require.NoError(t, err)

		blocks := make([]Block, 8)
		for i := range blocks {
			blocks[i] = a.Allocate(64)
			require.False(t, blocks[i].IsNull())
		}
		assert.Equal(t, 8, spy.allocs)

		for _, b := range blocks {
			a.Deallocate(b)
		}
		assert.Equal(t, 4, a.CachedNodes(), "cache never exceeds the cap")
		assert.Equal(t, 4, spy.deallocs, "excess deallocations hit the parent")
	})

	t.Run("band membership", func(t *testing.T) {
		spy := newSpy()

		// MinSize == MaxSize means exactly that size.
		exact, err := NewFreelist(spy, 64, 64)
		require.NoError(t, err)
		assert.True(t, exact.inBand(64))
		assert.False(t, exact.inBand(63))
		assert.False(t, exact.inBand(65))

		// MinSize 0 means no lower bound.
		open, err := NewFreelist(spy, 0, 64)
		require.NoError(t, err)
		assert.True(t, open.inBand(8))
		assert.True(t, open.inBand(64))
		assert.False(t, open.inBand(65))
	})

	t.Run("invalid bands", func(t *testing.T) {
		_, err := NewFreelist(Malloc, 128, 64)
		assert.ErrorIs(t, err, ErrInvalidBand)

		_, err = NewFreelist(Malloc, 0, freeNodeSize-1)
		assert.ErrorIs(t, err, ErrInvalidBand)

		_, err = NewFreelist(Malloc, -1, 64)
		assert.ErrorIs(t, err, ErrInvalidBand)
	})

	t.Run("aligned allocate threads alignment on fresh allocations", func(t *testing.T) {
		a, err := NewFreelist(AlignedMalloc, 64, 64)
		require.NoError(t, err)

		b := a.AllocateAligned(64, 256)
		require.False(t, b.IsNull())
		assert.Zero(t, uintptr(b.Ptr)%256)
		a.Deallocate(b)

		// Non-aligned parent: the aligned overload is unavailable.
		plain, err := NewFreelist(Malloc, 64, 64)
		require.NoError(t, err)
		assert.True(t, plain.AllocateAligned(64, 256).IsNull())
	})

	t.Run("owns forwards to an owning parent", func(t *testing.T) {
		spy := newSpy()

		a, err := NewFreelist(spy, 64, 64)
		require.NoError(t, err)

		b := a.Allocate(64)
		assert.True(t, a.Owns(b))

		plain, err := NewFreelist(Malloc, 64, 64)
		require.NoError(t, err)
		assert.Panics(t, func() {
			plain.Owns(b)
		})

		a.Deallocate(b)
	})

	t.Run("deallocate all over a bulk parent", func(t *testing.T) {
		spy := newSpy()

		a, err := NewFreelist(spy, 64, 64, WithMaxNodes(4))
		require.NoError(t, err)

		b := a.Allocate(64)
		a.Deallocate(b)
		require.Equal(t, 1, a.CachedNodes())

		a.DeallocateAll()
		assert.Equal(t, 1, spy.bulkCalls)
		assert.Zero(t, a.CachedNodes())

		// The allocator is reusable afterwards.
		b = a.Allocate(64)
		require.False(t, b.IsNull())
		a.Deallocate(b)
	})

	t.Run("deallocate all walks an unbounded cache over a non-bulk parent", func(t *testing.T) {
		parent := newSpy()

		a, err := NewFreelist(nonBulk{parent}, 64, 64)
		require.NoError(t, err)

		blocks := make([]Block, 3)
		for i := range blocks {
			blocks[i] = a.Allocate(64)
		}
		for _, b := range blocks {
			a.Deallocate(b)
		}
		require.Equal(t, 3, a.CachedNodes())

		a.DeallocateAll()
		assert.Zero(t, a.CachedNodes())
		assert.Equal(t, 3, parent.deallocs)
	})

	t.Run("deallocate all refuses a bounded cache over a non-bulk parent", func(t *testing.T) {
		parent := newSpy()

		a, err := NewFreelist(nonBulk{parent}, 64, 64, WithMaxNodes(4))
		require.NoError(t, err)

		assert.Panics(t, func() {
			a.DeallocateAll()
		})
	})
}

// nonBulk hides a spy's DeallocateAll so the freelist sees a plain owning
// parent.
type nonBulk struct {
	spy *spyAllocator
}

func (n nonBulk) Alignment() int       { return n.spy.Alignment() }
func (n nonBulk) Allocate(s int) Block { return n.spy.Allocate(s) }
func (n nonBulk) Deallocate(b Block)   { n.spy.Deallocate(b) }
func (n nonBulk) Owns(b Block) bool    { return n.spy.Owns(b) }
