package memkit

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("nil handler falls back to text", func(t *testing.T) {
		l := NewLogger(nil)
		require.NotNil(t, l.Logger)
	})

	t.Run("allocate logging", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})).WithAllocator("heap")

		b := Malloc.Allocate(64)
		defer Malloc.Deallocate(b)

		l.LogAllocate(64, PlatformAlignment, b)
		out := buf.String()
		assert.Contains(t, out, "allocate completed")
		assert.Contains(t, out, "allocator=heap")
		assert.Contains(t, out, "size=64")

		buf.Reset()
		l.LogAllocate(64, PlatformAlignment, NullBlock)
		assert.Contains(t, buf.String(), "allocate failed")
	})

	t.Run("noop logger discards", func(t *testing.T) {
		l := NoopLogger()
		assert.NotPanics(t, func() {
			l.LogAllocate(8, 8, NullBlock)
			l.LogDeallocate(NullBlock)
			l.LogDeallocateAll()
		})
	})
}
