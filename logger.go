package memkit

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the slog.Logger used by TracedAllocator, extended with helpers
// that keep allocation events on a fixed field vocabulary (size, align,
// ptr) so traces from different allocators line up.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a Logger over an arbitrary slog handler, which is how a
// host application routes allocation traces into its own logging setup. A
// nil handler gets a debug-level text handler on stderr: allocation events
// log at debug, so the usual info default would swallow everything but
// failures.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger emits one JSON object per allocation event to stderr,
// filtered at the given level.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger emits human-readable key=value lines to stderr, filtered
// at the given level.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger discards everything. TracedAllocator substitutes it for a nil
// logger so the tracing path never nil-checks.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithAllocator tags the logger with an allocator name.
func (l *Logger) WithAllocator(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("allocator", name),
	}
}

// LogAllocate logs an allocation.
func (l *Logger) LogAllocate(size, align int, b Block) {
	if b.IsNull() {
		l.Warn("allocate failed",
			"size", size,
			"align", align,
		)
	} else {
		l.Debug("allocate completed",
			"size", size,
			"align", align,
			"ptr", b.Ptr,
		)
	}
}

// LogDeallocate logs a deallocation.
func (l *Logger) LogDeallocate(b Block) {
	l.Debug("deallocate completed",
		"size", b.Len,
		"ptr", b.Ptr,
	)
}

// LogDeallocateAll logs a bulk deallocation.
func (l *Logger) LogDeallocateAll() {
	l.Debug("deallocate all completed")
}
