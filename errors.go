package memkit

import "errors"

var (
	// ErrInvalidCapacity is returned when a buffer-backed allocator is
	// constructed with a non-positive capacity.
	ErrInvalidCapacity = errors.New("memkit: capacity must be positive")

	// ErrInvalidThreshold is returned when a segregating allocator is
	// constructed with a non-positive size threshold.
	ErrInvalidThreshold = errors.New("memkit: threshold must be positive")

	// ErrInvalidBand is returned when a free-list band violates its static
	// constraints (MaxSize >= MinSize and MaxSize >= pointer size).
	ErrInvalidBand = errors.New("memkit: invalid free-list size band")

	// ErrInvalidLimit is returned when a budget-limited allocator is
	// constructed with a non-positive byte limit.
	ErrInvalidLimit = errors.New("memkit: memory limit must be positive")
)
