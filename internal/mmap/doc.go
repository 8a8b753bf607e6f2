// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// MapAnon() creates read-write anonymous mappings that live outside the Go
// heap: the garbage collector never scans or moves them, so raw pointers
// into a mapping stay stable until Close().
//
// # Platform Support
//
//   - Unix: mmap(MAP_ANON|MAP_PRIVATE) via golang.org/x/sys/unix
//   - Windows: VirtualAlloc(MEM_RESERVE|MEM_COMMIT) via golang.org/x/sys/windows
//
// # Safety
//
// All methods return errors instead of panicking. Accessing a mapping's
// bytes after Close() is undefined behavior (likely a crash).
package mmap
