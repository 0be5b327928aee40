// Package memlib provides heap memory providers for the allocator.
//
// # Overview
//
// A Provider hands out one contiguous, monotonically growing byte range, in
// the manner of sbrk(2). The allocator never shrinks the range and relies on
// earlier grants staying valid and contiguous with later ones, so every
// implementation reserves its maximum size up front and only moves a break
// pointer afterwards.
//
// # Implementations
//
// Arena: Go-heap backed region
//
//   - Reserved with dirtmake, so grown bytes are not zeroed (like sbrk)
//   - Reset() rewinds the break for reuse across workloads
//
// MmapArena: anonymous private mapping (linux, darwin)
//
//   - Pages are committed lazily by the kernel on first touch
//   - Close() unmaps the region
//   - Other platforms fall back to an Arena
//
// # Addresses
//
// Addresses are format.Addr offsets from Lo(), which is always 0. Hi() is
// the current break: one past the last granted byte.
//
// # Thread Safety
//
// Providers are not thread-safe; they are owned by a single allocator.
package memlib
