package memlib

import (
	"fmt"

	"github.com/joshuapare/segheap/internal/format"
)

// DefaultMaxHeap is the reservation used when a caller does not pick one.
const DefaultMaxHeap = 100 << 20

// MaxArenaHeap is the largest reservation an Arena should be asked for. An
// Arena commits its whole reservation from the Go heap; larger heaps belong
// in an MmapArena.
const MaxArenaHeap = 1 << 30

// Provider supplies a single contiguous, growable byte range.
//
// Implementations:
//   - Arena: Go-heap backed region
//   - MmapArena: anonymous mapping where the platform supports it
type Provider interface {
	// Sbrk extends the region by n bytes and returns the address of the
	// first new byte (the old break). The new bytes are not zeroed.
	// Returns ErrNoMemory when the region cannot grow by n.
	Sbrk(n int) (format.Addr, error)

	// Lo returns the lowest valid address.
	Lo() format.Addr

	// Hi returns the current break, one past the last granted byte.
	Hi() format.Addr

	// Bytes returns a view of the granted region [Lo, Hi). The view stays
	// valid across later Sbrk calls.
	Bytes() []byte
}

// region is the break-pointer bookkeeping shared by every provider.
// mem has length brk and capacity equal to the reservation.
type region struct {
	mem []byte
}

// Sbrk implements Provider.
func (r *region) Sbrk(n int) (format.Addr, error) {
	if r.mem == nil {
		return format.Nil, ErrClosed
	}
	if n < 0 {
		return format.Nil, ErrNegativeIncrement
	}
	old := len(r.mem)
	if n > cap(r.mem)-old {
		return format.Nil, fmt.Errorf("%w: sbrk(%d) with %d of %d bytes in use",
			ErrNoMemory, n, old, cap(r.mem))
	}
	r.mem = r.mem[:old+n]
	return format.Addr(old), nil
}

// Lo implements Provider.
func (r *region) Lo() format.Addr { return 0 }

// Hi implements Provider.
func (r *region) Hi() format.Addr { return format.Addr(len(r.mem)) }

// Bytes implements Provider.
func (r *region) Bytes() []byte { return r.mem }

// Size returns the number of bytes currently granted.
func (r *region) Size() int { return len(r.mem) }

// Capacity returns the reservation size.
func (r *region) Capacity() int { return cap(r.mem) }

// Reset rewinds the break to zero so the reservation can host a fresh heap.
// Any allocator built on the old contents must be discarded.
func (r *region) Reset() {
	r.mem = r.mem[:0]
}
