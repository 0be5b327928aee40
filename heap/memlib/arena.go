package memlib

import (
	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Arena is a Provider backed by a single Go-heap reservation.
type Arena struct {
	region
}

// NewArena reserves max bytes (rounded down to a multiple of 16) and returns
// an empty arena. A non-positive maxBytes selects DefaultMaxHeap. The whole
// reservation is allocated up front, so keep maxBytes at or below
// MaxArenaHeap and use NewMmapArena beyond that.
func NewArena(maxBytes int) *Arena {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxHeap
	}
	maxBytes &^= 15
	return &Arena{region: region{mem: dirtmake.Bytes(0, maxBytes)}}
}
