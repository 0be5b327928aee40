package format

import "fmt"

// Addr is a heap address: a byte offset from the provider's low bound.
// Payload addresses handed to clients are always 16-byte aligned.
type Addr uint64

// Nil is the null address. Offset 0 always holds the alignment pad, so no
// block can ever live there.
const Nil Addr = 0

// Tag is the decoded form of a header or footer word.
//
// Layout of the packed word (little-endian uint64):
//
//	bits 63..4  size (multiple of 16)
//	bits  3..2  zero
//	bit      1  previous block allocated
//	bit      0  this block allocated
type Tag struct {
	Size      int
	Alloc     bool
	PrevAlloc bool
}

// Pack encodes t into a single word. Size must already be a multiple of 16.
func (t Tag) Pack() uint64 {
	w := uint64(t.Size) &^ FlagMask
	if t.Alloc {
		w |= AllocBit
	}
	if t.PrevAlloc {
		w |= PrevAllocBit
	}
	return w
}

// Unpack decodes a packed header or footer word.
func Unpack(w uint64) Tag {
	return Tag{
		Size:      int(w &^ FlagMask),
		Alloc:     w&AllocBit != 0,
		PrevAlloc: w&PrevAllocBit != 0,
	}
}

// PackWord combines a size with raw flag bits, mirroring the classic
// PACK(size, alloc) macro. Bits of flags outside FlagMask are dropped.
func PackWord(size int, flags uint64) uint64 {
	return uint64(size)&^FlagMask | flags&FlagMask
}

// String implements fmt.Stringer for diagnostics.
func (t Tag) String() string {
	state := "free"
	if t.Alloc {
		state = "alloc"
	}
	prev := "prev-free"
	if t.PrevAlloc {
		prev = "prev-alloc"
	}
	return fmt.Sprintf("%d/%s/%s", t.Size, state, prev)
}
