// Package format houses the on-heap block layout for the segregated-list
// allocator: boundary-tag words, free-list link words and the pointer
// arithmetic that moves between adjacent blocks. Everything here is a pure
// function over a byte slice so the allocator and the checker can share one
// definition of the layout.
package format

// Word sizes and alignment.
const (
	// WordSize is the size of one header, footer or link word.
	WordSize = 8

	// DoubleSize is two words: the per-block header+footer overhead.
	DoubleSize = 2 * WordSize

	// Alignment is the required alignment of every payload address and of
	// every block size.
	Alignment = 16

	// AlignmentMask is the bitmask used for aligning to 16-byte boundaries (Alignment - 1).
	AlignmentMask = Alignment - 1

	// MinBlockSize is the smallest legal block: header, footer and the two
	// free-list link words.
	MinBlockSize = 2 * DoubleSize

	// ChunkSize is the default heap extension used at initialization.
	ChunkSize = 1 << 12
)

// Tag bits. The low four bits of a size word are always zero because sizes
// are multiples of Alignment; the two lowest are reused as flags.
const (
	// AllocBit is set when the block is held by a client.
	AllocBit = 0x1

	// PrevAllocBit is set when the block immediately before this one in heap
	// order is allocated.
	PrevAllocBit = 0x2

	// FlagMask covers all bits that are not part of the size.
	FlagMask = AlignmentMask
)

// Heap prefix layout. Offset 0 holds a zero pad word so that the prologue
// payload (and therefore every later payload) lands on a 16-byte boundary.
//
//	0x00  pad           (0)
//	0x08  prologue hdr  Tag{32, alloc}
//	0x10  prologue payload (unused, 16 bytes)
//	0x20  prologue ftr  Tag{32, alloc}
//	0x28  epilogue hdr  Tag{0, alloc, prevAlloc}
//	0x30  first real payload
const (
	// PadOffset is the offset of the alignment pad word.
	PadOffset = 0

	// PrologueAddr is the payload address of the prologue block.
	PrologueAddr Addr = 2 * WordSize

	// PrologueSize is the size of the permanently allocated prologue block.
	PrologueSize = MinBlockSize

	// FirstBlockAddr is the payload address of the first real block.
	FirstBlockAddr = PrologueAddr + PrologueSize

	// PrefixSize is the number of bytes requested from the provider for the
	// pad, prologue and initial epilogue. The break then sits exactly at
	// FirstBlockAddr, which is where the first extension starts.
	PrefixSize = int(FirstBlockAddr)
)
