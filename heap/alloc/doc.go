// Package alloc provides a general-purpose heap allocator built on
// segregated free lists and boundary tags.
//
// # Overview
//
// The allocator manages one contiguous region obtained from a
// memlib.Provider, which grows like sbrk(2) and never shrinks. Clients get
// format.Addr offsets into that region; every payload address is 16-byte
// aligned.
//
// # Allocator API
//
//   - Init(): lay out the heap sentinels and the first chunk
//   - Alloc(size): first-fit allocation, growing the heap on a miss
//   - Free(addr): release and coalesce with free neighbors
//   - Realloc(addr, size): move to a new block, keeping leading bytes
//   - Calloc(count, elem): overflow-checked, zero-filled allocation
//   - CheckHeap(label): run the heap/verify checks
//
// # Usage Example
//
//	a := alloc.New(memlib.NewArena(64 << 20))
//	if err := a.Init(); err != nil {
//	    return err
//	}
//
//	p, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(a.Bytes(p, 5), "hello")
//
//	a.Free(p)
//
// # Block Layout
//
// Each block starts with an 8-byte header word holding the block size and
// two flags: allocated, and previous-block-allocated. Free blocks also end
// with a footer that mirrors the header, and hold two list links in their
// first payload words. Allocated blocks have no footer, so their usable
// size is the block size minus the header.
//
//	0x00  pad
//	0x08  prologue (32 bytes, always allocated)
//	0x28  first block header
//	...
//	hi-8  epilogue header (size 0, allocated)
//
// # Size Classes
//
// Free blocks are kept in 15 LIFO lists by block size:
//
//	Bucket  0:       32 bytes
//	Bucket  1:   33 -    48
//	Bucket  2:   49 -    64
//	Bucket  3:   65 -   112
//	Bucket  4:  113 -   160
//	Bucket  5:  161 -   208
//	Bucket  6:  209 -   512
//	Bucket  7:  513 -  1024
//	Bucket  8: 1025 -  2016
//	Bucket  9: 2017 -  4016
//	Bucket 10: 4017 -  8016
//	Bucket 11: 8017 - 15360
//	Bucket 12: 15361 - 30720
//	Bucket 13: 30721 - 61440
//	Bucket 14: 61441+
//
// Alloc searches the request's bucket in list order, then each larger
// bucket, taking the first block that fits. A block is split when the
// remainder can form a block of at least 32 bytes.
//
// # Debugging
//
// SEGHEAP_LOG_ALLOC=1 logs every allocation, free and heap growth at debug
// level. SEGHEAP_CHECK=1 (or WithCheckHeap) runs CheckHeap after every
// public operation; failures are logged and counted in Stats but never
// change results.
//
// # Thread Safety
//
// An Allocator is not safe for concurrent use. Independent allocators over
// independent providers may be used from different goroutines.
package alloc
