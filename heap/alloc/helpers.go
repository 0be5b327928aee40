package alloc

import (
	"github.com/joshuapare/segheap/internal/buf"
	"github.com/joshuapare/segheap/internal/format"
)

// BlockInfo describes one block of the heap chain.
type BlockInfo struct {
	Addr      format.Addr // Payload address
	Size      int         // Block size including the header
	Alloc     bool
	PrevAlloc bool
}

// UsableSize returns the payload bytes available at the allocated block bp.
// It is 0 for Nil.
func (a *Allocator) UsableSize(bp format.Addr) int {
	if bp == format.Nil || !a.initialized {
		return 0
	}
	return format.UsableSize(format.BlockSize(a.mem.Bytes(), bp))
}

// BlockSize returns the size of the block at bp, header included.
func (a *Allocator) BlockSize(bp format.Addr) int {
	if bp == format.Nil || !a.initialized {
		return 0
	}
	return format.BlockSize(a.mem.Bytes(), bp)
}

// Bytes returns the first n payload bytes at bp, or nil when n exceeds the
// block's usable size. The slice aliases heap memory and is invalidated by
// freeing bp.
func (a *Allocator) Bytes(bp format.Addr, n int) []byte {
	if n > a.UsableSize(bp) {
		return nil
	}
	s, ok := buf.Slice(a.mem.Bytes(), int(bp), n)
	if !ok {
		return nil
	}
	return s
}

// Payload returns the whole usable payload at bp.
func (a *Allocator) Payload(bp format.Addr) []byte {
	return a.Bytes(bp, a.UsableSize(bp))
}

// HeapSize returns the number of bytes obtained from the provider.
func (a *Allocator) HeapSize() int {
	return int(a.mem.Hi() - a.mem.Lo())
}

// Walk calls fn for every block between the prologue and the epilogue, in
// address order, until fn returns false. fn must not allocate or free.
func (a *Allocator) Walk(fn func(BlockInfo) bool) {
	if !a.initialized {
		return
	}
	b := a.mem.Bytes()
	for bp := format.FirstBlockAddr; ; bp = format.NextBlock(b, bp) {
		t := format.Header(b, bp)
		if t.Size == 0 {
			return
		}
		if !fn(BlockInfo{Addr: bp, Size: t.Size, Alloc: t.Alloc, PrevAlloc: t.PrevAlloc}) {
			return
		}
	}
}
