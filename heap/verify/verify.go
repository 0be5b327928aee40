package verify

import (
	"fmt"

	"github.com/joshuapare/segheap/internal/format"
)

// View is the read-only state the checker needs from an allocator.
type View interface {
	// Bytes returns the heap region [Lo, Hi).
	Bytes() []byte
	Lo() format.Addr
	// Hi is the break: one past the epilogue header.
	Hi() format.Addr
	// FirstBlock is the payload address of the first block after the prologue.
	FirstBlock() format.Addr
	NumLists() int
	ListHead(i int) format.Addr
	// BucketFor maps a block size to the list that must hold it.
	BucketFor(size int) int
}

// ValidationError describes the first violation found.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func fail(kind string, at format.Addr, msg string, args ...any) *ValidationError {
	return &ValidationError{Type: kind, Message: fmt.Sprintf(msg, args...), Offset: int(at)}
}

// Heap validates every heap invariant in one call.
// Returns the first error encountered, or nil if all checks pass.
func Heap(v View) error {
	if err := Prologue(v); err != nil {
		return err
	}
	listed, err := Lists(v)
	if err != nil {
		return err
	}
	walked, err := Walk(v)
	if err != nil {
		return err
	}
	if listed != walked {
		return &ValidationError{
			Type:    "Counts",
			Message: fmt.Sprintf("%d free blocks in lists, %d in heap", listed, walked),
			Offset:  -1,
			Details: map[string]any{"listed": listed, "walked": walked},
		}
	}
	return Neighbors(v)
}

// Prologue validates the sentinel block that precedes the first real block.
func Prologue(v View) error {
	b := v.Bytes()
	first := v.FirstBlock()
	if uint64(first) > uint64(len(b)) || first < format.PrologueAddr+format.PrologueSize {
		return &ValidationError{
			Type:    "Prologue",
			Message: fmt.Sprintf("heap too small: %d bytes", len(b)),
			Offset:  -1,
		}
	}
	hdr := format.Header(b, format.PrologueAddr)
	want := format.Tag{Size: format.PrologueSize, Alloc: true, PrevAlloc: true}
	if hdr != want {
		return fail("Prologue", format.HeaderOf(format.PrologueAddr), "header %v, want %v", hdr, want)
	}
	if ftr := format.ReadTag(b, format.FooterOf(b, format.PrologueAddr)); ftr != hdr {
		return fail("Prologue", format.FooterOf(b, format.PrologueAddr), "footer %v does not match header %v", ftr, hdr)
	}
	return nil
}

// inHeap reports whether bp can be the payload address of a real block.
func inHeap(v View, bp format.Addr) bool {
	return bp >= v.FirstBlock() && bp < v.Hi() && format.IsAligned(bp)
}

// Lists walks every free list and returns the number of members.
func Lists(v View) (int, error) {
	b := v.Bytes()
	// No list can hold more blocks than fit in the heap.
	limit := int(v.Hi()-v.Lo())/format.MinBlockSize + 1
	total := 0

	for i := 0; i < v.NumLists(); i++ {
		prev := format.Nil
		n := 0
		for bp := v.ListHead(i); bp != format.Nil; bp = format.ReadAddr(b, format.NextLinkOf(bp)) {
			if !inHeap(v, bp) {
				return 0, fail("Lists", bp, "list %d member outside heap [0x%X, 0x%X)", i, v.FirstBlock(), v.Hi())
			}
			if err := format.CheckBlock(b, bp); err != nil {
				return 0, fail("Lists", bp, "list %d member: %v", i, err)
			}
			t := format.Header(b, bp)
			if t.Size < format.MinBlockSize {
				return 0, fail("Lists", bp, "list %d member has size %d", i, t.Size)
			}
			if t.Alloc {
				return 0, fail("Lists", bp, "list %d member is allocated", i)
			}
			if got := v.BucketFor(t.Size); got != i {
				return 0, &ValidationError{
					Type:    "Lists",
					Message: fmt.Sprintf("block of size %d in list %d, belongs in %d", t.Size, i, got),
					Offset:  int(bp),
					Details: map[string]any{"list": i, "bucket": got, "size": t.Size},
				}
			}
			if back := format.ReadAddr(b, format.PrevLinkOf(bp)); back != prev {
				return 0, fail("Lists", bp, "list %d back link 0x%X, want 0x%X", i, back, prev)
			}
			n++
			if n > limit {
				return 0, fail("Lists", v.ListHead(i), "list %d has a cycle", i)
			}
			prev = bp
		}
		total += n
	}
	return total, nil
}

// Walk follows the block chain from the first real block to the epilogue
// and returns the number of free blocks.
func Walk(v View) (int, error) {
	b := v.Bytes()
	hi := v.Hi()
	free := 0

	bp := v.FirstBlock()
	for {
		if bp > hi {
			return 0, fail("Walk", bp, "block chain runs past the break 0x%X", hi)
		}
		t := format.Header(b, bp)
		if t.Size == 0 {
			if !t.Alloc {
				return 0, fail("Walk", format.HeaderOf(bp), "epilogue not marked allocated")
			}
			if bp != hi {
				return 0, fail("Walk", format.HeaderOf(bp), "epilogue ends at 0x%X, break is 0x%X", bp, hi)
			}
			return free, nil
		}
		if !format.IsAligned(bp) || t.Size&format.AlignmentMask != 0 {
			return 0, fail("Walk", bp, "misaligned block of size %d", t.Size)
		}
		if t.Size < format.MinBlockSize {
			return 0, fail("Walk", bp, "block size %d below minimum %d", t.Size, format.MinBlockSize)
		}
		if uint64(bp)+uint64(t.Size) > uint64(hi) {
			return 0, fail("Walk", bp, "block of size %d overlaps the break 0x%X", t.Size, hi)
		}
		if !t.Alloc {
			free++
		}
		bp = format.NextBlock(b, bp)
	}
}

// Neighbors checks each block against its predecessor. It assumes Walk
// passed, so every size on the chain is sane.
func Neighbors(v View) error {
	b := v.Bytes()
	prevAlloc := true // prologue
	prevFree := format.Nil

	for bp := v.FirstBlock(); ; bp = format.NextBlock(b, bp) {
		t := format.Header(b, bp)
		if t.PrevAlloc != prevAlloc {
			return &ValidationError{
				Type:    "Neighbors",
				Message: fmt.Sprintf("prev-alloc bit is %t, predecessor allocated is %t", t.PrevAlloc, prevAlloc),
				Offset:  int(bp),
				Details: map[string]any{"tag": t.String()},
			}
		}
		if t.Size == 0 {
			return nil
		}
		if !t.Alloc {
			if !prevAlloc {
				return fail("Neighbors", bp, "free block follows free block at 0x%X", prevFree)
			}
			if ftr := format.ReadTag(b, format.FooterOf(b, bp)); ftr != t {
				return fail("Neighbors", bp, "footer %v does not match header %v", ftr, t)
			}
			prevFree = bp
		}
		prevAlloc = t.Alloc
	}
}
