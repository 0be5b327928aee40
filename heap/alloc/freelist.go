package alloc

import "github.com/joshuapare/segheap/internal/format"

// Free lists are intrusive: a free block's first payload word links to the
// next block of its bucket and the second word links back. Both lists are
// unordered and grow at the head.

// insert pushes bp onto the head of the list for size.
func (a *Allocator) insert(b []byte, bp format.Addr, size int) {
	i := BucketFor(size)
	head := a.heads[i]

	format.PutAddr(b, format.NextLinkOf(bp), head)
	format.PutAddr(b, format.PrevLinkOf(bp), format.Nil)
	if head != format.Nil {
		format.PutAddr(b, format.PrevLinkOf(head), bp)
	}
	a.heads[i] = bp
}

// remove unlinks bp from the list for size. size must be the size bp had
// when it was inserted.
func (a *Allocator) remove(b []byte, bp format.Addr, size int) {
	i := BucketFor(size)
	next := format.ReadAddr(b, format.NextLinkOf(bp))
	prev := format.ReadAddr(b, format.PrevLinkOf(bp))

	switch {
	case prev == format.Nil && next == format.Nil:
		// Sole member
		a.heads[i] = format.Nil
	case prev == format.Nil:
		// Head with a successor
		a.heads[i] = next
		format.PutAddr(b, format.PrevLinkOf(next), format.Nil)
	case next == format.Nil:
		// Tail
		format.PutAddr(b, format.NextLinkOf(prev), format.Nil)
	default:
		format.PutAddr(b, format.NextLinkOf(prev), next)
		format.PutAddr(b, format.PrevLinkOf(next), prev)
	}
}

// findFit returns the first block in list order, starting at the bucket for
// asize and moving to larger buckets, whose size is at least asize.
func (a *Allocator) findFit(b []byte, asize int) (format.Addr, bool) {
	for i := BucketFor(asize); i < NumBuckets; i++ {
		for bp := a.heads[i]; bp != format.Nil; bp = format.ReadAddr(b, format.NextLinkOf(bp)) {
			if format.BlockSize(b, bp) >= asize {
				return bp, true
			}
		}
	}
	return format.Nil, false
}

// listLen counts the members of list i.
func (a *Allocator) listLen(b []byte, i int) int {
	n := 0
	for bp := a.heads[i]; bp != format.Nil; bp = format.ReadAddr(b, format.NextLinkOf(bp)) {
		n++
	}
	return n
}
