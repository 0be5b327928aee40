package alloc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/segheap/heap/verify"
	"github.com/joshuapare/segheap/internal/format"
)

// heapView exposes the allocator's state to the checker.
type heapView struct {
	a *Allocator
}

func (v heapView) Bytes() []byte { return v.a.mem.Bytes() }
func (v heapView) Lo() format.Addr { return v.a.mem.Lo() }
func (v heapView) Hi() format.Addr { return v.a.mem.Hi() }
func (v heapView) FirstBlock() format.Addr { return format.FirstBlockAddr }
func (v heapView) NumLists() int { return NumBuckets }
func (v heapView) ListHead(i int) format.Addr { return v.a.heads[i] }
func (v heapView) BucketFor(size int) int { return BucketFor(size) }

// View returns a read-only view of the heap for verify.Heap.
func (a *Allocator) View() verify.View {
	return heapView{a: a}
}

// CheckHeap runs every consistency check over the heap. It returns true
// when the heap is consistent; otherwise false and an error naming label
// and the first violation. Violations are logged at error level.
func (a *Allocator) CheckHeap(label string) (bool, error) {
	if !a.initialized {
		return false, fmt.Errorf("%s: %w", label, ErrNotInitialized)
	}
	a.stats.CheckRuns++
	if err := verify.Heap(a.View()); err != nil {
		a.stats.CheckFailures++
		a.log.Error("heap check failed", zap.String("context", label), zap.Error(err))
		return false, fmt.Errorf("%s: %w", label, err)
	}
	return true, nil
}

func (a *Allocator) autoCheck(label string) {
	if a.checkHeap {
		_, _ = a.CheckHeap(label)
	}
}
