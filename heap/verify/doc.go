// Package verify checks the structural consistency of a segregated-list heap.
//
// # Overview
//
// The checker reads a heap through the View interface and never writes to
// it. It is always compiled in; callers decide when to run it. The
// allocator runs it after every public operation when SEGHEAP_CHECK is set.
//
// Checks run in this order and stop at the first violation:
//   - Prologue: the sentinel block at the start of the heap is intact
//   - Lists: every list member is free, in bounds and in the right bucket,
//     and back links mirror forward links
//   - Walk: every block from the first real block to the epilogue is
//     aligned, at least the minimum size, and inside the heap
//   - Counts: free blocks found by the walk equal those found in the lists
//   - Neighbors: no two adjacent free blocks, PrevAlloc bits match the real
//     predecessor, and free block footers mirror their headers
//
// # Quick Start
//
//	if err := verify.Heap(a.View()); err != nil {
//	    fmt.Printf("heap corrupt: %v\n", err)
//	}
//
// # ValidationError
//
// Heap returns a *ValidationError on failure:
//
//	type ValidationError struct {
//	    Type    string         // Check that failed (e.g., "Lists")
//	    Message string         // Human-readable description
//	    Offset  int            // Heap address involved (-1 if N/A)
//	    Details map[string]any // Additional context
//	}
//
// Example:
//
//	var verr *verify.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("Type: %s\n", verr.Type)
//	    fmt.Printf("Offset: 0x%X\n", verr.Offset)
//	}
package verify
