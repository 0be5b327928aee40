package alloc

// Stats holds allocator counters for testing and instrumentation.
type Stats struct {
	AllocCalls    int // Alloc() calls, including those made by Realloc and Calloc
	AllocFastPath int // Allocations served from a free list
	AllocSlowPath int // Allocations that required heap growth
	FreeCalls     int // Free() calls with a non-Nil address
	ReallocCalls  int // Realloc() calls
	CallocCalls   int // Calloc() calls

	SplitCount   int // Blocks split by place
	CoalesceNone int // Frees with both neighbors allocated
	CoalesceNext int // Merged with the following block only
	CoalescePrev int // Merged with the preceding block only
	CoalesceBoth int // Merged with both neighbors

	GrowCalls     int   // Heap extensions, including the initial one
	GrowBytes     int64 // Bytes added by heap extensions
	LiveBytes     int64 // Block bytes currently held by clients (headers included)
	PeakLiveBytes int64 // High-water mark of LiveBytes

	CheckRuns     int // Consistency checks run
	CheckFailures int // Consistency checks that found a violation
}

// Stats returns a snapshot of the allocator counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// ListLengths returns the number of free blocks in each bucket.
func (a *Allocator) ListLengths() [NumBuckets]int {
	var out [NumBuckets]int
	if !a.initialized {
		return out
	}
	b := a.mem.Bytes()
	for i := range out {
		out[i] = a.listLen(b, i)
	}
	return out
}

func (a *Allocator) trackLive(delta int64) {
	a.stats.LiveBytes += delta
	if a.stats.LiveBytes > a.stats.PeakLiveBytes {
		a.stats.PeakLiveBytes = a.stats.LiveBytes
	}
}
