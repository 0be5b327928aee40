package alloc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joshuapare/segheap/heap/memlib"
	"github.com/joshuapare/segheap/internal/buf"
	"github.com/joshuapare/segheap/internal/format"
	"github.com/joshuapare/segheap/internal/logger"
)

// Runtime debug flag for allocation logging - controlled by SEGHEAP_LOG_ALLOC env var.
var logAlloc = logger.EnvEnabled("SEGHEAP_LOG_ALLOC")

// Runtime flag that runs the consistency checker after every public operation.
var checkEnv = logger.EnvEnabled("SEGHEAP_CHECK")

// Allocator is a segregated free-list allocator over a single Provider.
//
// Free blocks are kept in NumBuckets LIFO lists keyed by size; allocation is
// first-fit starting at the request's bucket. Freed blocks are coalesced
// with free neighbors immediately, so no two free blocks are ever adjacent.
type Allocator struct {
	mem memlib.Provider

	// List heads, one per bucket. Nil means empty.
	heads [NumBuckets]format.Addr

	chunkSize   int
	checkHeap   bool
	initialized bool

	log   *zap.Logger
	stats Stats
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithChunkSize sets the initial heap extension. It is rounded up to a
// multiple of 16 and never below the minimum block size. Sizes that cannot
// be rounded without overflow are ignored.
func WithChunkSize(n int) Option {
	return func(a *Allocator) {
		if _, ok := buf.AddOverflowSafe(n, format.AlignmentMask); !ok {
			return
		}
		a.chunkSize = max(format.Align16(n), format.MinBlockSize)
	}
}

// WithLogger sets the logger used for growth and checker reports.
func WithLogger(l *zap.Logger) Option {
	return func(a *Allocator) {
		if l != nil {
			a.log = l
		}
	}
}

// WithCheckHeap runs the consistency checker after every public operation.
// Violations are logged and counted; they do not change results.
func WithCheckHeap(on bool) Option {
	return func(a *Allocator) {
		a.checkHeap = on
	}
}

// New creates an allocator over mem. Call Init before any other method.
func New(mem memlib.Provider, opts ...Option) *Allocator {
	a := &Allocator{
		mem:       mem,
		chunkSize: format.ChunkSize,
		checkHeap: checkEnv,
		log:       logger.Named("alloc"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init lays out the pad word, the prologue and the epilogue, then extends
// the heap by the chunk size. The provider must be empty.
func (a *Allocator) Init() error {
	if a.initialized {
		return ErrAlreadyInitialized
	}
	a.heads = [NumBuckets]format.Addr{}

	base, err := a.mem.Sbrk(format.PrefixSize)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	if base != format.Nil {
		return fmt.Errorf("%w: provider already holds %d bytes", ErrInitFailed, base)
	}

	b := a.mem.Bytes()
	format.PutU64(b, format.PadOffset, 0)
	format.SetHeaderFooter(b, format.PrologueAddr, format.Tag{
		Size: format.PrologueSize, Alloc: true, PrevAlloc: true,
	})
	format.SetHeader(b, format.FirstBlockAddr, format.Tag{Alloc: true, PrevAlloc: true})

	if _, err := a.extendHeap(a.chunkSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	a.initialized = true

	a.log.Debug("heap initialized",
		zap.Int("chunk", a.chunkSize),
		zap.Uint64("hi", uint64(a.mem.Hi())))
	a.autoCheck("init")
	return nil
}

// extendHeap grows the heap by n bytes. The new free block takes over the
// old epilogue header, and a fresh epilogue is written at the new top.
// Returns the block that holds the new space after coalescing.
func (a *Allocator) extendHeap(n int) (format.Addr, error) {
	n = format.Align16(n)
	bp, err := a.mem.Sbrk(n)
	if err != nil {
		if logAlloc {
			a.log.Debug("grow failed", zap.Int("bytes", n), zap.Error(err))
		}
		return format.Nil, fmt.Errorf("%w: extend by %d bytes: %w", ErrNoSpace, n, err)
	}

	b := a.mem.Bytes()
	prevAlloc := format.Header(b, bp).PrevAlloc
	format.SetHeaderFooter(b, bp, format.Tag{Size: n, PrevAlloc: prevAlloc})
	a.insert(b, bp, n)
	format.SetHeader(b, format.NextBlock(b, bp), format.Tag{Alloc: true})

	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(n)
	if logAlloc {
		a.log.Debug("grow",
			zap.Int("bytes", n),
			zap.Uint64("block", uint64(bp)),
			zap.Uint64("hi", uint64(a.mem.Hi())))
	}

	return a.coalesce(b, bp), nil
}

// adjust converts a client request into a block size.
func adjust(size int) (int, error) {
	if size < 0 {
		return 0, ErrSizeOverflow
	}
	if _, ok := buf.AddOverflowSafe(size, format.DoubleSize+format.AlignmentMask); !ok {
		return 0, ErrSizeOverflow
	}
	return format.AdjustedSize(size), nil
}

// Alloc returns the address of a 16-byte aligned payload of at least size
// bytes. A zero size returns (Nil, nil).
func (a *Allocator) Alloc(size int) (format.Addr, error) {
	if !a.initialized {
		return format.Nil, ErrNotInitialized
	}
	a.stats.AllocCalls++
	if size == 0 {
		return format.Nil, nil
	}

	asize, err := adjust(size)
	if err != nil {
		return format.Nil, fmt.Errorf("%w: %d bytes", err, size)
	}

	b := a.mem.Bytes()
	bp, ok := a.findFit(b, asize)
	if ok {
		a.stats.AllocFastPath++
	} else {
		bp, err = a.extendHeap(asize)
		if err != nil {
			return format.Nil, err
		}
		b = a.mem.Bytes()
		a.stats.AllocSlowPath++
	}

	a.place(b, bp, asize)
	a.trackLive(int64(format.BlockSize(b, bp)))

	if logAlloc {
		a.log.Debug("alloc",
			zap.Int("request", size),
			zap.Int("block", format.BlockSize(b, bp)),
			zap.Uint64("addr", uint64(bp)))
	}
	a.autoCheck("alloc")
	return bp, nil
}

// place marks the free block bp allocated for asize bytes, splitting off
// the tail when it can form a block of its own.
func (a *Allocator) place(b []byte, bp format.Addr, asize int) {
	t := format.Header(b, bp)
	a.remove(b, bp, t.Size)

	rem := t.Size - asize
	if rem >= format.MinBlockSize {
		a.stats.SplitCount++
		format.SetHeader(b, bp, format.Tag{Size: asize, Alloc: true, PrevAlloc: t.PrevAlloc})

		tail := bp + format.Addr(asize)
		format.SetHeaderFooter(b, tail, format.Tag{Size: rem, PrevAlloc: true})
		a.insert(b, tail, rem)
		return
	}

	// Use the entire block
	format.SetHeader(b, bp, format.Tag{Size: t.Size, Alloc: true, PrevAlloc: t.PrevAlloc})
	setPrevAlloc(b, format.NextBlock(b, bp), true)
}

// setPrevAlloc updates bp's PrevAlloc bit, keeping the footer in step
// when bp is a free block.
func setPrevAlloc(b []byte, bp format.Addr, on bool) {
	t := format.Header(b, bp)
	t.PrevAlloc = on
	if t.Alloc || t.Size == 0 {
		format.SetHeader(b, bp, t)
		return
	}
	format.SetHeaderFooter(b, bp, t)
}

// Free returns bp to the heap. Freeing Nil is a no-op. Freeing an address
// that is not a live allocation corrupts the heap.
func (a *Allocator) Free(bp format.Addr) {
	if bp == format.Nil || !a.initialized {
		return
	}
	a.stats.FreeCalls++

	b := a.mem.Bytes()
	t := format.Header(b, bp)
	a.trackLive(-int64(t.Size))

	t.Alloc = false
	format.SetHeaderFooter(b, bp, t)
	setPrevAlloc(b, format.NextBlock(b, bp), false)
	a.insert(b, bp, t.Size)
	merged := a.coalesce(b, bp)

	if logAlloc {
		a.log.Debug("free",
			zap.Uint64("addr", uint64(bp)),
			zap.Int("block", t.Size),
			zap.Uint64("merged", uint64(merged)))
	}
	a.autoCheck("free")
}

// coalesce merges the free, listed block bp with any free neighbors and
// returns the address of the resulting block, which is listed.
func (a *Allocator) coalesce(b []byte, bp format.Addr) format.Addr {
	t := format.Header(b, bp)
	size := t.Size
	next := format.NextBlock(b, bp)
	nt := format.Header(b, next)

	prevFree := !t.PrevAlloc
	nextFree := !nt.Alloc

	switch {
	case !prevFree && !nextFree:
		a.stats.CoalesceNone++
		return bp

	case !prevFree && nextFree:
		a.stats.CoalesceNext++
		a.remove(b, bp, size)
		a.remove(b, next, nt.Size)
		size += nt.Size
		format.SetHeaderFooter(b, bp, format.Tag{Size: size, PrevAlloc: true})

	case prevFree && !nextFree:
		a.stats.CoalescePrev++
		prev := format.PrevBlock(b, bp)
		pt := format.Header(b, prev)
		a.remove(b, bp, size)
		a.remove(b, prev, pt.Size)
		size += pt.Size
		format.SetHeaderFooter(b, prev, format.Tag{Size: size, PrevAlloc: pt.PrevAlloc})
		bp = prev

	default:
		a.stats.CoalesceBoth++
		prev := format.PrevBlock(b, bp)
		pt := format.Header(b, prev)
		a.remove(b, bp, size)
		a.remove(b, prev, pt.Size)
		a.remove(b, next, nt.Size)
		size += pt.Size + nt.Size
		format.SetHeaderFooter(b, prev, format.Tag{Size: size, PrevAlloc: pt.PrevAlloc})
		bp = prev
	}

	a.insert(b, bp, size)
	return bp
}

// Realloc moves the allocation at bp into a block of at least size bytes
// and returns its new address. The first min(size, UsableSize(bp)) bytes
// are preserved. A Nil bp behaves like Alloc. A zero size frees bp and
// returns Nil. On error bp is left untouched.
func (a *Allocator) Realloc(bp format.Addr, size int) (format.Addr, error) {
	if bp == format.Nil {
		return a.Alloc(size)
	}
	if !a.initialized {
		return format.Nil, ErrNotInitialized
	}
	a.stats.ReallocCalls++

	nbp, err := a.Alloc(size)
	if err != nil {
		return format.Nil, err
	}
	if nbp != format.Nil {
		n := min(size, a.UsableSize(bp))
		b := a.mem.Bytes()
		copy(b[nbp:nbp+format.Addr(n)], b[bp:bp+format.Addr(n)])
	}
	a.Free(bp)
	return nbp, nil
}

// Calloc allocates count*elem bytes and zeroes them.
func (a *Allocator) Calloc(count, elem int) (format.Addr, error) {
	if !a.initialized {
		return format.Nil, ErrNotInitialized
	}
	a.stats.CallocCalls++

	n, ok := buf.MulOverflowSafe(count, elem)
	if !ok {
		return format.Nil, fmt.Errorf("%w: %d x %d bytes", ErrSizeOverflow, count, elem)
	}
	bp, err := a.Alloc(n)
	if err != nil || bp == format.Nil {
		return bp, err
	}
	buf.Zero(a.Bytes(bp, n))
	return bp, nil
}
