package trace

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/internal/format"
	"github.com/joshuapare/segheap/internal/logger"
)

// Options controls a replay.
type Options struct {
	// Check runs the heap checker after every op and stops at the first failure.
	Check bool
	// SkipPayload disables writing and verifying block contents.
	SkipPayload bool
	// Logger receives per-op debug entries. Defaults to logger.L.
	Logger *zap.Logger
}

// Latency summarizes per-op allocator call times.
type Latency struct {
	Mean time.Duration
	P50  time.Duration
	P90  time.Duration
	P99  time.Duration
	Max  time.Duration
}

// Result summarizes a replay.
type Result struct {
	Trace       string
	Ops         int
	Counts      map[Kind]int
	PeakPayload int64   // Largest sum of live requested bytes
	HeapSize    int     // Bytes obtained from the provider at the end
	Utilization float64 // PeakPayload / HeapSize
	Latency     Latency
	Stats       alloc.Stats
}

type block struct {
	addr format.Addr
	size int
}

type replayer struct {
	a     *alloc.Allocator
	opts  Options
	log   *zap.Logger
	live  map[int]block
	bytes int64
	peak  int64
	lats  []float64
}

// Replay runs tr against a, which must be initialized. Every live block is
// filled with a pattern derived from its id and checked before it is freed
// and after it is moved by realloc.
func Replay(a *alloc.Allocator, tr *Trace, opts Options) (*Result, error) {
	r := &replayer{
		a:    a,
		opts: opts,
		log:  opts.Logger,
		live: make(map[int]block, min(tr.NumIDs, len(tr.Ops))),
		lats: make([]float64, 0, len(tr.Ops)),
	}
	if r.log == nil {
		r.log = logger.Named("trace")
	}

	res := &Result{Trace: tr.Name, Counts: make(map[Kind]int, 4)}
	for _, op := range tr.Ops {
		if err := r.step(op); err != nil {
			return nil, fmt.Errorf("line %d (%s %d): %w", op.Line, op.Kind, op.ID, err)
		}
		res.Ops++
		res.Counts[op.Kind]++

		if opts.Check {
			if ok, err := a.CheckHeap(fmt.Sprintf("line %d", op.Line)); !ok {
				return nil, fmt.Errorf("%w: %w", ErrCheck, err)
			}
		}
	}

	res.PeakPayload = r.peak
	res.HeapSize = a.HeapSize()
	if res.HeapSize > 0 {
		res.Utilization = float64(r.peak) / float64(res.HeapSize)
	}
	res.Latency = summarize(r.lats)
	res.Stats = a.Stats()
	return res, nil
}

// timed runs fn and records its duration.
func (r *replayer) timed(fn func()) {
	start := time.Now()
	fn()
	r.lats = append(r.lats, float64(time.Since(start).Nanoseconds()))
}

func (r *replayer) step(op Op) error {
	var (
		bp  format.Addr
		err error
	)

	switch op.Kind {
	case KindAlloc, KindCalloc:
		if _, ok := r.live[op.ID]; ok {
			return ErrDuplicateID
		}
		if op.Kind == KindAlloc {
			r.timed(func() { bp, err = r.a.Alloc(op.Size) })
		} else {
			r.timed(func() { bp, err = r.a.Calloc(op.Count, op.Size) })
		}
		if err != nil {
			return err
		}
		size := op.Bytes()
		if op.Kind == KindCalloc && !r.opts.SkipPayload {
			if err := r.checkZero(bp, size); err != nil {
				return err
			}
		}
		r.fill(op.ID, bp, size)
		r.track(op.ID, block{addr: bp, size: size})

	case KindRealloc:
		old, ok := r.live[op.ID]
		if !ok {
			return ErrUnknownID
		}
		r.timed(func() { bp, err = r.a.Realloc(old.addr, op.Size) })
		if err != nil {
			return err
		}
		if err := r.verify(op.ID, bp, min(old.size, op.Size)); err != nil {
			return err
		}
		r.fill(op.ID, bp, op.Size)
		r.track(op.ID, block{addr: bp, size: op.Size})

	case KindFree:
		old, ok := r.live[op.ID]
		if !ok {
			return ErrUnknownID
		}
		if err := r.verify(op.ID, old.addr, old.size); err != nil {
			return err
		}
		r.timed(func() { r.a.Free(old.addr) })
		r.track(op.ID, block{})
		delete(r.live, op.ID)
		bp = old.addr
	}

	r.log.Debug("op",
		zap.Stringer("kind", op.Kind),
		zap.Int("id", op.ID),
		zap.Int("size", op.Bytes()),
		zap.Uint64("addr", uint64(bp)))
	return nil
}

// track replaces id's live block and updates the payload high-water mark.
func (r *replayer) track(id int, b block) {
	r.bytes += int64(b.size - r.live[id].size)
	r.live[id] = b
	r.peak = max(r.peak, r.bytes)
}

// pattern returns a scratch buffer holding id's byte pattern. Release it
// with mcache.Free.
func pattern(id, n int) []byte {
	p := mcache.Malloc(n)
	seed := byte(id*131 + 17)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return p
}

func (r *replayer) fill(id int, bp format.Addr, n int) {
	if r.opts.SkipPayload || n == 0 {
		return
	}
	p := pattern(id, n)
	copy(r.a.Bytes(bp, n), p)
	mcache.Free(p)
}

func (r *replayer) verify(id int, bp format.Addr, n int) error {
	if r.opts.SkipPayload || n == 0 {
		return nil
	}
	got := r.a.Bytes(bp, n)
	if got == nil {
		return fmt.Errorf("%w: block 0x%X holds fewer than %d bytes", ErrPayload, bp, n)
	}
	want := pattern(id, n)
	defer mcache.Free(want)
	if !bytes.Equal(got, want) {
		return fmt.Errorf("%w: block 0x%X", ErrPayload, bp)
	}
	return nil
}

func (r *replayer) checkZero(bp format.Addr, n int) error {
	for i, c := range r.a.Bytes(bp, n) {
		if c != 0 {
			return fmt.Errorf("%w: calloc block 0x%X byte %d is 0x%02X", ErrPayload, bp, i, c)
		}
	}
	return nil
}

func summarize(ns []float64) Latency {
	if len(ns) == 0 {
		return Latency{}
	}
	d := func(v float64, err error) time.Duration {
		if err != nil {
			return 0
		}
		return time.Duration(v)
	}
	return Latency{
		Mean: d(stats.Mean(ns)),
		P50:  d(stats.Percentile(ns, 50)),
		P90:  d(stats.Percentile(ns, 90)),
		P99:  d(stats.Percentile(ns, 99)),
		Max:  d(stats.Max(ns)),
	}
}
