package trace

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/heap/memlib"
)

func newAllocator(t *testing.T, maxBytes int) *alloc.Allocator {
	t.Helper()
	a := alloc.New(memlib.NewArena(maxBytes))
	require.NoError(t, a.Init())
	return a
}

func mustParse(t *testing.T, src string) *Trace {
	t.Helper()
	tr, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return tr
}

func TestReplay_Classic(t *testing.T) {
	a := newAllocator(t, 1<<20)
	res, err := Replay(a, mustParse(t, classicTrace), Options{Check: true})
	require.NoError(t, err)

	assert.Equal(t, 7, res.Ops)
	assert.Equal(t, 3, res.Counts[KindAlloc])
	assert.Equal(t, 2, res.Counts[KindRealloc])
	assert.Equal(t, 2, res.Counts[KindFree])

	// Peak live payload: 768 (id 0) + 128 (id 2) after the second realloc
	assert.Equal(t, int64(896), res.PeakPayload)
	assert.Equal(t, a.HeapSize(), res.HeapSize)
	assert.InDelta(t, 896.0/float64(res.HeapSize), res.Utilization, 1e-9)
	assert.Positive(t, res.Stats.CheckRuns)
	assert.LessOrEqual(t, res.Latency.P50, res.Latency.Max)
}

func TestReplay_CallocAndZeroSizes(t *testing.T) {
	src := `c 1 16 4
a 2 0
r 2 40
r 1 0
f 2
f 1
a 1 8
`
	a := newAllocator(t, 1<<20)
	res, err := Replay(a, mustParse(t, src), Options{Check: true})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Ops)
	assert.Equal(t, int64(104), res.PeakPayload)
}

func TestReplay_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"free unknown", "f 3\n", ErrUnknownID},
		{"realloc unknown", "r 3 10\n", ErrUnknownID},
		{"double alloc", "a 1 10\na 1 10\n", ErrDuplicateID},
		{"double free", "a 1 10\nf 1\nf 1\n", ErrUnknownID},
		{"out of memory", "a 1 1000000\n", alloc.ErrNoSpace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAllocator(t, 1<<16)
			_, err := Replay(a, mustParse(t, tt.src), Options{})
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestReplay_DetectsPayloadCorruption(t *testing.T) {
	tr := mustParse(t, "a 1 64\na 2 64\nf 1\n")
	a := newAllocator(t, 1<<16)

	// Replay the allocations, then scribble over block 1 and free it
	r := &replayer{a: a, live: map[int]block{}, log: zap.NewNop()}
	require.NoError(t, r.step(tr.Ops[0]))
	require.NoError(t, r.step(tr.Ops[1]))
	a.Bytes(r.live[1].addr, 64)[10] ^= 0xFF

	err := r.step(tr.Ops[2])
	require.ErrorIs(t, err, ErrPayload)
}

func TestReplay_CheckFailureStops(t *testing.T) {
	a := newAllocator(t, 1<<16)
	tr := mustParse(t, "a 1 64\nf 1\n")

	// Corrupt the prologue size so the very first check fails
	a.View().Bytes()[8] ^= 0x10

	_, err := Replay(a, tr, Options{Check: true})
	require.ErrorIs(t, err, ErrCheck)
	assert.Contains(t, err.Error(), "line 1")
}

func TestReplay_SkipPayload(t *testing.T) {
	a := newAllocator(t, 1<<20)
	res, err := Replay(a, mustParse(t, classicTrace), Options{SkipPayload: true})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Ops)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Latency{}, summarize(nil))

	l := summarize([]float64{100, 200, 300, 400})
	assert.Equal(t, int64(250), l.Mean.Nanoseconds())
	assert.Equal(t, int64(400), l.Max.Nanoseconds())
	assert.LessOrEqual(t, l.P50, l.P90)
	assert.LessOrEqual(t, l.P90, l.P99)
}

func TestReplay_SparseIDs(t *testing.T) {
	tr := mustParse(t, "a 200000000 16\nf 200000000\n")
	require.Equal(t, 200000001, tr.NumIDs)

	a := newAllocator(t, 1<<20)
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	res, err := Replay(a, tr, Options{})
	runtime.ReadMemStats(&after)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Ops)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20),
		"replay memory must not scale with the largest id")
}
