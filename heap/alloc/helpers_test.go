package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segheap/heap/memlib"
	"github.com/joshuapare/segheap/internal/format"
)

// newTestAllocator returns an initialized allocator over a fresh arena.
func newTestAllocator(t testing.TB, maxBytes int, opts ...Option) (*Allocator, *memlib.Arena) {
	t.Helper()
	mem := memlib.NewArena(maxBytes)
	a := New(mem, opts...)
	require.NoError(t, a.Init())
	return a, mem
}

// mustAlloc allocates size bytes and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, size int) format.Addr {
	t.Helper()
	bp, err := a.Alloc(size)
	require.NoError(t, err, "Alloc(%d)", size)
	require.NotEqual(t, format.Nil, bp, "Alloc(%d) returned Nil", size)
	return bp
}

// assertInvariants runs the checker and fails the test on any violation.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	ok, err := a.CheckHeap(t.Name())
	require.NoError(t, err)
	require.True(t, ok)
}

// blocks collects the heap chain.
func blocks(a *Allocator) []BlockInfo {
	var out []BlockInfo
	a.Walk(func(bi BlockInfo) bool {
		out = append(out, bi)
		return true
	})
	return out
}

// blockAt returns the chain entry at bp.
func blockAt(t testing.TB, a *Allocator, bp format.Addr) BlockInfo {
	t.Helper()
	for _, bi := range blocks(a) {
		if bi.Addr == bp {
			return bi
		}
	}
	require.Failf(t, "block not found", "no block at 0x%X", bp)
	return BlockInfo{}
}

// fill writes a pattern derived from seed into p.
func fill(p []byte, seed byte) {
	for i := range p {
		p[i] = seed + byte(i*7)
	}
}

// requirePattern checks that p holds the pattern written by fill.
func requirePattern(t testing.TB, p []byte, seed byte) {
	t.Helper()
	for i := range p {
		if p[i] != seed+byte(i*7) {
			require.Failf(t, "pattern mismatch", "byte %d = 0x%02X, want 0x%02X", i, p[i], seed+byte(i*7))
		}
	}
}
