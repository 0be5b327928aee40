package memlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segheap/internal/format"
)

var _ Provider = (*Arena)(nil)

func TestArenaSbrkGrowsContiguously(t *testing.T) {
	a := NewArena(1024)
	require.Equal(t, 1024, a.Capacity())
	require.Equal(t, format.Addr(0), a.Lo())
	require.Equal(t, format.Addr(0), a.Hi())

	p1, err := a.Sbrk(48)
	require.NoError(t, err)
	assert.Equal(t, format.Addr(0), p1)

	p2, err := a.Sbrk(64)
	require.NoError(t, err)
	assert.Equal(t, format.Addr(48), p2)
	assert.Equal(t, format.Addr(112), a.Hi())
	assert.Len(t, a.Bytes(), 112)
}

func TestArenaKeepsEarlierBytes(t *testing.T) {
	a := NewArena(4096)
	_, err := a.Sbrk(16)
	require.NoError(t, err)
	copy(a.Bytes(), "0123456789abcdef")

	_, err = a.Sbrk(2048)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", string(a.Bytes()[:16]))
}

func TestArenaExhaustion(t *testing.T) {
	a := NewArena(128)
	_, err := a.Sbrk(100)
	require.NoError(t, err)

	_, err = a.Sbrk(29)
	require.ErrorIs(t, err, ErrNoMemory)
	assert.Equal(t, format.Addr(100), a.Hi(), "failed sbrk must not move the break")

	_, err = a.Sbrk(28)
	require.NoError(t, err)
}

func TestArenaNegativeIncrement(t *testing.T) {
	a := NewArena(128)
	_, err := a.Sbrk(-16)
	require.ErrorIs(t, err, ErrNegativeIncrement)
}

func TestArenaReset(t *testing.T) {
	a := NewArena(256)
	_, err := a.Sbrk(200)
	require.NoError(t, err)
	a.Reset()
	assert.Equal(t, 0, a.Size())

	p, err := a.Sbrk(256)
	require.NoError(t, err)
	assert.Equal(t, format.Addr(0), p)
}

func TestNewArenaDefaults(t *testing.T) {
	a := NewArena(0)
	assert.Equal(t, DefaultMaxHeap, a.Capacity())

	odd := NewArena(1000)
	assert.Equal(t, 992, odd.Capacity(), "reservation is rounded down to 16 bytes")
}
