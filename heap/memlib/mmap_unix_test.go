//go:build linux || darwin

package memlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Provider = (*MmapArena)(nil)

func TestMmapArenaSbrk(t *testing.T) {
	m, err := NewMmapArena(1 << 20)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, m.Close())
	}()

	p, err := m.Sbrk(4096)
	require.NoError(t, err)
	assert.EqualValues(t, 0, p)

	data := m.Bytes()
	for i := range data {
		data[i] = byte(i)
	}
	_, err = m.Sbrk(4096)
	require.NoError(t, err)
	assert.Equal(t, byte(255), m.Bytes()[255], "earlier grants stay intact")
}

func TestMmapArenaExhaustionAndClose(t *testing.T) {
	m, err := NewMmapArena(1)
	require.NoError(t, err)

	page := m.Capacity()
	require.Positive(t, page)
	_, err = m.Sbrk(page + 1)
	require.ErrorIs(t, err, ErrNoMemory)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is a no-op")

	_, err = m.Sbrk(16)
	require.ErrorIs(t, err, ErrClosed)
}
