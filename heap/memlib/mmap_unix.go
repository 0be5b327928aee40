//go:build linux || darwin

package memlib

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapArena is a Provider backed by an anonymous private mapping. The whole
// reservation is mapped once; the kernel commits pages on first touch.
type MmapArena struct {
	region
	mapping []byte
}

// NewMmapArena maps maxBytes bytes (rounded up to the page size). A non-positive
// maxBytes selects DefaultMaxHeap.
func NewMmapArena(maxBytes int) (*MmapArena, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxHeap
	}
	page := unix.Getpagesize()
	maxBytes = (maxBytes + page - 1) &^ (page - 1)

	mapping, err := unix.Mmap(
		-1,
		0,
		maxBytes,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE|unix.MAP_NORESERVE,
	)
	if err != nil {
		return nil, fmt.Errorf("memlib: mmap %d bytes: %w", maxBytes, err)
	}
	return &MmapArena{
		region:  region{mem: mapping[:0]},
		mapping: mapping,
	}, nil
}

// Close unmaps the region. Further Sbrk calls fail with ErrClosed.
func (m *MmapArena) Close() error {
	if m.mapping == nil {
		return nil
	}
	err := unix.Munmap(m.mapping)
	m.mapping = nil
	m.mem = nil
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
