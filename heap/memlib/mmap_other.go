//go:build !linux && !darwin

package memlib

// MmapArena falls back to a Go-heap reservation where anonymous mappings
// are not wired up.
type MmapArena struct {
	Arena
}

// NewMmapArena returns an Arena-backed provider of maxBytes bytes.
func NewMmapArena(maxBytes int) (*MmapArena, error) {
	return &MmapArena{Arena: *NewArena(maxBytes)}, nil
}

// Close releases the reservation.
func (m *MmapArena) Close() error {
	m.mem = nil
	return nil
}
