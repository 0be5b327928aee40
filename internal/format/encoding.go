package format

import "encoding/binary"

// Binary encoding utilities for little-endian heap words.
//
// Implementation: Uses encoding/binary.LittleEndian. Every access re-slices
// b, so an offset past the break panics.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off Addr, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off Addr) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}

// PutAddr stores an address word at off.
func PutAddr(b []byte, off Addr, v Addr) {
	PutU64(b, off, uint64(v))
}

// ReadAddr loads an address word from off.
func ReadAddr(b []byte, off Addr) Addr {
	return Addr(ReadU64(b, off))
}

// PutTag writes t as a packed boundary-tag word at off.
func PutTag(b []byte, off Addr, t Tag) {
	PutU64(b, off, t.Pack())
}

// ReadTag decodes the boundary-tag word at off.
func ReadTag(b []byte, off Addr) Tag {
	return Unpack(ReadU64(b, off))
}
