package format

import "errors"

var (
	// ErrMisaligned indicates an address or size that is not a multiple of Alignment.
	ErrMisaligned = errors.New("format: misaligned address or size")
	// ErrTruncated indicates the buffer lacked the bytes required for a block.
	ErrTruncated = errors.New("format: truncated buffer")
)

// CheckBlock validates that bp names a block whose header and extent lie
// inside b. It does not look at flags.
func CheckBlock(b []byte, bp Addr) error {
	if !IsAligned(bp) {
		return ErrMisaligned
	}
	if bp < WordSize || uint64(bp) > uint64(len(b)) {
		return ErrTruncated
	}
	size := BlockSize(b, bp)
	if size&AlignmentMask != 0 {
		return ErrMisaligned
	}
	end := uint64(bp) + uint64(size) - WordSize
	if end > uint64(len(b)) {
		return ErrTruncated
	}
	return nil
}
