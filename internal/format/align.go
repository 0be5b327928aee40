package format

// Alignment utilities for the heap layout.

// Align16 returns n aligned up to the next 16-byte boundary.
// Used for block sizes and heap extension requests.
//
// Example:
//
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
func Align16(n int) int {
	return (n + AlignmentMask) &^ AlignmentMask
}

// IsAligned reports whether a is on a 16-byte boundary.
func IsAligned(a Addr) bool {
	return a&AlignmentMask == 0
}

// AdjustedSize returns the block size needed to serve a request of n payload
// bytes: n plus header and footer, rounded to 16, never below MinBlockSize.
// The caller guarantees n > 0 and that n+DoubleSize does not overflow.
//
// Example:
//
//	AdjustedSize(1)   = 32
//	AdjustedSize(16)  = 32
//	AdjustedSize(17)  = 48
//	AdjustedSize(100) = 128
func AdjustedSize(n int) int {
	asize := Align16(n + DoubleSize)
	if asize < MinBlockSize {
		return MinBlockSize
	}
	return asize
}
