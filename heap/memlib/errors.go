package memlib

import "errors"

var (
	// ErrNoMemory indicates the provider cannot grow the region any further.
	ErrNoMemory = errors.New("memlib: ran out of memory")

	// ErrNegativeIncrement indicates a Sbrk request with a negative size.
	ErrNegativeIncrement = errors.New("memlib: negative sbrk increment")

	// ErrClosed indicates use of a provider after Close.
	ErrClosed = errors.New("memlib: provider closed")
)
