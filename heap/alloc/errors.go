package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block was large enough and the heap could not grow.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrSizeOverflow indicates a negative request or one whose adjusted size overflows.
	ErrSizeOverflow = errors.New("alloc: request size overflows")

	// ErrInitFailed indicates the provider refused the initial heap layout.
	ErrInitFailed = errors.New("alloc: heap initialization failed")

	// ErrAlreadyInitialized indicates Init was called twice on one allocator.
	ErrAlreadyInitialized = errors.New("alloc: already initialized")

	// ErrNotInitialized indicates use of an allocator before Init.
	ErrNotInitialized = errors.New("alloc: not initialized")
)
