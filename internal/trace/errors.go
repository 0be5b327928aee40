package trace

import "errors"

var (
	// ErrSyntax indicates a trace line that could not be parsed.
	ErrSyntax = errors.New("trace: syntax error")

	// ErrUnknownID indicates a free or realloc of an id that is not live.
	ErrUnknownID = errors.New("trace: unknown block id")

	// ErrDuplicateID indicates an allocation for an id that is already live.
	ErrDuplicateID = errors.New("trace: block id already live")

	// ErrPayload indicates that a block's contents changed while the client held it.
	ErrPayload = errors.New("trace: payload corrupted")

	// ErrCheck indicates a heap consistency check failed during replay.
	ErrCheck = errors.New("trace: heap check failed")
)
