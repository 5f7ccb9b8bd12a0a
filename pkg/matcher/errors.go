package matcher

import "errors"

// Sentinel errors surfaced by the matcher façade. I/O failures are wrapped
// with the offending path and unwrap to the underlying error.
var (
	// ErrEmptyPatternSet is returned by New when no non-empty pattern
	// remains after normalization.
	ErrEmptyPatternSet = errors.New("pattern set cannot be empty")

	// ErrInvalidChunkSize is returned for an explicit negative chunk
	// size. Zero selects the default; sizes below the longest pattern
	// are raised, not rejected.
	ErrInvalidChunkSize = errors.New("chunk size must not be negative")

	// ErrInvalidThreadCount is returned for an explicit negative worker
	// count. Zero selects the host's parallelism.
	ErrInvalidThreadCount = errors.New("thread count must not be negative")

	// ErrInvalidBufferSize is returned for an explicit negative stream
	// read size. Zero selects the default.
	ErrInvalidBufferSize = errors.New("buffer size must not be negative")
)
