package speech

import "errors"

// Sentinel errors for the speech package.
var (
	// ErrTimeout indicates listening exceeded its bounded wait.
	ErrTimeout = errors.New("speech: listening timed out")

	// ErrClosed indicates the input source was closed.
	ErrClosed = errors.New("speech: input closed")

	// ErrNoPlayer indicates no audio player command was found on PATH.
	ErrNoPlayer = errors.New("speech: no audio player available")
)
