package schema

import "errors"

// Alignment failure taxonomy. All of these are fatal for the alignment
// request; none are retried internally. Call sites wrap them with context
// via fmt.Errorf and %w, so callers should test with errors.Is.
var (
	// ErrEmptyOverlap means the two series share no time range.
	ErrEmptyOverlap = errors.New("series have no overlapping time range")

	// ErrUnknownStrategy means the configured strategy matches none of the
	// supported alignment strategies.
	ErrUnknownStrategy = errors.New("unknown alignment strategy")

	// ErrInvalidParameter means a strategy parameter is out of range.
	ErrInvalidParameter = errors.New("invalid strategy parameter")

	// ErrInvalidWindowSize means the window does not fit the available rows.
	ErrInvalidWindowSize = errors.New("invalid window size")

	// ErrPersistence means a checkpoint could not be written or read.
	// Callers may retry with a different checkpoint path.
	ErrPersistence = errors.New("checkpoint persistence failure")
)
