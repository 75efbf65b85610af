package analytics

import "errors"

// Engine error kinds. Leaf operations fail fast with one of these; callers
// match with errors.Is. All are recoverable by adjusting input or
// configuration — nothing here is fatal.
var (
	// ErrFeatureDisabled indicates the governing configuration flag is false.
	ErrFeatureDisabled = errors.New("feature disabled")

	// ErrEmptyInput indicates a required series has zero elements.
	ErrEmptyInput = errors.New("empty input series")

	// ErrInsufficientData indicates a series is shorter than the operation's
	// minimum length.
	ErrInsufficientData = errors.New("insufficient data points")

	// ErrInvalidInput indicates mismatched series lengths or another shape
	// violation.
	ErrInvalidInput = errors.New("invalid input")
)
