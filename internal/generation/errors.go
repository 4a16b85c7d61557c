package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when the language model call fails for any reason
	ErrGenerationFailed = errors.New("failed to generate example sentence")

	// ErrInvalidResponse is returned when the language model reply does not have the expected shape
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when a generator or completer configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// InvalidResponseShapeError reports a reply that did not contain exactly
// one sentence line and one translation line.
type InvalidResponseShapeError struct {
	LineCount int
}

func (e *InvalidResponseShapeError) Error() string {
	return fmt.Sprintf("%s: expected %d non-empty lines, got %d lines", ErrInvalidResponse, expectedLines, e.LineCount)
}

// Is makes the error match ErrInvalidResponse.
func (e *InvalidResponseShapeError) Is(target error) bool {
	return target == ErrInvalidResponse
}
