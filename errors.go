package concurrentcube

import (
	"errors"
	"fmt"
)

// Sentinel errors for the concurrentcube package.
var (
	// ErrCancelled reports that a request was cancelled before its rotation
	// or snapshot ran. The error returned also wraps the context error.
	ErrCancelled = errors.New("concurrentcube: operation cancelled")

	// Parsing errors
	ErrInvalidNotation = errors.New("concurrentcube: invalid move notation")
)

func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
