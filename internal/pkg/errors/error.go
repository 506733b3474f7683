package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrMalformedSource   = errors.New("malformed source")
	ErrUnsupportedSource = errors.New("unsupported source format")
	ErrLoadInProgress    = errors.New("a load is already in progress")

	// Session
	ErrNoDataset   = errors.New("no data loaded")
	ErrNoSelection = errors.New("no customer selected")

	// Assistant
	ErrAssistantDisabled = errors.New("assistant is not configured")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")). A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
