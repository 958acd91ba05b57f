package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrScriptNotFound = fmt.Errorf("%w: script file", ErrNotFound)

	// Validation errors
	ErrEmptyScript     = errors.New("script content is empty")
	ErrInvalidFDRLevel = errors.New("FDR level must be in (0, 1]")
	ErrNoRules         = errors.New("rule set is empty")

	// Surgery errors
	ErrNoEdits     = errors.New("surgery plan has no edits")
	ErrWriteDenied = errors.New("write-back requires explicit opt-in")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Error constructors with context
func NewScriptNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrScriptNotFound, path)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
