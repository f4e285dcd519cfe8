package application

import (
	"errors"
	"fmt"

	"shelfmerge/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNoCollection = errors.New("no collection stored, run collect first")
	ErrAborted      = errors.New("aborted")
	ErrNotFound     = errors.New("not found")

	// ErrInvalidInput marks catalog data that cannot be interpreted
	ErrInvalidInput = domain.ErrInvalidValue
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RowError points at the export line whose data could not be used
type RowError struct {
	Source domain.Source
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
