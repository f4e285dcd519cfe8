package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidValue marks a field value that cannot be interpreted
var ErrInvalidValue = errors.New("invalid value")

// ValueError describes a field value from one source that failed to parse
type ValueError struct {
	Field  Field
	Source Source
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s from %s: cannot interpret %q: %v", e.Field, e.Source, e.Value, e.Err)
}

func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
