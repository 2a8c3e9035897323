package entry

import (
	"errors"
	"fmt"
)

// Parse failures. Every error returned by Parse wraps exactly one of these.
var (
	ErrNoMagicNumber       = errors.New("entry files must begin with the format header line")
	ErrEmptyLabel          = errors.New("entries must contain a nonempty first line")
	ErrMissingNewline      = errors.New("newlines are required after the label and observations in an entry")
	ErrExpectedObservation = errors.New("there must be a blank line between the entry header and any notes")
	ErrMissingTimestamp    = errors.New("an event was found, but it was missing a <timestamp>")
	ErrMalformedTimestamp  = errors.New("the timestamp for this event was in an unexpected format")
)

// ErrInvalidIndex indicates a task index outside the entry's task list.
var ErrInvalidIndex = errors.New("task index out of range")

// ParseError records where parsing stopped.
type ParseError struct {
	Line int // 1-based
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Err
}
