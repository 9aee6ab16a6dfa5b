package services

import (
	"errors"
	"fmt"
)

// ErrFormat matches any FormatError via errors.Is.
var ErrFormat = errors.New("input is not a JSON array")

// FormatError means the top-level input could not be read as a JSON array.
// It is terminal for a Load call: no records are returned.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("format error: %s", e.Reason)
	}
	return fmt.Sprintf("format error: %s: %v", e.Reason, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// RecordParseError describes why a single array element was dropped.
type RecordParseError struct {
	Index int
	Field string
	Err   error
}

func (e *RecordParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *RecordParseError) Unwrap() error { return e.Err }

// DateParseError is raised while matching when a record's start date is not
// a calendar date. The record is excluded from that query only.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

var (
	errMissing     = errors.New("missing required value")
	errNotInteger  = errors.New("not an integer")
	errOutOfRange  = errors.New("value out of range")
	errNotAnObject = errors.New("array element is not a JSON object")
)
