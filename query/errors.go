package query

import (
	"errors"
	"fmt"

	"filecabinet/record"
)

var (
	// ErrUnsupportedSyntax is returned by ParseSelect for clauses mixing and/or
	ErrUnsupportedSyntax = errors.New("mixing 'and' with 'or' is not supported")
	// ErrAmbiguousAnd is returned when an AND clause gives one field several literals
	ErrAmbiguousAnd = errors.New("'and' clause gives one field more than one value")
)

// SyntaxError reports a segment that is not of the form field = 'literal'
type SyntaxError struct {
	Segment string
	Reason  string
}

func (e *SyntaxError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("invalid filter: %s", e.Reason)
	}
	return fmt.Sprintf("invalid filter segment '%s': %s", e.Segment, e.Reason)
}

// UnknownFieldError names a segment's unsupported field token
type UnknownFieldError struct {
	Token string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown argument '%s'", e.Token)
}

// LiteralError reports a literal that does not parse for its field
type LiteralError struct {
	Field   record.Field
	Literal string
	Err     error
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *LiteralError) Unwrap() error {
	return e.Err
}
