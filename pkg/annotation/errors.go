package annotation

import (
	"errors"
	"fmt"
)

// Sentinel causes of a structural parse failure.
var (
	// ErrUnexpected indicates a literal character was required but absent.
	ErrUnexpected = errors.New("unexpected character")

	// ErrUnclosed indicates the input ended before a block was closed.
	ErrUnclosed = errors.New("unclosed block")

	// ErrEmptyList indicates a one-or-more list matched nothing.
	ErrEmptyList = errors.New("need at least one item in list")

	// ErrUnderIndented indicates a definition body is indented less than
	// its opening bracket.
	ErrUnderIndented = errors.New("definition body is less indented than its opening bracket")
)

// ParseError is a structural failure at a position in the source.
// It means "no match here": the host tries its next production.
type ParseError struct {
	// Pos is the byte offset where the failure was detected.
	Pos int

	// Err is one of the sentinel causes above.
	Err error

	// Msg is an optional human-readable detail.
	Msg string
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("offset %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("offset %d: %s", e.Pos, e.Msg)
}

// Unwrap returns the sentinel cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func fail(pos int, cause error, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Err: cause, Msg: fmt.Sprintf(format, args...)}
}
