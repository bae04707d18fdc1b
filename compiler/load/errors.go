package load

import (
	"errors"
	"strconv"
	"strings"
)

// ErrParse indicates the diagram document could not be read or decoded.
var ErrParse = errors.New("umlgen: diagram parse failed")

// ParseError describes a diagram that could not be read or decoded.
type ParseError struct {
	File    string
	Line    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("umlgen: parse error")
	if e.File != "" {
		b.WriteString(" in ")
		b.WriteString(e.File)
	}
	if e.Line > 0 {
		b.WriteString(" at line ")
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError.
func NewParseError(file string, line int, message string, cause error) *ParseError {
	return &ParseError{
		File:    file,
		Line:    line,
		Message: message,
		Cause:   cause,
	}
}

// IsParseError reports whether the error is a ParseError.
func IsParseError(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr)
}
