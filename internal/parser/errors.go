// Package parser provides a recursive descent parser for radish expressions.
package parser

import (
	"errors"
	"fmt"

	"github.com/kolkov/radish/internal/token"
)

// ErrorKind classifies a parse diagnostic.
type ErrorKind uint8

const (
	// LexicalError is an unrecognized grapheme reported by the lexer.
	// It does not stop scanning.
	LexicalError ErrorKind = iota
	// SyntaxError is an unexpected or missing token. It aborts the parse.
	SyntaxError
)

// String returns "lexical error" or "syntax error".
func (k ErrorKind) String() string {
	if k == LexicalError {
		return "lexical error"
	}
	return "syntax error"
}

// ParseError represents a diagnostic encountered during parsing.
// It implements the error interface and carries the offending span.
type ParseError struct {
	Kind    ErrorKind  // Lexical or syntax
	Span    token.Span // Source range the error refers to
	Message string     // Human-readable error message
	Got     string     // Token/value that was found (optional)
	Want    string     // Token/value that was expected (optional)
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Span.Src != nil {
		return fmt.Sprintf("%s: %s", e.Span.Pos(), e.Message)
	}
	return e.Message
}

// Unwrap returns nil as ParseError doesn't wrap other errors.
func (e *ParseError) Unwrap() error {
	return nil
}

// ErrorList is a list of parse errors in the order they were found.
type ErrorList []*ParseError

// Error returns a combined error message for all errors.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(kind ErrorKind, span token.Span, msg string) {
	*el = append(*el, &ParseError{Kind: kind, Span: span, Message: msg})
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// errorf creates a syntax ParseError at the given span with formatted message.
func errorf(span token.Span, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    SyntaxError,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}

// expectedError creates a ParseError for a missing expected token.
func expectedError(span token.Span, want string, got string) *ParseError {
	return &ParseError{
		Kind:    SyntaxError,
		Span:    span,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
		Want:    want,
		Got:     got,
	}
}

// IsIncomplete reports whether err is a single syntax error located at the
// end of input, as produced by "(1 + 2" or "1 +". More input could fix it.
func IsIncomplete(err error) bool {
	var list ErrorList
	if !errors.As(err, &list) || len(list) != 1 {
		return false
	}
	e := list[0]
	return e.Kind == SyntaxError && e.Span.Src != nil && e.Span.Start == e.Span.Src.Len()
}
