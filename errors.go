package radish

import (
	"errors"
	"fmt"

	"github.com/kolkov/radish/internal/parser"
	"github.com/kolkov/radish/internal/semantic"
	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/vm"
)

// Diagnostic is one located message inside a ParseError or CompileError.
type Diagnostic struct {
	Kind    string // "lexical error", "syntax error" or "type error"
	Line    int    // 1-based line number
	Column  int    // 1-based column, counted in graphemes
	Start   int    // Grapheme index where the offending text starts
	End     int    // Grapheme index just past the offending text
	Message string // Error description
}

func makeDiagnostic(kind string, span token.Span, msg string) Diagnostic {
	pos := span.Pos()
	return Diagnostic{
		Kind:    kind,
		Line:    pos.Line,
		Column:  pos.Column,
		Start:   span.Start,
		End:     span.End,
		Message: msg,
	}
}

// ParseError represents lexical or syntax errors in radish source.
// Line, Column and Message describe the first diagnostic.
type ParseError struct {
	Line        int    // 1-based line number
	Column      int    // 1-based column number
	Message     string // Error description
	Diagnostics []Diagnostic

	err error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	if n := len(e.Diagnostics); n > 1 {
		msg += fmt.Sprintf(" (and %d more errors)", n-1)
	}
	return msg
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.err
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Message: err.Error(), err: err}
	var list parser.ErrorList
	if !errors.As(err, &list) || len(list) == 0 {
		return pe
	}
	for _, e := range list {
		pe.Diagnostics = append(pe.Diagnostics, makeDiagnostic(e.Kind.String(), e.Span, e.Message))
	}
	first := pe.Diagnostics[0]
	pe.Line, pe.Column, pe.Message = first.Line, first.Column, first.Message
	return pe
}

// CompileError represents a static error found before execution.
type CompileError struct {
	Line        int    // 1-based line number (0 if unknown)
	Column      int    // 1-based column number (0 if unknown)
	Message     string // Error description
	Diagnostics []Diagnostic

	err error
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("compile error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("compile error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.err
}

func newCompileError(errs semantic.ErrorList) *CompileError {
	ce := &CompileError{err: errs}
	for _, e := range errs {
		ce.Diagnostics = append(ce.Diagnostics, makeDiagnostic("type error", e.Span, e.Message))
	}
	first := ce.Diagnostics[0]
	ce.Line, ce.Column, ce.Message = first.Line, first.Column, first.Message
	return ce
}

// RuntimeError represents an error during evaluation.
// Start and End delimit the failing operation in graphemes.
type RuntimeError struct {
	Line    int    // 1-based line number (0 if unknown)
	Column  int    // 1-based column number (0 if unknown)
	Start   int    // Grapheme index where the failing expression starts
	End     int    // Grapheme index just past the failing expression
	Message string // Error description

	err error
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// Unwrap returns the underlying VM error.
func (e *RuntimeError) Unwrap() error {
	return e.err
}

func newRuntimeError(err error) *RuntimeError {
	re := &RuntimeError{Message: err.Error(), err: err}
	var verr *vm.RuntimeError
	if errors.As(err, &verr) {
		re.Message = verr.Message
		if verr.Span.Src != nil {
			pos := verr.Span.Pos()
			re.Line, re.Column = pos.Line, pos.Column
			re.Start, re.End = verr.Span.Start, verr.Span.End
		}
	}
	return re
}
