// Package semantic provides static analysis for radish expressions.
//
// The analyzer performs:
//   - Type inference: a static type for every expression node
//   - Operand validation: operators applied outside their domain
//   - Warnings: constant division by zero
//
// Radish values are dynamically typed, so the check is optional. The
// runtime reports the same operand errors when it is skipped.
package semantic

import (
	"fmt"
	"strings"

	"github.com/kolkov/radish/internal/token"
)

// Error represents a semantic analysis error with source location.
type Error struct {
	Span    token.Span
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Pos(), e.Message)
}

// Warning represents a semantic warning (non-fatal issue).
type Warning struct {
	Span    token.Span
	Message string
}

// String returns the warning as a formatted string.
func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Span.Pos(), w.Message)
}

// ErrorList is a collection of semantic errors.
type ErrorList []*Error

// Add appends an error to the list.
func (el *ErrorList) Add(span token.Span, format string, args ...any) {
	*el = append(*el, &Error{
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

// Err returns an error if the list is non-empty, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Error implements the error interface for ErrorList.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		var sb strings.Builder
		sb.WriteString(el[0].Error())
		for _, e := range el[1:] {
			sb.WriteByte('\n')
			sb.WriteString(e.Error())
		}
		return sb.String()
	}
}

// WarningList is a collection of semantic warnings.
type WarningList []*Warning

// Add appends a warning to the list.
func (wl *WarningList) Add(span token.Span, format string, args ...any) {
	*wl = append(*wl, &Warning{
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

// Common error messages as constants for consistency.
const (
	errAddOperands   = "operands of '+' must be two numbers or two strings, got %s and %s"
	errArithOperands = "operands of '%s' must be numbers, got %s and %s"
	errNegOperand    = "operand of unary '-' must be a number, got %s"
)

// Common warning messages.
const (
	warnDivByZero = "division by constant zero"
)
