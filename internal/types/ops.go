package types

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

// ErrOperandType is matched by every operator error via errors.Is.
var ErrOperandType = errors.New("operand type mismatch")

// OperandError reports an operator applied outside its domain.
// It aborts the current evaluation but never the process.
type OperandError struct {
	Op      string // Operator symbol, e.g. "+"
	Left    Kind   // Kind of the left (or only) operand
	Right   Kind   // Kind of the right operand; KindNil for unary operators
	Unary   bool
	Message string
}

// Error returns the message followed by the offending kinds.
func (e *OperandError) Error() string {
	if e.Unary {
		return fmt.Sprintf("%s (got %s)", e.Message, e.Left)
	}
	return fmt.Sprintf("%s (got %s and %s)", e.Message, e.Left, e.Right)
}

// Is makes errors.Is(err, ErrOperandType) succeed.
func (e *OperandError) Is(target error) bool {
	return target == ErrOperandType
}

func binaryError(op string, a, b Value, msg string) error {
	return &OperandError{Op: op, Left: a.kind, Right: b.kind, Message: msg}
}

func unaryError(op string, v Value, msg string) error {
	return &OperandError{Op: op, Left: v.kind, Unary: true, Message: msg}
}

// Arithmetic

// Add adds two numbers, or appends the right string onto the left buffer.
// For strings the result aliases the left operand's buffer, which is
// mutated in place.
func Add(a, b Value) (Value, error) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		return Num(a.num + b.num), nil
	case a.kind == KindString && b.kind == KindString:
		a.str.Append(b.str.Text())
		return a, nil
	}
	return Value{}, binaryError("+", a, b, "operands must be two numbers or two strings")
}

// Sub subtracts two numbers.
func Sub(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Value{}, binaryError("-", a, b, "operands must be numbers")
	}
	return Num(a.num - b.num), nil
}

// Mul multiplies two numbers.
func Mul(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Value{}, binaryError("*", a, b, "operands must be numbers")
	}
	return Num(a.num * b.num), nil
}

// Div divides two numbers. Division by zero yields an IEEE infinity or NaN.
func Div(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Value{}, binaryError("/", a, b, "operands must be numbers")
	}
	return Num(a.num / b.num), nil
}

// Neg negates a number.
func Neg(v Value) (Value, error) {
	if v.kind != KindNumber {
		return Value{}, unaryError("-", v, "operand must be a number")
	}
	return Num(-v.num), nil
}

// Not inverts a boolean.
func Not(v Value) (Value, error) {
	if v.kind != KindBoolean {
		return Value{}, unaryError("!", v, "operand must be a boolean")
	}
	return Bool(!v.b), nil
}

// Comparison

// Equal reports whether a and b are equal. Values of different kinds are
// never equal. Strings compare by content, functions by name.
func Equal(a, b Value) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

// Compare orders two values of the same kind, returning -1, 0 or +1.
// ok is false when the kinds differ or a number is NaN.
// false orders before true.
func Compare(a, b Value) (c int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindNil:
		return 0, true
	case KindNumber:
		if math.IsNaN(a.num) || math.IsNaN(b.num) {
			return 0, false
		}
		return cmp.Compare(a.num, b.num), true
	case KindBoolean:
		switch {
		case a.b == b.b:
			return 0, true
		case b.b:
			return -1, true
		default:
			return 1, true
		}
	case KindString:
		if a.str == b.str {
			return 0, true
		}
		return cmp.Compare(a.str.Text(), b.str.Text()), true
	case KindFunction:
		return cmp.Compare(a.fn.Name, b.fn.Name), true
	}
	return 0, false
}
