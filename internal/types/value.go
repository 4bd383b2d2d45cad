// Package types defines runtime value types for radish.
package types

import (
	"math"
	"strconv"
	"sync"
)

// Kind represents the variant of a radish value.
type Kind uint8

const (
	KindNil      Kind = iota // Absence of a value
	KindNumber               // 64-bit float
	KindBoolean              // true or false
	KindString               // Shared, mutable text buffer
	KindFunction             // Callable descriptor
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value represents a radish runtime value.
// Uses tagged union pattern: kind selects which payload field is live.
// Values are passed by value; String and Function payloads are pointers,
// so copying a Value aliases them.
type Value struct {
	kind Kind
	num  float64
	b    bool
	str  *String
	fn   *Function
}

// Constructors

// Nil returns the nil value. It is also the zero Value.
func Nil() Value {
	return Value{}
}

// Num creates a numeric value.
func Num(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// Str creates a string value holding a fresh buffer with text s.
func Str(s string) Value {
	return Value{kind: KindString, str: NewString(s)}
}

// StrOf wraps an existing buffer. The result aliases buf.
func StrOf(buf *String) Value {
	return Value{kind: KindString, str: buf}
}

// Func creates a function value. The descriptor is shared, not copied.
func Func(fn *Function) Value {
	return Value{kind: KindFunction, fn: fn}
}

// Accessors

// Kind returns the value's variant.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil returns true if the value is nil.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// IsNum returns true if the value is a number.
func (v Value) IsNum() bool {
	return v.kind == KindNumber
}

// IsBool returns true if the value is a boolean.
func (v Value) IsBool() bool {
	return v.kind == KindBoolean
}

// IsStr returns true if the value is a string.
func (v Value) IsStr() bool {
	return v.kind == KindString
}

// IsFunc returns true if the value is a function.
func (v Value) IsFunc() bool {
	return v.kind == KindFunction
}

// AsNum returns the number payload, or 0 for other kinds.
func (v Value) AsNum() float64 {
	return v.num
}

// AsBool returns the boolean payload, or false for other kinds.
func (v Value) AsBool() bool {
	return v.b
}

// AsStr returns the shared buffer, or nil for other kinds.
func (v Value) AsStr() *String {
	return v.str
}

// AsFunc returns the function descriptor, or nil for other kinds.
func (v Value) AsFunc() *Function {
	return v.fn
}

// String returns the display form of the value:
// numbers in shortest decimal form, strings quoted, functions as <fun NAME>.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNum(v.num)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindString:
		return `"` + v.str.Text() + `"`
	case KindFunction:
		return "<fun " + v.fn.Name + ">"
	default:
		return "nil"
	}
}

// FormatNum formats a number for display.
// Integral values print without a fraction, infinities as "inf"/"-inf".
func FormatNum(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// String is a mutable text buffer shared by every Value that refers to it.
// Appending through one alias is visible through all of them.
type String struct {
	mu   sync.Mutex
	text []byte
}

// NewString returns a buffer holding s.
func NewString(s string) *String {
	return &String{text: []byte(s)}
}

// Text returns a snapshot of the buffer contents.
func (s *String) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.text)
}

// Len returns the length of the buffer in bytes.
func (s *String) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.text)
}

// Append appends text to the buffer in place.
func (s *String) Append(text string) {
	s.mu.Lock()
	s.text = append(s.text, text...)
	s.mu.Unlock()
}

// Function describes a callable unit. Body holds the compiled code; it is
// opaque to this package. Two functions are equal when their names are.
type Function struct {
	Arity uint8
	Body  any
	Name  string
}
