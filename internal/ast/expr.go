package ast

import (
	"strconv"

	"github.com/kolkov/radish/internal/token"
)

// Op is an arithmetic operator. Unary minus reuses Subtract.
type Op uint8

const (
	Add Op = iota
	Subtract
	Multiply
	Divide
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return "?"
	}
}

// Name returns the operator name, e.g. "Add".
func (op Op) Name() string {
	switch op {
	case Add:
		return "Add"
	case Subtract:
		return "Subtract"
	case Multiply:
		return "Multiply"
	case Divide:
		return "Divide"
	default:
		return "Unknown"
	}
}

// OpFromToken maps an operator token to its Op.
func OpFromToken(t token.Type) (Op, bool) {
	switch t {
	case token.PLUS:
		return Add, true
	case token.MINUS:
		return Subtract, true
	case token.STAR:
		return Multiply, true
	case token.SLASH:
		return Divide, true
	default:
		return 0, false
	}
}

// -----------------------------------------------------------------------------
// Literals
// -----------------------------------------------------------------------------

// LitKind distinguishes the literal variants.
type LitKind uint8

const (
	LitNumber LitKind = iota
	LitBool
)

// Literal is a constant appearing in source.
// Examples: 42, true, false
type Literal struct {
	BaseExpr
	Kind LitKind
	Num  float64 // Valid when Kind == LitNumber
	Bool bool    // Valid when Kind == LitBool
}

// NewNumber returns a number literal.
func NewNumber(n float64, span token.Span) *Literal {
	return &Literal{BaseExpr: MakeBaseExpr(span), Kind: LitNumber, Num: n}
}

// NewBool returns a boolean literal.
func NewBool(b bool, span token.Span) *Literal {
	return &Literal{BaseExpr: MakeBaseExpr(span), Kind: LitBool, Bool: b}
}

// String returns the literal as source text.
func (l *Literal) String() string {
	if l.Kind == LitBool {
		return strconv.FormatBool(l.Bool)
	}
	return strconv.FormatFloat(l.Num, 'f', -1, 64)
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// BinaryExpr represents a binary operation.
// Examples: a + b, 2 * 3
type BinaryExpr struct {
	BaseExpr
	Left  Expr // Left operand
	Op    Op   // Operator
	Right Expr // Right operand
}

// NewBinary builds a binary expression spanning both operands.
func NewBinary(left Expr, op Op, right Expr) *BinaryExpr {
	return &BinaryExpr{
		BaseExpr: MakeBaseExpr(left.Span().Cover(right.Span())),
		Left:     left,
		Op:       op,
		Right:    right,
	}
}

// UnaryExpr represents a prefix operation.
// Example: -x
type UnaryExpr struct {
	BaseExpr
	Op      Op   // Always Subtract today
	Operand Expr // Operand
}

// NewUnary builds a unary expression from the operator token span to the
// end of the operand.
func NewUnary(opSpan token.Span, op Op, operand Expr) *UnaryExpr {
	return &UnaryExpr{
		BaseExpr: MakeBaseExpr(opSpan.Cover(operand.Span())),
		Op:       op,
		Operand:  operand,
	}
}

// ParenExpr represents a parenthesized expression.
// Its span includes both delimiters.
// Example: (a + b)
type ParenExpr struct {
	BaseExpr
	Inner Expr
}

// NewParen builds a grouping expression from the '(' and ')' token spans.
func NewParen(open token.Span, inner Expr, close token.Span) *ParenExpr {
	return &ParenExpr{
		BaseExpr: MakeBaseExpr(open.Cover(close)),
		Inner:    inner,
	}
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*ParenExpr)(nil)
)
