// Package ast defines the abstract syntax tree for radish expressions.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── Literal - number and boolean constants
//	│   ├── BinaryExpr, UnaryExpr - operations
//	│   └── ParenExpr - explicit grouping
//	└── AST - the ordered list of top-level expressions
//
// Every node carries a token.Span. Composite spans are always computed from
// their parts: a binary expression spans [left.Start, right.End), a unary
// expression spans [operator.Start, operand.End), and a parenthesized
// expression spans both parentheses.
package ast

import "github.com/kolkov/radish/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Span returns the grapheme range of source text the node covers.
	Span() token.Span
}

// Expr is the interface for all expression nodes.
// The set of implementations is closed.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// BaseExpr provides the span shared by all expression nodes.
type BaseExpr struct {
	Extent token.Span
}

func (b *BaseExpr) Span() token.Span { return b.Extent }
func (b *BaseExpr) exprNode()        {}

// MakeBaseExpr creates a BaseExpr covering span.
func MakeBaseExpr(span token.Span) BaseExpr {
	return BaseExpr{Extent: span}
}
