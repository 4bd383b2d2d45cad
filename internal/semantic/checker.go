package semantic

import (
	"github.com/kolkov/radish/internal/ast"
)

// Result holds the outcome of analyzing one AST.
type Result struct {
	// Types records the inferred type of every expression node.
	Types    map[ast.Expr]Type
	Errors   ErrorList
	Warnings WarningList
}

// TypeOf returns the inferred type of expr, or TypeUnknown.
func (r *Result) TypeOf(expr ast.Expr) Type {
	return r.Types[expr]
}

// Checker infers static types bottom-up and validates operator operands.
// It implements ast.Visitor[Type].
type Checker struct {
	result *Result
}

var _ ast.Visitor[Type] = (*Checker)(nil)

// Analyze runs the checker over tree and returns the full result.
func Analyze(tree *ast.AST) *Result {
	c := &Checker{
		result: &Result{Types: make(map[ast.Expr]Type)},
	}
	for _, item := range tree.Items {
		c.checkExpr(item)
	}
	return c.result
}

// Check validates tree and returns its errors, or nil.
func Check(tree *ast.AST) ErrorList {
	r := Analyze(tree)
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

// checkExpr infers the type of expr through the visitor methods and
// records it.
func (c *Checker) checkExpr(expr ast.Expr) Type {
	t := ast.Accept[Type](expr, c)
	c.result.Types[expr] = t
	return t
}

// VisitLiteral types a literal by its kind.
func (c *Checker) VisitLiteral(e *ast.Literal) Type {
	if e.Kind == ast.LitBool {
		return TypeBoolean
	}
	return TypeNumber
}

// VisitParenExpr passes the inner type through.
func (c *Checker) VisitParenExpr(e *ast.ParenExpr) Type {
	return c.checkExpr(e.Inner)
}

// VisitUnaryExpr requires a number operand for negation.
func (c *Checker) VisitUnaryExpr(e *ast.UnaryExpr) Type {
	operand := c.checkExpr(e.Operand)
	switch operand {
	case TypeUnknown:
		return TypeUnknown
	case TypeNumber:
		return TypeNumber
	default:
		c.result.Errors.Add(e.Span(), errNegOperand, operand)
		return TypeUnknown
	}
}

// VisitBinaryExpr checks both operands against the operator.
func (c *Checker) VisitBinaryExpr(e *ast.BinaryExpr) Type {
	return c.checkBinary(e)
}

func (c *Checker) checkBinary(e *ast.BinaryExpr) Type {
	left := c.checkExpr(e.Left)
	right := c.checkExpr(e.Right)

	// Do not cascade: an unknown side was already reported.
	if left == TypeUnknown || right == TypeUnknown {
		return TypeUnknown
	}

	if e.Op == ast.Add {
		if left == right && (left == TypeNumber || left == TypeString) {
			return left
		}
		c.result.Errors.Add(e.Span(), errAddOperands, left, right)
		return TypeUnknown
	}

	if left != TypeNumber || right != TypeNumber {
		c.result.Errors.Add(e.Span(), errArithOperands, e.Op, left, right)
		return TypeUnknown
	}

	if e.Op == ast.Divide && isZero(e.Right) {
		c.result.Warnings.Add(e.Span(), warnDivByZero)
	}
	return TypeNumber
}

// isZero reports whether expr is a literal zero, possibly parenthesized or negated.
func isZero(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Kind == ast.LitNumber && e.Num == 0
	case *ast.ParenExpr:
		return isZero(e.Inner)
	case *ast.UnaryExpr:
		return isZero(e.Operand)
	}
	return false
}
