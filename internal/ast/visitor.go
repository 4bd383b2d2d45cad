package ast

// Visitor defines the generic visitor pattern for AST traversal.
// Type parameter T is the return type of visit methods.
//
// Example usage for code generation:
//
//	type CodeGen struct{ code []Instruction }
//	func (cg *CodeGen) VisitLiteral(n *Literal) error {
//	    cg.code = append(cg.code, PushConst(n))
//	    return nil
//	}
type Visitor[T any] interface {
	VisitLiteral(*Literal) T
	VisitBinaryExpr(*BinaryExpr) T
	VisitUnaryExpr(*UnaryExpr) T
	VisitParenExpr(*ParenExpr) T
}

// Accept dispatches to the appropriate visitor method based on node type.
//
// Example:
//
//	typ := ast.Accept[semantic.Type](expr, checker)
func Accept[T any](e Expr, v Visitor[T]) T {
	switch n := e.(type) {
	case *Literal:
		return v.VisitLiteral(n)
	case *BinaryExpr:
		return v.VisitBinaryExpr(n)
	case *UnaryExpr:
		return v.VisitUnaryExpr(n)
	case *ParenExpr:
		return v.VisitParenExpr(n)
	default:
		var zero T
		return zero
	}
}

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: count all literals
//
//	count := 0
//	ast.Walk(tree, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Literal); ok {
//	        count++
//	    }
//	    return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *AST:
		for _, item := range n.Items {
			Walk(item, fn)
		}
	case *Literal:
		// no children
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryExpr:
		Walk(n.Operand, fn)
	case *ParenExpr:
		Walk(n.Inner, fn)
	}
}
