package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer provides pretty-printing for AST nodes.
// It outputs a human-readable representation suitable for debugging.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the node as fully parenthesized source text, one line per
// top-level item. Grouping is made explicit, so "1 + 2 - 3" prints as
// "((1 + 2) - 3)".
func (p *Printer) Print(node Node) error {
	switch n := node.(type) {
	case *AST:
		for _, item := range n.Items {
			p.printExpr(item)
			p.printf("\n")
		}
	case Expr:
		p.printExpr(n)
	case nil:
		p.printf("<nil>")
	default:
		p.printf("<%T>", node)
	}
	return p.err
}

// Dump writes an indented tree of the node with the span of every node.
func (p *Printer) Dump(node Node) error {
	p.dumpNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, strings.Repeat("    ", p.indent))
}

func (p *Printer) printExpr(e Expr) {
	switch n := e.(type) {
	case *Literal:
		p.printf("%s", n)
	case *BinaryExpr:
		p.printf("(")
		p.printExpr(n.Left)
		p.printf(" %s ", n.Op)
		p.printExpr(n.Right)
		p.printf(")")
	case *UnaryExpr:
		p.printf("(%s", n.Op)
		p.printExpr(n.Operand)
		p.printf(")")
	case *ParenExpr:
		// Grouping is already explicit in the output.
		p.printExpr(n.Inner)
	case nil:
		p.printf("<nil>")
	default:
		p.printf("<%T>", e)
	}
}

func (p *Printer) dumpNode(node Node) {
	p.writeIndent()
	switch n := node.(type) {
	case *AST:
		p.printf("AST %s\n", n.Span())
		p.indent++
		for _, item := range n.Items {
			p.dumpNode(item)
		}
		p.indent--
	case *Literal:
		p.printf("Literal %s %s\n", n, n.Span())
	case *BinaryExpr:
		p.printf("BinaryExpr %s %s\n", n.Op.Name(), n.Span())
		p.indent++
		p.dumpNode(n.Left)
		p.dumpNode(n.Right)
		p.indent--
	case *UnaryExpr:
		p.printf("UnaryExpr %s %s\n", n.Op.Name(), n.Span())
		p.indent++
		p.dumpNode(n.Operand)
		p.indent--
	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.Span())
		p.indent++
		p.dumpNode(n.Inner)
		p.indent--
	default:
		p.printf("<%T>\n", node)
	}
}

// String returns the parenthesized form of node, as printed by Print.
func String(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}
