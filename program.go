package radish

import (
	"strings"

	"github.com/kolkov/radish/internal/ast"
	"github.com/kolkov/radish/internal/compiler"
	"github.com/kolkov/radish/internal/types"
	"github.com/kolkov/radish/internal/vm"
)

// Program represents a compiled radish expression ready for evaluation.
type Program struct {
	fn       *types.Function
	tree     *ast.AST
	source   string // Original source for debugging
	config   Config
	warnings []string
}

// Run evaluates the program and returns its value.
// Operator errors are returned as *RuntimeError.
func (p *Program) Run() (Value, error) {
	v := vm.New(vm.Config{
		Logger: p.config.Logger,
		Trace:  p.config.Trace,
	})
	result, err := v.Run(p.fn)
	if err != nil {
		return Value{}, newRuntimeError(err)
	}
	return result, nil
}

// Disassemble returns a human-readable representation of the compiled bytecode.
func (p *Program) Disassemble() string {
	return compiler.ChunkOf(p.fn).Disassemble(p.fn.Name)
}

// AST returns the fully parenthesized form of the parsed expression.
func (p *Program) AST() string {
	return strings.TrimSuffix(ast.String(p.tree), "\n")
}

// DumpAST returns an indented tree of the parsed expression with the
// grapheme span of every node.
func (p *Program) DumpAST() string {
	var sb strings.Builder
	_ = ast.NewPrinter(&sb).Dump(p.tree)
	return sb.String()
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}

// Warnings returns static analysis warnings, such as constant division by
// zero. They never prevent compilation.
func (p *Program) Warnings() []string {
	return p.warnings
}
