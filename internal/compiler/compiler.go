package compiler

import (
	"fmt"
	"math"

	"github.com/kolkov/radish/internal/ast"
	"github.com/kolkov/radish/internal/semantic"
	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/types"
)

// ScriptName is the name of the function produced for top-level code.
const ScriptName = "script"

// CompileError represents a compilation error.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}

// Compile transforms a parsed AST into bytecode wrapped in a function
// descriptor named "script" with arity 0. The Body of the result is a
// *Chunk.
//
// Every item is evaluated in order and all but the last result are
// dropped. An empty AST returns nil.
func Compile(tree *ast.AST) (fn *types.Function, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*CompileError); ok {
				err = ce
			} else {
				panic(r) // Re-panic for non-compile errors
			}
		}
	}()

	c := &compiler{
		chunk:   &Chunk{},
		info:    semantic.Analyze(tree),
		numIdxs: make(map[uint64]int),
	}

	end := tree.Span()
	if len(tree.Items) == 0 {
		c.emitConstant(types.Nil(), end)
	}
	for i, item := range tree.Items {
		if i > 0 {
			c.chunk.write(end, Drop)
		}
		c.compileExpr(item)
	}
	c.chunk.write(end, Return)

	return &types.Function{
		Arity: 0,
		Body:  c.chunk,
		Name:  ScriptName,
	}, nil
}

// ChunkOf returns the chunk of a compiled function, or nil.
func ChunkOf(fn *types.Function) *Chunk {
	if fn == nil {
		return nil
	}
	chunk, _ := fn.Body.(*Chunk)
	return chunk
}

// compiler holds the state for compiling a single chunk.
type compiler struct {
	chunk *Chunk

	// Static types for specialization.
	info *semantic.Result

	// Number constants are deduplicated by bit pattern so 0 and -0 stay
	// distinct.
	numIdxs map[uint64]int
}

// panicf aborts compilation with a CompileError.
func panicf(format string, args ...any) {
	panic(&CompileError{Message: fmt.Sprintf(format, args...)})
}

// opcodeInt converts a pool index to an operand word.
func opcodeInt(n int) Opcode {
	if n > math.MaxInt32 {
		panicf("constant pool overflow: %d entries", n)
	}
	return Opcode(n)
}

// constIndex returns the pool index for v, adding it if needed.
func (c *compiler) constIndex(v types.Value) int {
	if v.IsNum() {
		bits := math.Float64bits(v.AsNum())
		if idx, ok := c.numIdxs[bits]; ok {
			return idx
		}
		idx := len(c.chunk.Constants)
		c.numIdxs[bits] = idx
		c.chunk.Constants = append(c.chunk.Constants, v)
		return idx
	}
	c.chunk.Constants = append(c.chunk.Constants, v)
	return len(c.chunk.Constants) - 1
}

func (c *compiler) emitConstant(v types.Value, span token.Span) {
	c.chunk.write(span, Constant, opcodeInt(c.constIndex(v)))
}

// isNum reports whether expr is statically known to be a number.
func (c *compiler) isNum(expr ast.Expr) bool {
	return c.info.TypeOf(expr) == semantic.TypeNumber
}

func (c *compiler) compileExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Kind == ast.LitBool {
			c.emitConstant(types.Bool(e.Bool), e.Span())
		} else {
			c.emitConstant(types.Num(e.Num), e.Span())
		}

	case *ast.ParenExpr:
		c.compileExpr(e.Inner)

	case *ast.UnaryExpr:
		c.compileExpr(e.Operand)
		if c.isNum(e.Operand) {
			c.chunk.write(e.Span(), NegNum)
		} else {
			c.chunk.write(e.Span(), Negate)
		}

	case *ast.BinaryExpr:
		c.compileBinaryExpr(e)

	default:
		panicf("unexpected expression type: %T", expr)
	}
}

func (c *compiler) compileBinaryExpr(e *ast.BinaryExpr) {
	c.compileExpr(e.Left)
	c.compileExpr(e.Right)

	typed := c.isNum(e.Left) && c.isNum(e.Right)
	var op Opcode
	switch e.Op {
	case ast.Add:
		op = pick(typed, AddNum, Add)
	case ast.Subtract:
		op = pick(typed, SubNum, Subtract)
	case ast.Multiply:
		op = pick(typed, MulNum, Multiply)
	case ast.Divide:
		op = pick(typed, DivNum, Divide)
	default:
		panicf("unexpected binary operator: %v", e.Op)
	}
	c.chunk.write(e.Span(), op)
}

func pick(typed bool, num, generic Opcode) Opcode {
	if typed {
		return num
	}
	return generic
}
