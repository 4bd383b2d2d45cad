package compiler

import (
	"strings"
	"testing"

	"github.com/kolkov/radish/internal/ast"
	"github.com/kolkov/radish/internal/parser"
	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/types"
)

// compileSource parses and compiles source, failing the test on error.
func compileSource(t *testing.T, source string) *Chunk {
	t.Helper()
	tree, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	fn, err := Compile(tree)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if fn.Name != ScriptName || fn.Arity != 0 {
		t.Errorf("function = %s/%d, want %s/0", fn.Name, fn.Arity, ScriptName)
	}
	chunk := ChunkOf(fn)
	if chunk == nil {
		t.Fatal("function body is not a *Chunk")
	}
	if len(chunk.Spans) != len(chunk.Code) {
		t.Fatalf("spans = %d, code = %d; want equal", len(chunk.Spans), len(chunk.Code))
	}
	return chunk
}

// opsOf returns the opcodes of chunk with operands stripped.
func opsOf(chunk *Chunk) []Opcode {
	var ops []Opcode
	for i := 0; i < len(chunk.Code); i++ {
		ops = append(ops, chunk.Code[i])
		i += chunk.Code[i].Operands()
	}
	return ops
}

func opsString(ops []Opcode) string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return strings.Join(names, " ")
}

func TestCompileLiterals(t *testing.T) {
	chunk := compileSource(t, "42")
	if got := opsString(opsOf(chunk)); got != "Constant Return" {
		t.Errorf("ops = %s", got)
	}
	if len(chunk.Constants) != 1 || !types.Equal(chunk.Constants[0], types.Num(42)) {
		t.Errorf("constants = %v, want [42]", chunk.Constants)
	}

	chunk = compileSource(t, "true")
	if !types.Equal(chunk.Constants[0], types.Bool(true)) {
		t.Errorf("constants = %v, want [true]", chunk.Constants)
	}
}

func TestCompileArithmetic(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2", "Constant Constant AddNum Return"},
		{"1 - 2", "Constant Constant SubNum Return"},
		{"1 * 2", "Constant Constant MulNum Return"},
		{"1 / 2", "Constant Constant DivNum Return"},
		{"-1", "Constant NegNum Return"},
		{"(1 + 2) * 3", "Constant Constant AddNum Constant MulNum Return"},
		{"1 + 2 * 3", "Constant Constant Constant MulNum AddNum Return"},
		// Operand types are not provably numeric: generic opcodes.
		{"1 + true", "Constant Constant Add Return"},
		{"-true", "Constant Negate Return"},
		{"(1 + true) * 2", "Constant Constant Add Constant Multiply Return"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			chunk := compileSource(t, tt.source)
			if got := opsString(opsOf(chunk)); got != tt.want {
				t.Errorf("ops = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompileDedupesNumbers(t *testing.T) {
	chunk := compileSource(t, "1 + 1 + 2")
	if len(chunk.Constants) != 2 {
		t.Errorf("constants = %v, want 2 entries", chunk.Constants)
	}
}

func TestCompileSpans(t *testing.T) {
	chunk := compileSource(t, "1 + true")
	// Code: Constant 0, Constant 1, Add, Return
	add := 4
	if chunk.Code[add] != Add {
		t.Fatalf("Code[%d] = %v, want Add", add, chunk.Code[add])
	}
	if sp := chunk.SpanAt(add); sp.Start != 0 || sp.End != 8 {
		t.Errorf("Add span = %s, want 0..8", sp)
	}
	if sp := chunk.SpanAt(2); sp.Start != 4 || sp.End != 8 {
		t.Errorf("second Constant span = %s, want 4..8", sp)
	}
	if sp := chunk.SpanAt(100); sp.Src != nil {
		t.Errorf("SpanAt out of range = %s, want zero span", sp)
	}
}

func TestCompileMultipleItems(t *testing.T) {
	src := token.NewSource("", "1 2")
	tree := ast.New(src,
		ast.NewNumber(1, token.NewSpan(src, 0, 1)),
		ast.NewNumber(2, token.NewSpan(src, 2, 3)),
	)
	fn, err := Compile(tree)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := opsString(opsOf(ChunkOf(fn))); got != "Constant Drop Constant Return" {
		t.Errorf("ops = %s", got)
	}
}

func TestCompileEmpty(t *testing.T) {
	tree := ast.New(token.NewSource("", ""))
	fn, err := Compile(tree)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	chunk := ChunkOf(fn)
	if got := opsString(opsOf(chunk)); got != "Constant Return" {
		t.Errorf("ops = %s", got)
	}
	if !chunk.Constants[0].IsNil() {
		t.Errorf("constant = %v, want nil", chunk.Constants[0])
	}
}

// badExpr is an expression the compiler does not know.
type badExpr struct{ ast.BaseExpr }

func TestCompileUnknownNode(t *testing.T) {
	src := token.NewSource("", "x")
	tree := ast.New(src, &badExpr{ast.MakeBaseExpr(token.NewSpan(src, 0, 1))})
	_, err := Compile(tree)
	if err == nil {
		t.Fatal("Compile() succeeded, want error")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Errorf("error type = %T, want *CompileError", err)
	}
}

func TestDisassemble(t *testing.T) {
	chunk := compileSource(t, "1 + 2")
	out := chunk.Disassemble("script")
	for _, want := range []string{
		"=== Constants ===",
		"[0] 1",
		"[1] 2",
		"=== script ===",
		"0000: Constant",
		"[0] = 1",
		"AddNum",
		"; 0..5",
		"Return",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Disassemble() missing %q:\n%s", want, out)
		}
	}
}

func TestOpcodeString(t *testing.T) {
	if Constant.String() != "Constant" || NegNum.String() != "NegNum" {
		t.Error("opcode names wrong")
	}
	if got := Opcode(77).String(); got != "Opcode(77)" {
		t.Errorf("Opcode(77).String() = %q", got)
	}
	if !AddNum.IsBinary() || Negate.IsBinary() || !Not.IsUnary() || Return.IsUnary() {
		t.Error("opcode classification wrong")
	}
}
