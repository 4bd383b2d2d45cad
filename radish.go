package radish

import (
	"errors"
	"strings"

	"github.com/kolkov/radish/internal/ast"
	"github.com/kolkov/radish/internal/compiler"
	"github.com/kolkov/radish/internal/diag"
	"github.com/kolkov/radish/internal/lexer"
	"github.com/kolkov/radish/internal/parser"
	"github.com/kolkov/radish/internal/semantic"
	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/types"
)

// Version is the radish version string.
const Version = "0.1.0"

// Value is a radish runtime value: a number, boolean, string, function or
// nil. Its String method gives the display form.
type Value = types.Value

// ErrOperandType is matched by errors.Is for every operator applied to
// operands outside its domain.
var ErrOperandType = types.ErrOperandType

// Eval compiles and runs src, returning its value.
// This is a convenience function for one-off evaluation.
// For repeated evaluation, use Compile followed by Program.Run.
//
// Example:
//
//	v, err := radish.Eval("1 + 2 * 3", nil)
//	// v.String() == "7"
func Eval(src string, config *Config) (Value, error) {
	prog, err := Compile(src, config)
	if err != nil {
		return Value{}, err
	}
	return prog.Run()
}

// Compile parses and compiles src. If config is nil, defaults are used.
// The returned Program can be run multiple times.
func Compile(src string, config *Config) (*Program, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	tree, err := parseTree(src, cfg.Name)
	if err != nil {
		return nil, err
	}

	// Static analysis also feeds the compiler; here it supplies warnings
	// and, with TypeCheck, rejects ill-typed programs early.
	analysis := semantic.Analyze(tree)
	if cfg.TypeCheck && len(analysis.Errors) > 0 {
		return nil, newCompileError(analysis.Errors)
	}

	fn, err := compiler.Compile(tree)
	if err != nil {
		return nil, &CompileError{Message: err.Error(), err: err}
	}
	if *cfg.Optimize {
		compiler.Optimize(compiler.ChunkOf(fn))
	}

	warnings := make([]string, len(analysis.Warnings))
	for i, w := range analysis.Warnings {
		warnings[i] = w.String()
	}

	return &Program{
		fn:       fn,
		tree:     tree,
		source:   src,
		config:   cfg,
		warnings: warnings,
	}, nil
}

// MustCompile is like Compile but panics if src cannot be compiled.
// It simplifies initialization of global program variables.
func MustCompile(src string) *Program {
	prog, err := Compile(src, nil)
	if err != nil {
		panic(err)
	}
	return prog
}

// Parse checks that src is a well-formed expression and returns its fully
// parenthesized form, e.g. "1 + 2 * 3" gives "(1 + (2 * 3))".
func Parse(src string) (string, error) {
	tree, err := parseTree(src, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(ast.String(tree), "\n"), nil
}

func parseTree(src, name string) (*ast.AST, error) {
	tree, err := parser.ParseSource(token.NewSource(name, src))
	if err != nil {
		return nil, newParseError(err)
	}
	return tree, nil
}

// Token is a scanned token.
type Token struct {
	Type   string // Token type name, e.g. "Number", "LeftParen", "Error"
	Text   string // Lexeme, or the diagnostic message for Error tokens
	Start  int    // Grapheme index of the first character
	End    int    // Grapheme index just past the last character
	Line   int    // 1-based line of Start
	Column int    // 1-based grapheme column of Start
}

// Tokenize scans src and returns every token up to and including Eof.
// Unrecognized characters appear as Error tokens; scanning continues
// after them.
func Tokenize(src string) []Token {
	toks := lexer.NewFromString(src).All()
	out := make([]Token, len(toks))
	for i, tok := range toks {
		pos := tok.Span.Pos()
		out[i] = Token{
			Type:   tok.Type.String(),
			Text:   tok.Text,
			Start:  tok.Span.Start,
			End:    tok.Span.End,
			Line:   pos.Line,
			Column: pos.Column,
		}
	}
	return out
}

// FormatError renders err as one or more source snippets with carets
// under the offending characters. Errors that carry no location are
// rendered as a single "error:" line.
func FormatError(err error) string {
	var sb strings.Builder
	_ = diag.RenderError(&sb, err)
	return sb.String()
}

// IsIncomplete reports whether err is a parse error caused only by the
// input ending too early, such as an unclosed parenthesis. Interactive
// callers use it to ask for another line.
func IsIncomplete(err error) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return parser.IsIncomplete(pe.err)
}
