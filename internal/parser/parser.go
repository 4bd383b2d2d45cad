package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kolkov/radish/internal/ast"
	"github.com/kolkov/radish/internal/lexer"
	"github.com/kolkov/radish/internal/token"
)

// Parser is a recursive descent parser for radish expressions.
//
// Grammar, lowest precedence first:
//
//	sum    := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := NUMBER | TRUE | FALSE | '(' sum ')' | '-' factor
//
// Both binary levels are left-associative. Unary minus binds at factor
// level, so "-1 + 2" is "(-1) + 2".
type Parser struct {
	lexer   *lexer.Lexer // Lexer instance
	src     *token.Source
	tok     lexer.Token // Current token (one token of lookahead)
	prevTok lexer.Token // Previous token
	errors  ErrorList   // Lexical diagnostics plus at most one syntax error
}

// Parse parses a radish expression from source text.
// On failure it returns an ErrorList and no AST.
func Parse(src string) (*ast.AST, error) {
	return ParseSource(token.NewSource("", src))
}

// ParseSource parses the expression held by src.
//
// Unrecognized characters are collected as lexical errors and skipped, so
// one call can report several of them. An unexpected or missing token stops
// the parse immediately. Any error means no AST is returned.
func ParseSource(src *token.Source) (*ast.AST, error) {
	p := New(src)
	return p.Parse()
}

// New creates a parser over src.
func New(src *token.Source) *Parser {
	return &Parser{
		lexer: lexer.New(src),
		src:   src,
	}
}

// Parse scans the first lookahead token, parses one sum and requires the
// input to end there.
func (p *Parser) Parse() (*ast.AST, error) {
	p.next() // Initialize first token

	expr := p.parseSum()
	if expr != nil && p.tok.Type != token.EOF {
		p.error(&ParseError{
			Kind:    SyntaxError,
			Span:    p.tok.Span,
			Message: fmt.Sprintf("unexpected %s after expression", p.tokenDesc()),
			Got:     p.tokenDesc(),
			Want:    "end of input",
		})
	}

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return ast.New(p.src, expr), nil
}

// Diagnostics returns every error recorded so far.
func (p *Parser) Diagnostics() ErrorList {
	return p.errors
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next non-error token. Error tokens are recorded as
// lexical diagnostics and skipped.
func (p *Parser) next() {
	p.prevTok = p.tok
	for {
		tok := p.lexer.Scan()
		if tok.Type != token.ERROR {
			p.tok = tok
			return
		}
		p.errors.Add(LexicalError, tok.Span, tok.Text)
	}
}

// expect checks that the current token is typ and advances.
// If not, it records a syntax error and returns false; callers must abort.
func (p *Parser) expect(typ token.Type, what string) bool {
	if p.tok.Type != typ {
		p.error(expectedError(p.tok.Span, what, p.tokenDesc()))
		return false
	}
	p.next()
	return true
}

// match returns true if current token matches any of the given types.
func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	if p.tok.Type == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("token '%s'", p.tok.Text)
}

// error records a parse error.
func (p *Parser) error(err *ParseError) {
	p.errors = append(p.errors, err)
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseSum parses + and - expressions.
func (p *Parser) parseSum() ast.Expr {
	return p.parseBinaryLeft(p.parseTerm, token.PLUS, token.MINUS)
}

// parseTerm parses * and / expressions.
func (p *Parser) parseTerm() ast.Expr {
	return p.parseBinaryLeft(p.parseFactor, token.STAR, token.SLASH)
}

// parseFactor parses literals, groups and unary minus.
func (p *Parser) parseFactor() ast.Expr {
	switch p.tok.Type {
	case token.NUMBER:
		// A digit run too long for float64 rounds to +Inf, like 1 / 0.
		n, err := strconv.ParseFloat(p.tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			p.error(errorf(p.tok.Span, "cannot parse number '%s'", p.tok.Text))
			return nil
		}
		lit := ast.NewNumber(n, p.tok.Span)
		p.next()
		return lit

	case token.TRUE, token.FALSE:
		lit := ast.NewBool(p.tok.Type == token.TRUE, p.tok.Span)
		p.next()
		return lit

	case token.LPAREN:
		p.next()
		open := p.prevTok.Span
		inner := p.parseSum()
		if inner == nil {
			return nil
		}
		if !p.expect(token.RPAREN, "')' after grouping expression") {
			return nil
		}
		return ast.NewParen(open, inner, p.prevTok.Span)

	case token.MINUS:
		p.next()
		opSpan := p.prevTok.Span
		operand := p.parseFactor()
		if operand == nil {
			return nil
		}
		return ast.NewUnary(opSpan, ast.Subtract, operand)

	default:
		p.error(&ParseError{
			Kind:    SyntaxError,
			Span:    p.tok.Span,
			Message: fmt.Sprintf("unexpected %s", p.tokenDesc()),
			Got:     p.tokenDesc(),
			Want:    "expression",
		})
		return nil
	}
}

// -----------------------------------------------------------------------------
// Helper functions
// -----------------------------------------------------------------------------

// parseBinaryLeft parses left-associative binary operators.
func (p *Parser) parseBinaryLeft(higher func() ast.Expr, ops ...token.Type) ast.Expr {
	expr := higher()
	if expr == nil {
		return nil
	}

	for p.match(ops...) {
		op, _ := ast.OpFromToken(p.tok.Type)
		p.next()
		right := higher()
		if right == nil {
			return nil
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}
