// Package lexer provides radish source code tokenization.
//
// The lexer walks a token.Source one grapheme cluster at a time, so every
// offset it produces is a grapheme index. A character built from several
// code points (a letter plus combining accents, a flag emoji) occupies
// exactly one position.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kolkov/radish/internal/token"
)

// Token represents a scanned token with its literal text and span.
// For ERROR tokens Text holds the diagnostic message instead of the lexeme.
type Token struct {
	Type token.Type
	Text string
	Span token.Span
}

// String returns a debug representation such as `Number "12" 0..2`.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Type, t.Text, t.Span)
}

// Lexer tokenizes radish source code.
type Lexer struct {
	src      *token.Source
	current  int   // Grapheme index of the next unread cluster
	start    int   // Grapheme index where the current token starts
	previous Token // Last token returned by Scan
}

// New creates a new Lexer over src.
func New(src *token.Source) *Lexer {
	return &Lexer{src: src}
}

// NewFromString creates a new Lexer over an unnamed source.
func NewFromString(text string) *Lexer {
	return New(token.NewSource("", text))
}

// Source returns the source being scanned.
func (l *Lexer) Source() *token.Source {
	return l.src
}

// Previous returns the token returned by the last call to Scan.
func (l *Lexer) Previous() Token {
	return l.previous
}

// Scan scans and returns the next token.
//
// An unrecognized grapheme yields an ERROR token and scanning resumes after
// it, so callers may keep calling Scan to collect further diagnostics.
// Once the input is exhausted every call returns EOF.
func (l *Lexer) Scan() Token {
	tok := l.scan()
	l.previous = tok
	return tok
}

// All scans the remaining input and returns every token, EOF included.
func (l *Lexer) All() []Token {
	var toks []Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) scan() Token {
	l.skipWhitespace()
	l.start = l.current

	g, ok := l.advance()
	if !ok {
		return l.makeToken(token.EOF)
	}

	if typ := token.LookupOperator(g); typ != token.ERROR {
		return l.makeToken(typ)
	}

	switch {
	case isAlpha(g):
		return l.scanIdent()
	case isDigit(g):
		return l.scanNumber()
	}

	return l.errorToken(g)
}

func (l *Lexer) scanIdent() Token {
	for isAlpha(l.peek()) {
		l.current++
	}
	text := l.src.Slice(l.start, l.current)
	return Token{
		Type: token.LookupIdent(text),
		Text: text,
		Span: token.NewSpan(l.src, l.start, l.current),
	}
}

// scanNumber consumes a run of ASCII digits. There is no fraction, sign
// or exponent syntax.
func (l *Lexer) scanNumber() Token {
	for isDigit(l.peek()) {
		l.current++
	}
	return l.makeToken(token.NUMBER)
}

func (l *Lexer) makeToken(typ token.Type) Token {
	return Token{
		Type: typ,
		Text: l.src.Slice(l.start, l.current),
		Span: token.NewSpan(l.src, l.start, l.current),
	}
}

func (l *Lexer) errorToken(g string) Token {
	span := token.NewSpan(l.src, l.start, l.current)
	return Token{
		Type: token.ERROR,
		Text: fmt.Sprintf("unexpected character '%s' at %s", displayGrapheme(g), span),
		Span: span,
	}
}

// advance consumes and returns the next grapheme cluster.
func (l *Lexer) advance() (string, bool) {
	if l.current >= l.src.Len() {
		return "", false
	}
	g := l.src.Grapheme(l.current)
	l.current++
	return g, true
}

// peek returns the next grapheme cluster without consuming it ("" at EOF).
func (l *Lexer) peek() string {
	return l.src.Grapheme(l.current)
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.peek()) {
		l.current++
	}
}

// Helper functions

// displayGrapheme escapes a cluster holding control characters so a
// diagnostic stays on one line; "\n" prints as `\n`.
func displayGrapheme(g string) string {
	if strings.IndexFunc(g, unicode.IsControl) < 0 {
		return g
	}
	q := strconv.Quote(g)
	return q[1 : len(q)-1]
}

// isWhitespace matches a fixed allow-list rather than unicode.IsSpace.
// Note that "\n" is not on the list and scans as an error.
func isWhitespace(g string) bool {
	switch g {
	case "\t", "\v", "\f", "\r", " ",
		"\u0085",           // NEXT LINE
		"\u200E", "\u200F", // LEFT-TO-RIGHT MARK, RIGHT-TO-LEFT MARK
		"\u2028", "\u2029": // LINE SEPARATOR, PARAGRAPH SEPARATOR
		return true
	}
	return false
}

// isAlpha reports whether every byte of the cluster is an ASCII letter or
// underscore. A letter carrying a combining mark is not alphabetic.
func isAlpha(g string) bool {
	if g == "" {
		return false
	}
	for i := 0; i < len(g); i++ {
		ch := g[i]
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_') {
			return false
		}
	}
	return true
}

// isDigit reports whether the cluster is a single ASCII digit.
func isDigit(g string) bool {
	return len(g) == 1 && g[0] >= '0' && g[0] <= '9'
}
