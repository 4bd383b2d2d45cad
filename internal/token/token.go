// Package token defines lexical tokens, sources and spans for radish.
package token

// Type represents a lexical token type.
type Type uint8

const (
	// Special tokens
	ERROR Type = iota // <error>
	EOF               // EOF

	// Operators and delimiters
	operatorStart
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	LPAREN // (
	RPAREN // )
	operatorEnd

	// Keywords
	keywordStart
	TRUE  // true
	FALSE // false
	keywordEnd

	// Literals
	IDENT  // ident
	NUMBER // number
)

var typeNames = [...]string{
	ERROR:  "Error",
	EOF:    "Eof",
	PLUS:   "Plus",
	MINUS:  "Minus",
	STAR:   "Star",
	SLASH:  "Slash",
	LPAREN: "LeftParen",
	RPAREN: "RightParen",
	TRUE:   "True",
	FALSE:  "False",
	IDENT:  "Ident",
	NUMBER: "Number",
}

// String returns the name of the token type, e.g. "LeftParen".
func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "Unknown"
}

// IsOperator returns true if the token is an operator or delimiter.
func (t Type) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is an identifier or number.
func (t Type) IsLiteral() bool {
	return t == IDENT || t == NUMBER
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
}

// operators maps single-grapheme operators and delimiters to token types.
var operators = map[string]Type{
	"+": PLUS,
	"-": MINUS,
	"*": STAR,
	"/": SLASH,
	"(": LPAREN,
	")": RPAREN,
}

// LookupIdent returns the token type for an identifier.
// The match is verbatim: "true" is TRUE, "truee" and "True" are IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// LookupOperator returns the token type for a single grapheme operator,
// or ERROR if g is not one.
func LookupOperator(g string) Type {
	if tok, ok := operators[g]; ok {
		return tok
	}
	return ERROR
}

// Keywords returns the keyword spellings, in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
