package ast

import "github.com/kolkov/radish/internal/token"

// AST is the result of a successful parse: an ordered list of expressions.
// The parser currently produces exactly one item.
type AST struct {
	Src   *token.Source
	Items []Expr
}

// New returns an AST over src holding items.
func New(src *token.Source, items ...Expr) *AST {
	return &AST{Src: src, Items: items}
}

// Span covers every item, or is the empty span at 0 for an empty AST.
func (a *AST) Span() token.Span {
	if len(a.Items) == 0 {
		return token.NewSpan(a.Src, 0, 0)
	}
	s := a.Items[0].Span()
	for _, item := range a.Items[1:] {
		s = s.Cover(item.Span())
	}
	return s
}
