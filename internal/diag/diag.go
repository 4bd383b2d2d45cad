// Package diag renders diagnostics as source snippets with a caret
// underline:
//
//	syntax error: expected ')' after grouping expression, got end of input
//	 --> <input>:1:7
//	  |
//	1 | (1 + 2
//	  |       ^
//
// Carets are aligned by terminal display width, so wide characters such as
// CJK ideographs or emoji get two carets and the underline stays under them.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/kolkov/radish/internal/parser"
	"github.com/kolkov/radish/internal/semantic"
	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/vm"
)

// Render writes one diagnostic for span to w.
// A span without a source renders as the header line alone.
func Render(w io.Writer, label string, span token.Span, message string) error {
	_, err := io.WriteString(w, Format(label, span, message))
	return err
}

// Format returns the text Render would write.
func Format(label string, span token.Span, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", label, message)
	if span.Src == nil {
		return b.String()
	}

	pos := span.Pos()
	line, lineStart := span.Src.Line(pos.Line)
	num := strconv.Itoa(pos.Line)
	gutter := strings.Repeat(" ", len(num))

	fmt.Fprintf(&b, "%s--> %s:%s\n", gutter, span.Src.Name(), pos)
	fmt.Fprintf(&b, "%s |\n", gutter)
	fmt.Fprintf(&b, "%s | %s\n", num, line)
	fmt.Fprintf(&b, "%s | %s%s\n", gutter, padding(span.Src, lineStart, span.Start), carets(span, lineStart+uniseg.GraphemeClusterCount(line)))
	return b.String()
}

// padding returns whitespace as wide as the graphemes in [from, to).
// Tabs are kept so the caret lines up however the terminal expands them.
func padding(src *token.Source, from, to int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		g := src.Grapheme(i)
		if g == "\t" {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", uniseg.StringWidth(g)))
	}
	return b.String()
}

// carets returns the underline for span, clipped to the end of its first
// line. The result is never empty.
func carets(span token.Span, lineEnd int) string {
	end := min(span.End, lineEnd)
	width := 0
	for i := span.Start; i < end; i++ {
		width += max(uniseg.StringWidth(span.Src.Grapheme(i)), 1)
	}
	return strings.Repeat("^", max(width, 1))
}

// RenderError writes every diagnostic carried by err. Errors from the
// parser, the static checker and the VM get snippets; anything else is
// written as a single "error:" line.
func RenderError(w io.Writer, err error) error {
	var b strings.Builder
	for i, d := range Collect(err) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Format(d.Label, d.Span, d.Message))
	}
	_, werr := io.WriteString(w, b.String())
	return werr
}

// Diagnostic is one located message.
type Diagnostic struct {
	Label   string
	Span    token.Span
	Message string
}

// Collect flattens err into diagnostics.
func Collect(err error) []Diagnostic {
	if err == nil {
		return nil
	}

	var plist parser.ErrorList
	if errors.As(err, &plist) {
		out := make([]Diagnostic, len(plist))
		for i, e := range plist {
			out[i] = Diagnostic{Label: e.Kind.String(), Span: e.Span, Message: e.Message}
		}
		return out
	}

	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return []Diagnostic{{Label: perr.Kind.String(), Span: perr.Span, Message: perr.Message}}
	}

	var slist semantic.ErrorList
	if errors.As(err, &slist) {
		out := make([]Diagnostic, len(slist))
		for i, e := range slist {
			out[i] = Diagnostic{Label: "type error", Span: e.Span, Message: e.Message}
		}
		return out
	}

	var rerr *vm.RuntimeError
	if errors.As(err, &rerr) {
		return []Diagnostic{{Label: "runtime error", Span: rerr.Span, Message: rerr.Message}}
	}

	return []Diagnostic{{Label: "error", Message: err.Error()}}
}
