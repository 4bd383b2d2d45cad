package lexer

import (
	"strings"
	"testing"

	"github.com/kolkov/radish/internal/token"
)

func TestScanBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Type
	}{
		{"+", []token.Type{token.PLUS, token.EOF}},
		{"-", []token.Type{token.MINUS, token.EOF}},
		{"*", []token.Type{token.STAR, token.EOF}},
		{"/", []token.Type{token.SLASH, token.EOF}},
		{"(", []token.Type{token.LPAREN, token.EOF}},
		{")", []token.Type{token.RPAREN, token.EOF}},
		{"+-*/", []token.Type{token.PLUS, token.MINUS, token.STAR, token.SLASH, token.EOF}},
		{"1 + 23 + 456", []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.PLUS, token.NUMBER, token.EOF}},
		{"123 (456 789)", []token.Type{token.NUMBER, token.LPAREN, token.NUMBER, token.NUMBER, token.RPAREN, token.EOF}},
		{"-(1)", []token.Type{token.MINUS, token.LPAREN, token.NUMBER, token.RPAREN, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewFromString(tt.input)
			for i, exp := range tt.expected {
				tok := l.Scan()
				if tok.Type != exp {
					t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
				}
			}
		})
	}
}

func TestScanOperatorText(t *testing.T) {
	l := NewFromString("+-*/()")
	for _, want := range []string{"+", "-", "*", "/", "(", ")", ""} {
		if tok := l.Scan(); tok.Text != want {
			t.Errorf("Text = %q, want %q", tok.Text, want)
		}
	}
}

func TestScanKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"truee", token.IDENT},
		{"falsey", token.IDENT},
		{"True", token.IDENT},
		{"radishes", token.IDENT},
		{"_private", token.IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewFromString(tt.input)
			tok := l.Scan()
			if tok.Type != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, tok.Type)
			}
			if tok.Text != tt.input {
				t.Errorf("Text = %q, want %q", tok.Text, tt.input)
			}
			if next := l.Scan(); next.Type != token.EOF {
				t.Errorf("expected single token, then EOF; got %v", next.Type)
			}
		})
	}
}

func TestScanIdentifiers(t *testing.T) {
	l := NewFromString("radishes cats")
	for _, want := range []string{"radishes", "cats"} {
		tok := l.Scan()
		if tok.Type != token.IDENT || tok.Text != want {
			t.Errorf("got %v %q, want Ident %q", tok.Type, tok.Text, want)
		}
	}
}

func TestScanIdentifierStopsAtDigit(t *testing.T) {
	l := NewFromString("ab12")
	tok := l.Scan()
	if tok.Type != token.IDENT || tok.Text != "ab" {
		t.Fatalf("got %v %q, want Ident \"ab\"", tok.Type, tok.Text)
	}
	tok = l.Scan()
	if tok.Type != token.NUMBER || tok.Text != "12" {
		t.Fatalf("got %v %q, want Number \"12\"", tok.Type, tok.Text)
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"123", []string{"123"}},
		{"0", []string{"0"}},
		{"007", []string{"007"}},
		{"1.5", []string{"1", "", "5"}}, // '.' is an error token
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewFromString(tt.input)
			for _, want := range tt.want {
				tok := l.Scan()
				if want == "" {
					if tok.Type != token.ERROR {
						t.Errorf("expected Error, got %v", tok.Type)
					}
					continue
				}
				if tok.Type != token.NUMBER || tok.Text != want {
					t.Errorf("got %v %q, want Number %q", tok.Type, tok.Text, want)
				}
			}
			if tok := l.Scan(); tok.Type != token.EOF {
				t.Errorf("expected EOF, got %v", tok.Type)
			}
		})
	}
}

func TestSkipWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"spaces", "    "},
		{"cr and tab", "\r\r\t"},
		{"vertical tab and form feed", "\v\f"},
		{"next line", "\u0085"},
		{"bidi marks", "\u200E\u200F"},
		{"line and paragraph separators", "\u2028\u2029"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.EOF {
				t.Errorf("expected EOF, got %v", tok.Type)
			}
		})
	}

	l := NewFromString("  123    + 45  ")
	for _, exp := range []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.EOF} {
		if tok := l.Scan(); tok.Type != exp {
			t.Errorf("expected %v, got %v", exp, tok.Type)
		}
	}
}

func TestNewlineIsNotWhitespace(t *testing.T) {
	l := NewFromString("1\n")
	if tok := l.Scan(); tok.Type != token.NUMBER {
		t.Fatalf("expected Number, got %v", tok.Type)
	}
	if tok := l.Scan(); tok.Type != token.ERROR {
		t.Fatalf("expected Error for newline, got %v", tok.Type)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	l := NewFromString("猫")
	tok := l.Scan()
	if tok.Type != token.ERROR {
		t.Fatalf("expected Error, got %v", tok.Type)
	}
	if tok.Text != "unexpected character '猫' at 0..1" {
		t.Errorf("Text = %q", tok.Text)
	}
	tok = l.Scan()
	if tok.Type != token.EOF || tok.Text != "" {
		t.Errorf("expected empty EOF, got %v %q", tok.Type, tok.Text)
	}
}

func TestScanContinuesAfterError(t *testing.T) {
	l := NewFromString("1 猫 + ? 2")
	want := []token.Type{token.NUMBER, token.ERROR, token.PLUS, token.ERROR, token.NUMBER, token.EOF}
	for i, exp := range want {
		if tok := l.Scan(); tok.Type != exp {
			t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
		}
	}
}

func TestErrorMessageContainsGrapheme(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bad   string
	}{
		{"cjk", "猫", "猫"},
		{"combining mark", "e\u0301", "e\u0301"},
		{"emoji", "👍🏽", "👍🏽"},
		{"punctuation", "%", "%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.ERROR {
				t.Fatalf("expected Error, got %v", tok.Type)
			}
			if !strings.Contains(tok.Text, tt.bad) {
				t.Errorf("message %q does not contain %q", tok.Text, tt.bad)
			}
			if tok.Span.Start != 0 || tok.Span.End != 1 {
				t.Errorf("Span = %v, want 0..1", tok.Span)
			}
		})
	}
}

func TestErrorMessageEscapesControl(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"\n", `unexpected character '\n' at 0..1`},
		{"\r\n", `unexpected character '\r\n' at 0..1`},
		{"\x00", `unexpected character '\x00' at 0..1`},
		{"\x1b", `unexpected character '\x1b' at 0..1`},
	}

	for _, tt := range tests {
		tok := NewFromString(tt.input).Scan()
		if tok.Type != token.ERROR {
			t.Fatalf("Scan(%q) = %v, want Error", tt.input, tok.Type)
		}
		if tok.Text != tt.want {
			t.Errorf("Scan(%q).Text = %q, want %q", tt.input, tok.Text, tt.want)
		}
		if strings.ContainsAny(tok.Text, "\r\n") {
			t.Errorf("Scan(%q).Text spans lines: %q", tt.input, tok.Text)
		}
	}
}

func TestTokenSpan(t *testing.T) {
	l := NewFromString("789 102 猫")
	tests := []struct {
		typ        token.Type
		start, end int
	}{
		{token.NUMBER, 0, 3},
		{token.NUMBER, 4, 7},
		{token.ERROR, 8, 9},
		{token.EOF, 9, 9},
	}

	for i, tt := range tests {
		tok := l.Scan()
		if tok.Type != tt.typ {
			t.Errorf("token[%d]: expected %v, got %v", i, tt.typ, tok.Type)
		}
		if tok.Span.Start != tt.start || tok.Span.End != tt.end {
			t.Errorf("token[%d]: span = %v, want %d..%d", i, tok.Span, tt.start, tt.end)
		}
	}
}

func TestSpanCountsGraphemes(t *testing.T) {
	// "e" + COMBINING ACUTE is one position, so "1" sits at index 2.
	l := NewFromString("e\u0301 1")
	if tok := l.Scan(); tok.Type != token.ERROR {
		t.Fatalf("expected Error, got %v", tok.Type)
	}
	tok := l.Scan()
	if tok.Span.Start != 2 || tok.Span.End != 3 {
		t.Errorf("span = %v, want 2..3", tok.Span)
	}
}

func TestEmptySource(t *testing.T) {
	tok := NewFromString("").Scan()
	if tok.Type != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Type)
	}
	if tok.Span.Start != 0 || tok.Span.End != 0 {
		t.Errorf("span = %v, want 0..0", tok.Span)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := NewFromString("1")
	l.Scan()
	for i := 0; i < 3; i++ {
		tok := l.Scan()
		if tok.Type != token.EOF || tok.Span.Start != 1 || tok.Span.End != 1 {
			t.Errorf("call %d: got %v, want EOF at 1..1", i, tok)
		}
	}
}

func TestPrevious(t *testing.T) {
	l := NewFromString("1 +")
	first := l.Scan()
	if l.Previous() != first {
		t.Errorf("Previous() = %v, want %v", l.Previous(), first)
	}
	second := l.Scan()
	if l.Previous() != second {
		t.Errorf("Previous() = %v, want %v", l.Previous(), second)
	}
}

func TestAll(t *testing.T) {
	toks := NewFromString("(1)").All()
	want := []token.Type{token.LPAREN, token.NUMBER, token.RPAREN, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("All() returned %d tokens, want %d", len(toks), len(want))
	}
	for i, exp := range want {
		if toks[i].Type != exp {
			t.Errorf("token[%d]: expected %v, got %v", i, exp, toks[i].Type)
		}
	}
}

func TestIsAlpha(t *testing.T) {
	tests := map[string]bool{
		"l":        true,
		"L":        true,
		"_":        true,
		"1":        false,
		"?":        false,
		"猫":        false,
		"a\u0301": false,
		"":         false,
	}
	for g, want := range tests {
		if got := isAlpha(g); got != want {
			t.Errorf("isAlpha(%q) = %v, want %v", g, got, want)
		}
	}
}
