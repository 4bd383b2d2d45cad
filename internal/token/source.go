package token

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// Source owns the immutable text of one compilation unit.
// Tokens and spans share a *Source instead of copying the text.
//
// All indices exposed by Source are grapheme-cluster indices: a base
// letter followed by combining marks, or a multi-codepoint emoji, counts
// as a single position.
type Source struct {
	name   string
	text   string
	bounds []int // bounds[i] is the byte offset of grapheme i; last entry is len(text)
}

// NewSource segments text into grapheme clusters and returns a Source.
// The name is only used for diagnostics and may be empty.
func NewSource(name, text string) *Source {
	bounds := make([]int, 0, len(text)+1)
	rest := text
	offset := 0
	state := -1
	for len(rest) > 0 {
		bounds = append(bounds, offset)
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
	}
	bounds = append(bounds, offset)
	return &Source{name: name, text: text, bounds: bounds}
}

// Name returns the diagnostic name of the source ("<input>" if unnamed).
func (s *Source) Name() string {
	if s.name == "" {
		return "<input>"
	}
	return s.name
}

// Text returns the full source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the number of grapheme clusters in the source.
func (s *Source) Len() int {
	return len(s.bounds) - 1
}

// Grapheme returns the i-th grapheme cluster, or "" when i is out of range.
func (s *Source) Grapheme(i int) string {
	if i < 0 || i >= s.Len() {
		return ""
	}
	return s.text[s.bounds[i]:s.bounds[i+1]]
}

// Slice returns the text of graphemes [start, end).
func (s *Source) Slice(start, end int) string {
	return s.text[s.bounds[start]:s.bounds[end]]
}

// ByteOffset converts a grapheme index into a byte offset into Text.
func (s *Source) ByteOffset(i int) int {
	return s.bounds[i]
}

// Position returns the 1-based line and column of grapheme index i.
// Columns count graphemes, so "猫" advances the column by one.
func (s *Source) Position(i int) Position {
	if i > s.Len() {
		i = s.Len()
	}
	pos := Position{Line: 1, Column: 1}
	for g := 0; g < i; g++ {
		if isLineBreak(s.Grapheme(g)) {
			pos.Line++
			pos.Column = 1
			continue
		}
		pos.Column++
	}
	return pos
}

// Line returns the text of the 1-based line n without its terminator,
// together with the grapheme index at which the line starts.
func (s *Source) Line(n int) (string, int) {
	line := 1
	start := 0
	for g := 0; g < s.Len(); g++ {
		if !isLineBreak(s.Grapheme(g)) {
			continue
		}
		if line == n {
			return s.Slice(start, g), start
		}
		line++
		start = g + 1
	}
	if line == n {
		return s.Slice(start, s.Len()), start
	}
	return "", s.Len()
}

func isLineBreak(g string) bool {
	switch g {
	case "\n", "\r\n", "\r", "\u0085", "\u2028", "\u2029":
		return true
	}
	return false
}

// Position is a human-oriented location used for diagnostics.
type Position struct {
	// Line number (1-indexed).
	Line int
	// Column in grapheme clusters (1-indexed).
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}
