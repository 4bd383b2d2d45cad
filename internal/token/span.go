package token

import "fmt"

// Span is a half-open range [Start, End) of grapheme indices into a Source.
//
// Spans carry no meaning for evaluation; they exist for diagnostics and
// for computing the extent of composite expressions.
type Span struct {
	Src   *Source
	Start int
	End   int
}

// NewSpan returns the span [start, end) over src.
// It panics if 0 <= start <= end <= src.Len() does not hold: an invalid
// span is a bug in the caller, not a recoverable condition.
func NewSpan(src *Source, start, end int) Span {
	if src == nil {
		panic("token: span over nil source")
	}
	if start < 0 || start > end || end > src.Len() {
		panic(fmt.Sprintf("token: invalid span %d..%d over source of length %d", start, end, src.Len()))
	}
	return Span{Src: src, Start: start, End: end}
}

// Len returns the width of the span in graphemes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no graphemes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Text returns the source text covered by the span.
func (s Span) Text() string {
	if s.Src == nil {
		return ""
	}
	return s.Src.Slice(s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Both spans must refer to the same source.
func (s Span) Cover(other Span) Span {
	if s.Src != other.Src {
		panic("token: cannot cover spans of different sources")
	}
	return NewSpan(s.Src, min(s.Start, other.Start), max(s.End, other.End))
}

// Contains reports whether grapheme index i lies inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Pos returns the line/column of the span start.
func (s Span) Pos() Position {
	if s.Src == nil {
		return Position{}
	}
	return s.Src.Position(s.Start)
}

// String returns "start..end".
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
