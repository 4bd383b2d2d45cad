package compiler

import (
	"fmt"
	"strings"

	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/types"
)

// Chunk is a compiled unit of bytecode with its constant pool.
// It is the Body of a compiled types.Function.
type Chunk struct {
	// Code holds opcodes and their inline operands.
	Code []Opcode

	// Constants is the constant pool indexed by Constant operands.
	Constants []types.Value

	// Spans has one entry per Code word: the source range responsible
	// for it. Runtime errors report the span of the failing opcode.
	Spans []token.Span
}

// write appends an opcode and its operands, all attributed to span.
func (c *Chunk) write(span token.Span, ops ...Opcode) {
	for _, op := range ops {
		c.Code = append(c.Code, op)
		c.Spans = append(c.Spans, span)
	}
}

// SpanAt returns the span of the code word at ip.
func (c *Chunk) SpanAt(ip int) token.Span {
	if ip < 0 || ip >= len(c.Spans) {
		return token.Span{}
	}
	return c.Spans[ip]
}

// Disassemble returns a human-readable listing of the chunk.
func (c *Chunk) Disassemble(name string) string {
	var sb strings.Builder

	if len(c.Constants) > 0 {
		sb.WriteString("=== Constants ===\n")
		for i, v := range c.Constants {
			fmt.Fprintf(&sb, "  [%d] %s\n", i, v)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "=== %s ===\n", name)
	c.disassembleCode(&sb, "  ")
	return sb.String()
}

// disassembleCode outputs bytecode with proper formatting.
func (c *Chunk) disassembleCode(sb *strings.Builder, indent string) {
	for i := 0; i < len(c.Code); i++ {
		op := c.Code[i]
		fmt.Fprintf(sb, "%s%04d: %-8s", indent, i, op.String())

		if op == Constant && i+1 < len(c.Code) {
			i++
			idx := int(c.Code[i])
			if idx < len(c.Constants) {
				fmt.Fprintf(sb, " [%d] = %s", idx, c.Constants[idx])
			} else {
				fmt.Fprintf(sb, " [%d]", idx)
			}
		}

		if span := c.SpanAt(i); span.Src != nil {
			fmt.Fprintf(sb, "  ; %s", span)
		}
		sb.WriteByte('\n')
	}
}
