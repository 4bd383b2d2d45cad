package compiler

import (
	"math"

	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/types"
)

// instr is a decoded instruction used while rewriting a chunk.
type instr struct {
	op   Opcode
	arg  int // Constant pool index, valid when op == Constant
	span token.Span
}

// Optimize folds constant subexpressions in place.
//
//	Constant a, Constant b, <arith>  ->  Constant (a <arith> b)
//	Constant a, <unary>              ->  Constant (<unary> a)
//
// Only operands the operator accepts are folded, so an operand-type error
// still happens at run time with its original span. String constants are
// never folded because Add mutates the left buffer. Unused constants are
// removed from the pool afterwards.
func Optimize(chunk *Chunk) {
	code := decode(chunk)
	out := make([]instr, 0, len(code))
	for _, in := range code {
		out = append(out, in)
		out = fold(chunk, out)
	}
	encode(chunk, out)
}

// fold applies folding rules to the tail of out until none match.
func fold(chunk *Chunk, out []instr) []instr {
	for {
		n := len(out)
		if n >= 2 && out[n-1].op.IsUnary() && out[n-2].op == Constant {
			v := chunk.Constants[out[n-2].arg]
			if r, ok := evalUnary(out[n-1].op, v); ok {
				out = append(out[:n-2], constInstr(chunk, r, out[n-1].span))
				continue
			}
		}
		if n >= 3 && out[n-1].op.IsBinary() && out[n-2].op == Constant && out[n-3].op == Constant {
			a := chunk.Constants[out[n-3].arg]
			b := chunk.Constants[out[n-2].arg]
			if r, ok := evalBinary(out[n-1].op, a, b); ok {
				out = append(out[:n-3], constInstr(chunk, r, out[n-1].span))
				continue
			}
		}
		return out
	}
}

func constInstr(chunk *Chunk, v types.Value, span token.Span) instr {
	chunk.Constants = append(chunk.Constants, v)
	return instr{op: Constant, arg: len(chunk.Constants) - 1, span: span}
}

func evalUnary(op Opcode, v types.Value) (types.Value, bool) {
	var (
		r   types.Value
		err error
	)
	switch op {
	case Negate, NegNum:
		r, err = types.Neg(v)
	case Not:
		r, err = types.Not(v)
	default:
		return r, false
	}
	return r, err == nil
}

func evalBinary(op Opcode, a, b types.Value) (types.Value, bool) {
	if !a.IsNum() || !b.IsNum() {
		return types.Value{}, false
	}
	var (
		r   types.Value
		err error
	)
	switch op {
	case Add, AddNum:
		r, err = types.Add(a, b)
	case Subtract, SubNum:
		r, err = types.Sub(a, b)
	case Multiply, MulNum:
		r, err = types.Mul(a, b)
	case Divide, DivNum:
		r, err = types.Div(a, b)
	default:
		return r, false
	}
	return r, err == nil
}

func decode(chunk *Chunk) []instr {
	var code []instr
	for ip := 0; ip < len(chunk.Code); ip++ {
		in := instr{op: chunk.Code[ip], span: chunk.SpanAt(ip)}
		if in.op == Constant && ip+1 < len(chunk.Code) {
			ip++
			in.arg = int(chunk.Code[ip])
		}
		code = append(code, in)
	}
	return code
}

// encode rewrites chunk from code, compacting the constant pool.
func encode(chunk *Chunk, code []instr) {
	old := chunk.Constants
	chunk.Code = chunk.Code[:0]
	chunk.Spans = chunk.Spans[:0]
	chunk.Constants = nil

	remap := make(map[int]int)
	nums := make(map[uint64]int)
	for _, in := range code {
		if in.op != Constant {
			chunk.write(in.span, in.op)
			continue
		}
		idx, ok := remap[in.arg]
		if !ok {
			v := old[in.arg]
			if v.IsNum() {
				bits := math.Float64bits(v.AsNum())
				if j, seen := nums[bits]; seen {
					idx, ok = j, true
				}
			}
			if !ok {
				idx = len(chunk.Constants)
				chunk.Constants = append(chunk.Constants, v)
				if v.IsNum() {
					nums[math.Float64bits(v.AsNum())] = idx
				}
			}
			remap[in.arg] = idx
		}
		chunk.write(in.span, Constant, Opcode(idx))
	}
}
