// Package compiler compiles an AST into bytecode for the VM.
package compiler

import "fmt"

// Opcode represents a virtual machine instruction.
// Each opcode is a 32-bit signed integer; operands are stored inline as
// further Opcode words.
type Opcode int32

const (
	// Nop does nothing.
	Nop Opcode = iota

	// Stack operations
	Constant // Push constant: Constant index
	Drop     // Discard top of stack

	// Arithmetic (operands checked at run time)
	Add      // a + b; numbers add, strings append onto a
	Subtract // a - b
	Multiply // a * b
	Divide   // a / b
	Negate   // -a
	Not      // !a

	// Control
	Return // Return top of stack to the caller
)

// Typed opcodes are emitted when the static check proves every operand is
// a number. They skip operand checking in the VM.
const (
	AddNum Opcode = iota + 100
	SubNum
	MulNum
	DivNum
	NegNum
)

var opNames = map[Opcode]string{
	Nop:      "Nop",
	Constant: "Constant",
	Drop:     "Drop",
	Add:      "Add",
	Subtract: "Subtract",
	Multiply: "Multiply",
	Divide:   "Divide",
	Negate:   "Negate",
	Not:      "Not",
	Return:   "Return",
	AddNum:   "AddNum",
	SubNum:   "SubNum",
	MulNum:   "MulNum",
	DivNum:   "DivNum",
	NegNum:   "NegNum",
}

// String returns a human-readable name for the opcode.
func (op Opcode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(%d)", int32(op))
}

// Operands returns how many inline operand words follow op.
func (op Opcode) Operands() int {
	if op == Constant {
		return 1
	}
	return 0
}

// IsBinary reports whether op pops two values and pushes one.
func (op Opcode) IsBinary() bool {
	switch op {
	case Add, Subtract, Multiply, Divide, AddNum, SubNum, MulNum, DivNum:
		return true
	}
	return false
}

// IsUnary reports whether op pops one value and pushes one.
func (op Opcode) IsUnary() bool {
	switch op {
	case Negate, Not, NegNum:
		return true
	}
	return false
}
