// Package vm provides the radish virtual machine implementation.
package vm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kolkov/radish/internal/compiler"
	"github.com/kolkov/radish/internal/token"
	"github.com/kolkov/radish/internal/types"
)

// DefaultStackSize is the initial stack capacity.
const DefaultStackSize = 256

// RuntimeError reports an operation that failed during execution.
// Span is the source range of the failing operator.
type RuntimeError struct {
	Message string
	Span    token.Span
	Err     error // Underlying operator error, if any
}

func (e *RuntimeError) Error() string {
	if e.Span.Src != nil {
		return fmt.Sprintf("%s: %s", e.Span.Pos(), e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying operator error.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Config holds VM configuration options.
type Config struct {
	// Logger receives trace records. Nil discards them.
	Logger *slog.Logger

	// Trace logs every executed instruction at debug level.
	Trace bool

	// StackSize is the initial stack capacity. Zero means DefaultStackSize.
	StackSize int
}

// VM is the radish virtual machine.
// A VM is not safe for concurrent use; it may run many functions in turn.
type VM struct {
	// Value stack
	stackData []types.Value
	sp        int // Stack pointer (index of next free slot)

	log   *slog.Logger
	trace bool
}

// New creates a new VM with the given configuration.
func New(cfg Config) *VM {
	size := cfg.StackSize
	if size <= 0 {
		size = DefaultStackSize
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &VM{
		stackData: make([]types.Value, size),
		log:       log,
		trace:     cfg.Trace,
	}
}

// -----------------------------------------------------------------------------
// Inline Stack Operations
// -----------------------------------------------------------------------------

// push pushes a value onto the stack, growing it when needed.
func (vm *VM) push(v types.Value) {
	if vm.sp >= len(vm.stackData) {
		vm.growStack()
	}
	vm.stackData[vm.sp] = v
	vm.sp++
}

// pop removes and returns the top value from the stack.
func (vm *VM) pop() types.Value {
	vm.sp--
	v := vm.stackData[vm.sp]
	vm.stackData[vm.sp] = types.Value{} // Release string/function references
	return v
}

// peekPop returns the second-from-top value and pops the top value.
// Returns (second-from-top, top).
func (vm *VM) peekPop() (types.Value, types.Value) {
	top := vm.pop()
	return vm.stackData[vm.sp-1], top
}

// replaceTop replaces the top value without pop/push overhead.
func (vm *VM) replaceTop(v types.Value) {
	vm.stackData[vm.sp-1] = v
}

// need reports whether at least n values are on the stack.
func (vm *VM) need(n int) bool {
	return vm.sp >= n
}

func (vm *VM) growStack() {
	grown := make([]types.Value, len(vm.stackData)*2+1)
	copy(grown, vm.stackData)
	vm.stackData = grown
}

// reset empties the stack, dropping references.
func (vm *VM) reset() {
	clear(vm.stackData[:vm.sp])
	vm.sp = 0
}

// stackString renders the live stack for tracing.
func (vm *VM) stackString() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < vm.sp; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(vm.stackData[i].String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// -----------------------------------------------------------------------------
// Execution
// -----------------------------------------------------------------------------

// Run executes a compiled function with no arguments and returns its result.
// Operand-type violations stop execution and return a *RuntimeError
// carrying the span of the failing operator.
func (vm *VM) Run(fn *types.Function) (types.Value, error) {
	if fn == nil {
		return types.Value{}, &RuntimeError{Message: "no function to run"}
	}
	if fn.Arity != 0 {
		return types.Value{}, &RuntimeError{
			Message: fmt.Sprintf("cannot run %s: expects %d arguments", fn.Name, fn.Arity),
		}
	}
	chunk := compiler.ChunkOf(fn)
	if chunk == nil {
		return types.Value{}, &RuntimeError{
			Message: fmt.Sprintf("cannot run %s: body is %T, not bytecode", fn.Name, fn.Body),
		}
	}

	defer vm.reset()
	return vm.execute(chunk)
}

func (vm *VM) execute(chunk *compiler.Chunk) (types.Value, error) {
	code := chunk.Code
	ctx := context.Background()

	for ip := 0; ip < len(code); ip++ {
		op := code[ip]
		if vm.trace {
			vm.log.LogAttrs(ctx, slog.LevelDebug, "exec",
				slog.Int("ip", ip),
				slog.String("op", op.String()),
				slog.String("stack", vm.stackString()),
			)
		}

		if (op.IsBinary() && !vm.need(2)) || ((op.IsUnary() || op == compiler.Drop) && !vm.need(1)) {
			return types.Value{}, vm.errorAt(chunk, ip, nil, "stack underflow at %s", op)
		}

		switch op {
		case compiler.Nop:
			// Nothing

		case compiler.Constant:
			if ip+1 >= len(code) || int(code[ip+1]) >= len(chunk.Constants) || code[ip+1] < 0 {
				return types.Value{}, vm.errorAt(chunk, ip, nil, "bad constant operand")
			}
			ip++
			vm.push(chunk.Constants[code[ip]])

		case compiler.Drop:
			vm.pop()

		// Typed arithmetic: operands proven numeric at compile time.
		case compiler.AddNum:
			a, b := vm.peekPop()
			vm.replaceTop(types.Num(a.AsNum() + b.AsNum()))
		case compiler.SubNum:
			a, b := vm.peekPop()
			vm.replaceTop(types.Num(a.AsNum() - b.AsNum()))
		case compiler.MulNum:
			a, b := vm.peekPop()
			vm.replaceTop(types.Num(a.AsNum() * b.AsNum()))
		case compiler.DivNum:
			a, b := vm.peekPop()
			vm.replaceTop(types.Num(a.AsNum() / b.AsNum()))
		case compiler.NegNum:
			vm.replaceTop(types.Num(-vm.stackData[vm.sp-1].AsNum()))

		// Checked arithmetic
		case compiler.Add, compiler.Subtract, compiler.Multiply, compiler.Divide:
			a, b := vm.peekPop()
			r, err := binaryOps[op](a, b)
			if err != nil {
				return types.Value{}, vm.errorAt(chunk, ip, err, "%s", err)
			}
			vm.replaceTop(r)

		case compiler.Negate, compiler.Not:
			r, err := unaryOps[op](vm.stackData[vm.sp-1])
			if err != nil {
				return types.Value{}, vm.errorAt(chunk, ip, err, "%s", err)
			}
			vm.replaceTop(r)

		case compiler.Return:
			if !vm.need(1) {
				return types.Nil(), nil
			}
			return vm.pop(), nil

		default:
			return types.Value{}, vm.errorAt(chunk, ip, nil, "unknown opcode %s", op)
		}
	}

	// Fell off the end without Return.
	if vm.sp > 0 {
		return vm.pop(), nil
	}
	return types.Nil(), nil
}

var binaryOps = map[compiler.Opcode]func(a, b types.Value) (types.Value, error){
	compiler.Add:      types.Add,
	compiler.Subtract: types.Sub,
	compiler.Multiply: types.Mul,
	compiler.Divide:   types.Div,
}

var unaryOps = map[compiler.Opcode]func(v types.Value) (types.Value, error){
	compiler.Negate: types.Neg,
	compiler.Not:    types.Not,
}

// errorAt builds a RuntimeError located at the instruction at ip.
func (vm *VM) errorAt(chunk *compiler.Chunk, ip int, cause error, format string, args ...any) *RuntimeError {
	err := &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Span:    chunk.SpanAt(ip),
		Err:     cause,
	}
	vm.log.LogAttrs(context.Background(), slog.LevelDebug, "runtime error",
		slog.String("error", err.Message),
		slog.String("span", err.Span.String()),
	)
	return err
}
