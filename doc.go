// Package radish provides the front-end and evaluator of the radish
// expression language.
//
// Radish source is scanned one grapheme cluster at a time, parsed by a
// recursive descent parser into a span-annotated syntax tree, compiled to
// bytecode and run on a small stack machine. Every diagnostic carries the
// exact source range it refers to, measured in user-perceived characters.
//
// # Quick Start
//
// For simple one-off evaluation:
//
//	v, err := radish.Eval("-(4 - 6) / 2", nil)
//	// v.String() == "1"
//
// # Compiled Programs
//
// For repeated evaluation of the same expression:
//
//	prog, err := radish.Compile("1 + 2 * 3", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := prog.Run()
//
// # Configuration
//
// The [Config] type controls the source name used in diagnostics, the
// optional static type check, constant folding and instruction tracing.
// It can be loaded from YAML with [LoadConfig] or [LoadConfigFile].
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: lexical and syntax errors
//   - [CompileError]: static type errors (with Config.TypeCheck)
//   - [RuntimeError]: operators applied to the wrong kinds of value
//
// [FormatError] renders any of them as source snippets with carets under
// the offending characters.
//
// # Thread Safety
//
// A compiled [Program] is not safe for concurrent use: string constants
// are shared mutable buffers. Compile once per goroutine.
package radish
