// radish - expression evaluator
//
// Evaluates a radish expression from the command line, a file or standard
// input, or starts an interactive session when given nothing to evaluate.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kolkov/radish"
	"github.com/kolkov/radish/internal/repl"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	shortUsage = "usage: radish [-c config.yaml] [-check] [-trace] [-O0] [-d | -dt | -da] [-e expr | file | -]"
	longUsage  = `Input:
  -e expr           evaluate expr
  file              evaluate the contents of file ("-" reads standard input)
                    with no input, start the interactive REPL

Options:
  -c file           load configuration from a YAML file
  -check            reject programs with static type errors before running
  -trace            log every executed instruction to stderr
  -O0               disable constant folding

Debugging arguments:
  -d                print the syntax tree with spans and exit
  -dt               print the tokens and exit
  -da               print bytecode assembly and exit

Other:
  -h, --help        show this help message
  -version          show radish version and exit
`
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit status.
//
//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Parse arguments by hand so that "-e" can be followed by an
	// expression starting with '-', such as "-e -1".
	var (
		configFile string
		expr       *string
		check      bool
		trace      bool
		noOptimize bool
		debugAST   bool
		debugToks  bool
		debugAsm   bool
	)

	var i int
	for i = 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-c":
			if i+1 >= len(args) {
				return errorf(stderr, "flag needs an argument: -c")
			}
			i++
			configFile = args[i]
		case "-e":
			if i+1 >= len(args) {
				return errorf(stderr, "flag needs an argument: -e")
			}
			i++
			expr = &args[i]
		case "-check":
			check = true
		case "-trace":
			trace = true
		case "-O0":
			noOptimize = true
		case "-d":
			debugAST = true
		case "-dt":
			debugToks = true
		case "-da":
			debugAsm = true
		case "-h", "--help":
			fmt.Fprintf(stdout, "radish %s - expression evaluator\n\n%s\n\n%s", version, shortUsage, longUsage)
			return 0
		case "-version", "--version":
			fmt.Fprintf(stdout, "radish version %s (library %s)\n", version, radish.Version)
			return 0
		default:
			switch {
			case strings.HasPrefix(arg, "-c"):
				configFile = arg[2:]
			case strings.HasPrefix(arg, "-e"):
				e := arg[2:]
				expr = &e
			default:
				return errorf(stderr, "flag provided but not defined: %s", arg)
			}
		}
	}
	rest := args[i:]

	config := &radish.Config{}
	if configFile != "" {
		loaded, err := radish.LoadConfigFile(configFile)
		if err != nil {
			return errorf(stderr, "%v", err)
		}
		config = loaded
	}

	// Flags override the configuration file.
	if check {
		config.TypeCheck = true
	}
	if trace {
		config.Trace = true
	}
	if noOptimize {
		off := false
		config.Optimize = &off
	}
	if config.Trace {
		config.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Determine the source.
	var src string
	switch {
	case expr != nil:
		if len(rest) > 0 {
			return errorf(stderr, "unexpected argument after -e: %s", rest[0])
		}
		src = *expr
	case len(rest) == 1:
		text, name, err := readSource(rest[0], stdin)
		if err != nil {
			return errorf(stderr, "%v", err)
		}
		src = text
		if config.Name == "" {
			config.Name = name
		}
	case len(rest) > 1:
		return errorf(stderr, "%s", shortUsage)
	default:
		if err := repl.Run(config, stdout, stderr); err != nil {
			return errorf(stderr, "%v", err)
		}
		return 0
	}

	// Debug output modes
	if debugToks {
		for _, tok := range radish.Tokenize(src) {
			fmt.Fprintf(stdout, "%d:%d\t%d..%d\t%s\t%q\n", tok.Line, tok.Column, tok.Start, tok.End, tok.Type, tok.Text)
		}
		return 0
	}

	prog, err := radish.Compile(src, config)
	if err != nil {
		fmt.Fprint(stderr, radish.FormatError(err))
		return 1
	}
	for _, w := range prog.Warnings() {
		fmt.Fprintf(stderr, "radish: %s\n", w)
	}

	if debugAST {
		fmt.Fprint(stdout, prog.DumpAST())
		return 0
	}
	if debugAsm {
		fmt.Fprint(stdout, prog.Disassemble())
		return 0
	}

	v, err := prog.Run()
	if err != nil {
		fmt.Fprint(stderr, radish.FormatError(err))
		return 1
	}
	fmt.Fprintln(stdout, v)
	return 0
}

// readSource reads a program file, or stdin for "-". The trailing line
// terminator is dropped since the scanner does not accept newlines.
func readSource(path string, stdin io.Reader) (text, name string, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
		name = "<stdin>"
	} else {
		data, err = os.ReadFile(path)
		name = path
	}
	if err != nil {
		return "", "", fmt.Errorf("cannot read %s: %w", name, err)
	}
	return strings.TrimRight(string(data), "\r\n"), name, nil
}

// errorf prints a formatted error message and returns exit status 1.
func errorf(stderr io.Writer, format string, args ...any) int {
	fmt.Fprintf(stderr, "radish: "+format+"\n", args...)
	return 1
}
