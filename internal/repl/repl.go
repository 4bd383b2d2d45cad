// Package repl implements the interactive radish session.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/kolkov/radish"
)

// ContinuationPrompt is shown while an unfinished expression is pending.
const ContinuationPrompt = "... "

// Session evaluates input one line at a time and writes results to out and
// diagnostics to errOut. A line that leaves an expression unfinished, such
// as "(1 +", is kept and joined with the next one.
type Session struct {
	config  radish.Config
	out     io.Writer
	errOut  io.Writer
	pending string
}

// NewSession creates a session. A nil config uses defaults.
func NewSession(out, errOut io.Writer, config *radish.Config) *Session {
	cfg := radish.Config{}
	if config != nil {
		cfg = *config
	}
	return &Session{
		config: cfg.WithDefaults(),
		out:    out,
		errOut: errOut,
	}
}

// Pending reports whether an unfinished expression awaits more input.
func (s *Session) Pending() bool {
	return s.pending != ""
}

// Reset drops any pending input.
func (s *Session) Reset() {
	s.pending = ""
}

// Prompt returns the prompt for the next line.
func (s *Session) Prompt() string {
	if s.Pending() {
		return ContinuationPrompt
	}
	return s.config.Prompt
}

// Eval handles one line of input. It returns false when the session
// should end.
func (s *Session) Eval(line string) bool {
	// Newlines are not whitespace to the scanner.
	line = strings.TrimRight(line, "\r\n")

	if !s.Pending() {
		if strings.TrimSpace(line) == "" {
			return true
		}
		if cmd, ok := ParseCommand(line); ok {
			return s.runCommand(cmd)
		}
	}

	src := line
	if s.Pending() {
		src = s.pending + " " + line
	}

	prog, err := radish.Compile(src, &s.config)
	if radish.IsIncomplete(err) {
		s.pending = src
		return true
	}
	s.pending = ""
	if err != nil {
		s.report(err)
		return true
	}

	for _, w := range prog.Warnings() {
		fmt.Fprintf(s.errOut, "%s\n", w)
	}
	v, err := prog.Run()
	if err != nil {
		s.report(err)
		return true
	}
	s.printf("%s\n", v)
	return true
}

func (s *Session) runCommand(cmd Command) bool {
	c := lookupCommand(cmd.Name)
	if c == nil {
		fmt.Fprintf(s.errOut, "unknown command :%s. Type :help for a list.\n", cmd.Name)
		return true
	}
	if c.needArg && cmd.Arg == "" {
		fmt.Fprintf(s.errOut, "usage: %s\n", c.usage)
		return true
	}
	return c.run(s, cmd.Arg)
}

// compile compiles src for a meta-command, reporting errors.
func (s *Session) compile(src string) *radish.Program {
	prog, err := radish.Compile(src, &s.config)
	if err != nil {
		s.report(err)
		return nil
	}
	return prog
}

func (s *Session) report(err error) {
	_, _ = io.WriteString(s.errOut, radish.FormatError(err))
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Run starts an interactive session on the terminal. It returns when the
// user enters :quit or ends input with Ctrl+D.
func Run(config *radish.Config, out, errOut io.Writer) error {
	s := NewSession(out, errOut, config)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(Complete)

	if path := s.config.HistoryFile; path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintf(out, "radish %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", radish.Version)

	for {
		line, err := ln.Prompt(s.Prompt())
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			s.Reset()
			continue
		case err != nil:
			return err
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !s.Eval(line) {
			return nil
		}
	}
}
