package repl

import (
	"sort"
	"strings"

	"github.com/coregx/coregex"

	"github.com/kolkov/radish"
	"github.com/kolkov/radish/internal/token"
)

var (
	// commandPattern matches the name of a meta-command at line start.
	commandPattern = mustCompile(`^:[A-Za-z]+`)

	// wordPattern matches the partial word before the cursor for completion.
	wordPattern = mustCompile(`:?[A-Za-z_]*$`)
)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("repl: bad pattern " + pattern + ": " + err.Error())
	}
	return re
}

// Command is a parsed meta-command line such as ":ast 1 + 2".
type Command struct {
	Name string // Lower-case name without the colon
	Arg  string // Remaining text, trimmed
}

// ParseCommand splits a meta-command line. It returns false if line does
// not start with ':' followed by a letter.
func ParseCommand(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	loc := commandPattern.FindStringIndex(line)
	if loc == nil {
		return Command{}, false
	}
	return Command{
		Name: strings.ToLower(line[1:loc[1]]),
		Arg:  strings.TrimSpace(line[loc[1]:]),
	}, true
}

// command describes one meta-command.
type command struct {
	name    string
	alias   string
	usage   string
	help    string
	needArg bool
	run     func(s *Session, arg string) bool // Returns false to end the session
}

var commands []*command

func init() {
	commands = []*command{
		{name: "quit", alias: "q", usage: ":quit", help: "Exit the REPL", run: func(*Session, string) bool { return false }},
		{name: "help", alias: "h", usage: ":help", help: "Show this help", run: (*Session).help},
		{name: "tokens", usage: ":tokens EXPR", help: "Show the tokens of EXPR", needArg: true, run: (*Session).tokens},
		{name: "ast", usage: ":ast EXPR", help: "Show EXPR fully parenthesized", needArg: true, run: (*Session).ast},
		{name: "tree", usage: ":tree EXPR", help: "Show the syntax tree of EXPR with spans", needArg: true, run: (*Session).tree},
		{name: "dis", usage: ":dis EXPR", help: "Show the bytecode of EXPR", needArg: true, run: (*Session).dis},
	}
}

func lookupCommand(name string) *command {
	for _, c := range commands {
		if c.name == name || (c.alias != "" && c.alias == name) {
			return c
		}
	}
	return nil
}

// Complete returns completions for the word ending line: meta-command
// names at line start, keywords anywhere else.
func Complete(line string) []string {
	loc := wordPattern.FindStringIndex(line)
	if loc == nil || loc[0] == loc[1] {
		return nil
	}
	head, word := line[:loc[0]], line[loc[0]:]

	var candidates []string
	if strings.HasPrefix(word, ":") {
		if strings.TrimSpace(head) != "" {
			return nil
		}
		for _, c := range commands {
			candidates = append(candidates, ":"+c.name)
		}
	} else {
		candidates = token.Keywords()
	}
	sort.Strings(candidates)

	// word matched wordPattern, so it holds no regex metacharacters.
	prefix, err := coregex.Compile("^" + word)
	if err != nil {
		return nil
	}
	var out []string
	for _, c := range candidates {
		if c != word && prefix.MatchString(c) {
			out = append(out, head+c)
		}
	}
	return out
}

func (s *Session) help(string) bool {
	s.printf("radish %s\n", radish.Version)
	s.printf("Enter an expression to evaluate it. Meta-commands:\n")
	for _, c := range commands {
		s.printf("  %-14s %s\n", c.usage, c.help)
	}
	return true
}

func (s *Session) tokens(arg string) bool {
	for _, tok := range radish.Tokenize(arg) {
		s.printf("%4d..%-4d %-10s %q\n", tok.Start, tok.End, tok.Type, tok.Text)
	}
	return true
}

func (s *Session) ast(arg string) bool {
	if prog := s.compile(arg); prog != nil {
		s.printf("%s\n", prog.AST())
	}
	return true
}

func (s *Session) tree(arg string) bool {
	if prog := s.compile(arg); prog != nil {
		s.printf("%s", prog.DumpAST())
	}
	return true
}

func (s *Session) dis(arg string) bool {
	if prog := s.compile(arg); prog != nil {
		s.printf("%s", prog.Disassemble())
	}
	return true
}
