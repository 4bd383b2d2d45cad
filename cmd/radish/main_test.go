package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI runs the command with args and stdin and returns its outputs.
func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunExpr(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"precedence", []string{"-e", "1 + 2 * 3"}, 0, "7\n", ""},
		{"negative expr", []string{"-e", "-(4 - 6) / 2"}, 0, "1\n", ""},
		{"attached", []string{"-etrue"}, 0, "true\n", ""},
		{"runtime error", []string{"-e", "1 + true"}, 1, "", "runtime error: operands must be"},
		{"check", []string{"-check", "-e", "1 + true"}, 1, "", "type error:"},
		{"syntax error", []string{"-e", "(1 + 2"}, 1, "", "--> <input>:1:7"},
		{"unknown flag", []string{"-x"}, 1, "", "flag provided but not defined: -x"},
		{"missing arg", []string{"-e"}, 1, "", "flag needs an argument: -e"},
		{"extra arg", []string{"-e", "1", "file"}, 1, "", "unexpected argument"},
		{"help", []string{"-h"}, 0, "usage: radish", ""},
		{"version", []string{"-version"}, 0, "radish version dev", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr %q)", code, tt.wantCode, errOut)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("stdout = %q, want containing %q", out, tt.wantOut)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want containing %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRunDebugModes(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"-d", "BinaryExpr Add 0..5"},
		{"-dt", "1:3\t2..3\tPlus\t\"+\""},
		{"-da", "=== script ==="},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			code, out, _ := runCLI(t, "", tt.flag, "-e", "1 + 2")
			if code != 0 {
				t.Fatalf("exit = %d", code)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("stdout = %q, want containing %q", out, tt.want)
			}
		})
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.rd")
	if err := os.WriteFile(path, []byte("2 * (3 + 4)\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "", path)
	if code != 0 || out != "14\n" {
		t.Errorf("run file = %d %q %q", code, out, errOut)
	}

	bad := filepath.Join(dir, "bad.rd")
	if err := os.WriteFile(bad, []byte("1 + 猫\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut = runCLI(t, "", bad)
	if code != 1 || !strings.Contains(errOut, "--> "+bad+":1:5") {
		t.Errorf("bad file = %d %q", code, errOut)
	}

	code, _, errOut = runCLI(t, "", filepath.Join(dir, "missing.rd"))
	if code != 1 || !strings.Contains(errOut, "cannot read") {
		t.Errorf("missing file = %d %q", code, errOut)
	}
}

func TestRunStdin(t *testing.T) {
	code, out, _ := runCLI(t, "8 / 4\n", "-")
	if code != 0 || out != "2\n" {
		t.Errorf("stdin = %d %q", code, out)
	}
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radish.yaml")
	if err := os.WriteFile(path, []byte("type_check: true\nname: cfg\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := runCLI(t, "", "-c", path, "-e", "-true")
	if code != 1 || !strings.Contains(errOut, "type error:") || !strings.Contains(errOut, "--> cfg:1:1") {
		t.Errorf("config run = %d %q", code, errOut)
	}

	code, _, errOut = runCLI(t, "", "-c", filepath.Join(t.TempDir(), "none.yaml"), "-e", "1")
	if code != 1 || !strings.Contains(errOut, "config:") {
		t.Errorf("missing config = %d %q", code, errOut)
	}
}

func TestRunTrace(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-trace", "-O0", "-e", "1 + 2")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(errOut, "op=AddNum") {
		t.Errorf("stderr = %q, want trace records", errOut)
	}
}
