package cmd

import (
	"bytes"
	"testing"
)

func TestBraceDepth(t *testing.T) {
	tests := []struct {
		src   string
		depth int
	}{
		{"print(v = 1)", 0},
		{"function f\n{", 1},
		{"if c { x() }", 0},
		{"while c {\n  if d {", 2},
		{"print(v = \"{\")", 0},
		{"var x = 1 # {", 0},
	}

	for _, test := range tests {
		if d := braceDepth(test.src); d != test.depth {
			t.Errorf("braceDepth(%q) = %d, want %d", test.src, d, test.depth)
		}
	}
}

func TestIsDeclaration(t *testing.T) {
	for _, src := range []string{"function f\n{\n}", "struct P\n{\n  x: Int32\n}", "  include \"lib\""} {
		if !isDeclaration(src) {
			t.Errorf("%q is a declaration", src)
		}
	}

	for _, src := range []string{"print(v = 1)", "var x = 2", "functional()"} {
		if isDeclaration(src) {
			t.Errorf("%q is not a declaration", src)
		}
	}
}

func TestSessionEval(t *testing.T) {
	var out bytes.Buffer
	s := newSession("/repl", &out)

	inputs := []string{
		"function twice\n  n: Int32\n  return: Int32\n{\n  return add(a = n, b = n)\n}",
		"print(v = twice(n = 21))",
		"var x = 2\nprint(v = mul(a = x, b = 5))",
	}

	for _, in := range inputs {
		if err := s.Eval(in); err != nil {
			t.Fatalf("Eval(%q): %s", in, err)
		}
	}

	if got := out.String(); got != "42\n10\n" {
		t.Errorf("got output %q", got)
	}

	if len(s.decls) != 1 {
		t.Errorf("got %d declarations, want 1", len(s.decls))
	}
}

func TestSessionRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	s := newSession("/repl", &out)

	if err := s.Eval("function broken\n{\n  return nope\n}"); err == nil {
		t.Error("expected a compile error")
	}

	if len(s.decls) != 0 {
		t.Error("a failed declaration must not be kept")
	}

	if err := s.Eval("throw(v = 3)"); err == nil {
		t.Error("expected an uncaught throw")
	}

	if err := s.Eval("print(v = 1)"); err != nil {
		t.Errorf("session unusable after errors: %s", err)
	}
}
