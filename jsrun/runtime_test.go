package jsrun

import (
	"bytes"
	"strings"
	"testing"
)

const program = `
function $double(x) { return x * 2; }
function $later(x, ret) { return ret(x + 1); }
function $fail(x, exc, ret) { return exc(x); }
function $noisy() { print("hello"); }
var FryExports = {"double": $double, "later": $later, "fail": $fail, "noisy": $noisy};
`

func TestCallExports(t *testing.T) {
	out := &bytes.Buffer{}
	r := New(out)
	if err := r.Load(program); err != nil {
		t.Fatal(err)
	}

	v, err := r.Call("double", 21)
	if err != nil {
		t.Fatal(err)
	}

	if v.ToInteger() != 42 {
		t.Errorf("got %v", v)
	}

	if _, err := r.Call("noisy"); err != nil {
		t.Fatal(err)
	}

	if out.String() != "hello\n" {
		t.Errorf("got output %q", out.String())
	}

	if _, err := r.Call("missing"); err == nil {
		t.Error("expected an error for a missing export")
	}
}

func TestCallSuspending(t *testing.T) {
	r := New(&bytes.Buffer{})
	if err := r.Load(program); err != nil {
		t.Fatal(err)
	}

	c, err := r.CallSuspending("later", false, 1)
	if err != nil {
		t.Fatal(err)
	}

	if c.Returns != 1 || c.Value.ToInteger() != 2 {
		t.Errorf("unexpected completion %+v", c)
	}

	c, err = r.CallSuspending("fail", true, 7)
	if err != nil {
		t.Fatal(err)
	}

	if c.Returns != 0 || c.Throws != 1 || c.Thrown.ToInteger() != 7 {
		t.Errorf("unexpected completion %+v", c)
	}
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	r := New(&bytes.Buffer{})
	err := r.Load("function (")
	if err == nil || !strings.Contains(err.Error(), "loading program") {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
}
