package syntax

import (
	"testing"

	"fryc/report"

	"github.com/pkg/errors"
)

func walkerFor(t *testing.T, src string) *Walker {
	t.Helper()
	return NewWalker(src, parseOrFail(t, src), 0)
}

func TestWalkerReadsLeaves(t *testing.T) {
	w := walkerFor(t, "function add-one\n  @js \"return 1;\"\n{ f(x = -42) }\n")

	w.Expect(TagFunc)
	if name := w.ReadIdent(); name != "add-one" {
		t.Errorf("got name %q", name)
	}

	if attr := w.ReadIdent(); attr != "js" {
		t.Errorf("got attribute %q", attr)
	}

	if body := w.ReadString(); body != "return 1;" {
		t.Errorf("got raw body %q", body)
	}

	w.Expect(TagBlock)
	if w.Kind() != TagIdent || w.ReadIdent() != "f" {
		t.Fatal("expected call target")
	}

	w.Expect(TagCall)
	if arg := w.ReadIdent(); arg != "x" {
		t.Errorf("got argument %q", arg)
	}

	if n := w.ReadNumber(); n != -42 {
		t.Errorf("got number %d", n)
	}

	w.Expect(TagCallEnd)
	w.Expect(TagBlockEnd)
	w.Expect(TagFuncEnd)

	if !w.Done() || w.Kind() != TagEOF {
		t.Fatal("walker should be at the end")
	}
}

func TestWalkerTake(t *testing.T) {
	w := walkerFor(t, "function f\n")

	if w.Take(TagStruct) {
		t.Fatal("Take matched the wrong kind")
	}

	if w.Index() != 0 {
		t.Fatal("failed Take must not advance")
	}

	if !w.Take(TagFunc) || w.Index() != 1 {
		t.Fatal("Take did not advance on a match")
	}
}

func expectKind(t *testing.T, kind report.ErrorKind, f func()) {
	t.Helper()

	var err error
	func() {
		defer report.Catch(&err)
		f()
	}()

	var cerr *report.CompileError
	if !errors.As(err, &cerr) || cerr.Kind != kind {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}

func TestWalkerFailures(t *testing.T) {
	w := walkerFor(t, "include \"a\\nb\"\n")

	expectKind(t, report.Structural, func() { w.Expect(TagFunc) })

	w.Expect(TagInclude)
	expectKind(t, report.Unsupported, func() { w.ReadString() })

	w.Expect(TagIncludeEnd)
	expectKind(t, report.Structural, func() { w.Next() })
}
