package generate

import (
	"bytes"
	"strings"
	"testing"

	"fryc/jsrun"
	"fryc/report"

	"github.com/pkg/errors"
)

func TestSymbolGenerator(t *testing.T) {
	sg := NewSymbolGenerator("_")

	got := []string{
		sg.Generate("x"),
		sg.Generate("x"),
		sg.Generate("x_1"), // collides with the second `x`
		sg.Generate("x"),
		sg.Generate("add-one"),
	}

	want := []string{"_x", "_x_1", "_x_1_1", "_x_2", "_add$one"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d: got %s, want %s", i, got[i], want[i])
		}
	}

	if sg.Count() != len(want) {
		t.Errorf("got count %d", sg.Count())
	}
}

func expectCodegenError(t *testing.T, f func()) {
	t.Helper()

	var err error
	func() {
		defer report.Catch(&err)
		f()
	}()

	var cerr *report.CompileError
	if !errors.As(err, &cerr) || cerr.Kind != report.Codegen {
		t.Fatalf("expected codegen error, got %v", err)
	}
}

func TestSplitRequiresSuspendableBlock(t *testing.T) {
	p := NewProgram()
	fn := p.NewFunction("flat", false, false)

	expectCodegenError(t, func() {
		fn.Root().Split(func(next string) string { return next + "()" })
	})
}

func TestFlatFunction(t *testing.T) {
	p := NewProgram()
	fn := p.NewFunction("add-one", false, false)
	n := fn.Param("n")
	fn.Root().Insert("return (" + n + " + 1) | 0;")

	src := fn.String()
	if !strings.HasPrefix(src, "function $add$one(_n) {") {
		t.Fatalf("unexpected function header:\n%s", src)
	}

	p.Export("add-one", fn.Sym)

	r := jsrun.New(&bytes.Buffer{})
	if err := r.Load(p.String()); err != nil {
		t.Fatal(err)
	}

	v, err := r.Call("add-one", 5)
	if err != nil {
		t.Fatal(err)
	}

	if v.ToInteger() != 6 {
		t.Fatalf("got %v", v)
	}
}

func TestChainedFunction(t *testing.T) {
	p := NewProgram()

	// $inc(x, ret) passes x + 1 to its continuation
	inc := p.NewFunction("inc", true, false)
	x := inc.Param("x")
	inc.Root().Insert("return ret(" + x + " + 1);")

	// $twice(x, ret) calls $inc twice through two frames
	twice := p.NewFunction("twice", true, false)
	tx := twice.Param("x")
	b := twice.Root()
	v1 := b.Split(func(next string) string { return inc.Sym + "(" + tx + ", " + next + ")" })
	v1 = b.Temp(v1)
	v2 := b.Split(func(next string) string { return inc.Sym + "(" + v1 + ", " + next + ")" })
	b.Insert("return ret(" + v2 + ");")

	if !b.Chained() {
		t.Fatal("block should be chained")
	}

	expectCodegenError(t, func() { b.NativeBody() })

	p.Export("twice", twice.Sym)

	r := jsrun.New(&bytes.Buffer{})
	if err := r.Load(p.String()); err != nil {
		t.Fatal(err)
	}

	c, err := r.CallSuspending("twice", false, 1)
	if err != nil {
		t.Fatal(err)
	}

	if c.Returns != 1 || c.Value.ToInteger() != 3 {
		t.Fatalf("unexpected completion: %+v", c)
	}
}

func TestFallOffEndInvokesContinuation(t *testing.T) {
	p := NewProgram()
	fn := p.NewFunction("noop", true, false)
	sub := fn.Root().Child()
	sub.Insert("var unused = 1;")
	fn.Root().Insert("return " + sub.SuspendableFunction() + "(cont);")
	p.Export("noop", fn.Sym)

	r := jsrun.New(&bytes.Buffer{})
	if err := r.Load(p.String()); err != nil {
		t.Fatal(err)
	}

	c, err := r.CallSuspending("noop", false)
	if err != nil {
		t.Fatal(err)
	}

	if c.Returns != 1 {
		t.Fatalf("continuation invoked %d times", c.Returns)
	}
}

func TestThrowingSuspendingFunctionSignature(t *testing.T) {
	p := NewProgram()
	fn := p.NewFunction("risky", true, true)

	if fn.Root().Escape != "exc" || !fn.Root().Throwable {
		t.Fatal("root of a suspending throwing function escapes through exc")
	}

	if !strings.HasPrefix(fn.String(), "function $risky(exc, ret) {") {
		t.Fatalf("unexpected header:\n%s", fn.String())
	}
}

func TestRawSuspendingFunctionContinuesThroughRet(t *testing.T) {
	p := NewProgram()
	fn := p.NewFunction("now", true, false)
	fn.RawParam("x")
	fn.SetRaw("return ret(x * 10);")

	if !strings.Contains(fn.String(), "function $now(x, ret) {\nvar cont = FryCoroWrap(ret);\n") {
		t.Fatalf("unexpected raw function:\n%s", fn.String())
	}

	p.Export("now", fn.Sym)

	r := jsrun.New(&bytes.Buffer{})
	if err := r.Load(p.String()); err != nil {
		t.Fatal(err)
	}

	c, err := r.CallSuspending("now", false, 4)
	if err != nil {
		t.Fatal(err)
	}

	if c.Returns != 1 || c.Value.ToInteger() != 40 {
		t.Fatalf("unexpected completion: %+v", c)
	}
}
