package walk

import (
	"strings"
	"testing"

	"fryc/depm"
	"fryc/generate"
	"fryc/report"
	"fryc/syntax"
	"fryc/types"

	"github.com/pkg/errors"
)

// prelude declares the builtins used by the tests.
const prelude = `
function add
  T: NumType
  a: T
  b: T
  return: T
  @builtin

function suspend
  @suspends
  @builtin

function throw
  v: Int32
  @throws
  @builtin
`

func newTestWalker(t *testing.T, src string) (*Walker, *depm.File) {
	t.Helper()

	w := NewWalker(generate.NewProgram())

	core := depm.NewFile("/core.fry", w.Root)
	core.Parse(prelude)
	w.ScanFile(core)

	f := depm.NewFile("/main.fry", w.Root)
	f.Parse(src)
	w.ScanFile(f)
	f.Include(core)

	return w, f
}

func expectError(t *testing.T, kind report.ErrorKind, f func()) *report.CompileError {
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

	return cerr
}

// probe compiles the statements of the body of the function `probe` and
// returns the last one.
func probe(w *Walker, f *depm.File) Expr {
	sym, _ := f.Decls.LookupLocal("probe")
	sw := f.Walker(sym.(*depm.Symbol).Index)
	sw.Expect(syntax.TagFunc)

	decl, scope := w.walkFuncHeader(sw, f.Decls)
	gen := w.Program.NewFunction("probe", decl.Suspends, decl.Throws)
	ctx := (&blockCtx{
		scope:       scope,
		fn:          gen,
		ret:         decl.Ret,
		suspendable: decl.Suspends,
		throwable:   decl.Throws,
	}).sub()

	var last Expr
	sw.Expect(syntax.TagBlock)
	for !sw.Take(syntax.TagBlockEnd) {
		last = w.walkStmt(sw, ctx)
	}

	return last
}

const identity = `
function id
  T: Type
  x: T
  return: T
{
  return x
}

function both
  T: Type
  a: T
  b: T
  return: T
{
  return a
}
`

func TestInference(t *testing.T) {
	cases := []struct {
		body string
		want types.Type
	}{
		{"id(x = 5)", types.Int32},
		{"var small: Int8\n  id(x = small)", types.Int8},
		{"var small: Int8\n  id<Int8>(x = small)", types.Int8},
		{"var small: Int8\n  id(T = Int8, x = small)", types.Int8},
		{"id(x = \"s\")", types.String},
		{"id(x = [1, 2])", types.ArrayOf(types.Int32)},
		{"both(b = 1, a = 2)", types.Int32},
	}

	for _, tc := range cases {
		w, f := newTestWalker(t, identity+"function probe\n{\n  "+tc.body+"\n}\n")
		if got := probe(w, f).Type(); !got.Equals(tc.want) {
			t.Errorf("%s: got %s, want %s", tc.body, got.Repr(), tc.want.Repr())
		}
	}
}

func TestInferenceIsDeterministic(t *testing.T) {
	// the same call site always infers the same type
	src := identity + "function probe\n{\n  var small: Int8\n  both(a = id(x = small), b = small)\n}\n"
	for i := 0; i < 10; i++ {
		w, f := newTestWalker(t, src)
		if got := probe(w, f).Type(); !got.Equals(types.Int8) {
			t.Fatalf("got %s", got.Repr())
		}
	}
}

func TestConcreteCandidatesWin(t *testing.T) {
	src := identity + `
function probe
  U: Type
  u: U
{
  both(a = u, b = 3)
}
`
	w, f := newTestWalker(t, src)

	// the concrete candidate is chosen and then `u` fails to check
	cerr := expectError(t, report.Type, func() { probe(w, f) })
	if !strings.Contains(cerr.Message, "argument `a`") {
		t.Errorf("got %s", cerr.Message)
	}
}

func TestBindingErrors(t *testing.T) {
	cases := []struct {
		body string
		kind report.ErrorKind
	}{
		{"id(y = 1)", report.Name},
		{"id()", report.Name},
		{"id(x = 1, x = 2)", report.Name},
		{"var small: Int8\n  both(a = 1, b = small)", report.Type},
		{"var small: Int8\n  id(T = Int32, x = small)", report.Type},
		{"id(T = 4, x = 1)", report.Type},
		{"id<Int32, Int32>(x = 1)", report.Type},
		{"add(a = \"x\", b = \"y\")", report.Type},
		{"Int32(x = 1)", report.Type},
		{"var x = 1\n  x = \"s\"", report.Type},
		{"var x = Int32", report.Type},
		{"if 1 {\n  }", report.Type},
		{"return 1", report.Type},
		{"suspend()", report.Codegen},
		{"throw(v = 1)", report.Codegen},
		{"var x = 1\n  var x = 2", report.Name},
	}

	for _, tc := range cases {
		w, f := newTestWalker(t, identity+"function probe\n{\n  "+tc.body+"\n}\n")
		expectError(t, tc.kind, func() { probe(w, f) })
	}
}

const declarations = `
struct Pair
  T: Type
{
  first: T
  second: T
}

union Either
  L: Type
  R: Type
{
  left: L
  right: R
}

trait Size
{
  function size
    return: Int32
}

implement Size
  for: Pair<Int32>
{
  function size
  {
    return 2
  }
}
`

func TestDeclarations(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{"Pair(first = 1, second = 2)", "Pair<Int32>"},
		{"Pair<String>(first = \"a\", second = \"b\").second", "String"},
		{"Either<Int32, String>(left = 1)", "Either<Int32, String>"},
		{"Either(L = Int32, R = String, right = \"r\").right?", "Bool"},
		{"Pair(first = 1, second = 2).size()", "Int32"},
		{"var s: Size = Pair(first = 1, second = 2)\n  s.size()", "Int32"},
	}

	for _, tc := range cases {
		w, f := newTestWalker(t, declarations+"function probe\n{\n  "+tc.body+"\n}\n")
		if got := probe(w, f).Type().Repr(); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.body, got, tc.want)
		}
	}
}

func TestDeclarationErrors(t *testing.T) {
	cases := []struct {
		body string
		kind report.ErrorKind
	}{
		{"Pair(first = 1, second = \"x\")", report.Type},
		{"Pair(first = 1)", report.Name},
		{"Either(left = 1)", report.Type},
		{"Either<Int32, Int32>(left = 1, right = 2)", report.Type},
		{"Either<Int32, Int32>(middle = 1)", report.Name},
		{"Pair(first = 1, second = 2).third", report.Name},
		{"Pair(first = 1, second = 2).first?", report.Type},
		{"var s: Size = Pair(first = \"a\", second = \"b\")", report.Type},
		{"Pair<Int32>", report.Type},
	}

	for _, tc := range cases {
		w, f := newTestWalker(t, declarations+"function probe\n{\n  "+tc.body+"\n}\n")
		expectError(t, tc.kind, func() { probe(w, f) })
	}
}

func TestSymbolsCompileOnce(t *testing.T) {
	w, f := newTestWalker(t, declarations+identity+`
function loop
  n: Int32
  return: Int32
{
  return loop(n = n)
}
`)

	w.CompileFile(f, false)
	count := w.Program.SymbolCount()

	entities := make([]interface{}, len(f.Symbols))
	for i, sym := range f.Symbols {
		entities[i] = sym.Resolve(w)
	}

	w.CompileFile(f, false)
	for i, sym := range f.Symbols {
		if sym.Resolve(w) != entities[i] {
			t.Errorf("`%s` resolved to a new entity", sym.Name)
		}
	}

	if w.Program.SymbolCount() != count {
		t.Errorf("symbol count changed from %d to %d", count, w.Program.SymbolCount())
	}
}

func TestCyclicTypes(t *testing.T) {
	w, f := newTestWalker(t, `
struct Node
{
  value: Int32
  rest: List
}

union List
{
  empty: Int32
  node: Node
}
`)

	w.CompileFile(f, false)

	sym, _ := f.Decls.LookupLocal("Node")
	node := sym.(*depm.Symbol).Resolve(w).(*StructCtor)
	if node.Fields[1].Type.Repr() != "List" {
		t.Errorf("got %s", node.Fields[1].Type.Repr())
	}
}

func TestImplErrors(t *testing.T) {
	cases := []struct {
		name, src string
		kind      report.ErrorKind
	}{
		{"missing method", "implement Size\n  for: Int32\n{\n}", report.Name},
		{"unknown method", "implement Size\n  for: Int32\n{\n  function size\n  {\n    return 1\n  }\n  function other\n  {\n  }\n}", report.Name},
		{"missing for", "implement Size\n{\n}", report.Name},
		{"not a trait", "implement Int32\n  for: Int32\n{\n}", report.Type},
		{"duplicate", "implement Size\n  for: Pair<Int32>\n{\n  function size\n  {\n    return 1\n  }\n}", report.Name},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, f := newTestWalker(t, declarations+tc.src)
			expectError(t, tc.kind, func() { w.CompileFile(f, false) })
		})
	}
}
