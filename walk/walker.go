package walk

import (
	"fmt"

	"fryc/depm"
	"fryc/generate"
	"fryc/report"
	"fryc/syntax"
	"fryc/types"
)

// Walker compiles the declarations of Fry files into a target program.  It
// is the resolver of every symbol in the build.
type Walker struct {
	// Program receives the generated functions.
	Program *generate.Program

	// Root is the scope of builtin constants enclosing every file.
	Root *depm.SymbolScope

	impls      []*Impl
	implsByKey map[string]*Impl
	pending    []pendingImpl
}

// pendingImpl is an `implement` declaration whose header has not been
// compiled yet.
type pendingImpl struct {
	file  *depm.File
	index int
}

// NewWalker creates a walker generating into p.
func NewWalker(p *generate.Program) *Walker {
	w := &Walker{
		Program:    p,
		implsByKey: make(map[string]*Impl),
	}

	w.Root = w.newUniverse()
	return w
}

// blockCtx is the context in which statements and expressions are compiled.
type blockCtx struct {
	scope depm.Scope

	// locals is the innermost scope in which variables are defined.
	locals *depm.SymbolScope

	// fn is the function receiving the block's variables.  It is nil when
	// compiling type expressions.
	fn *generate.Function

	ret                    types.Type
	suspendable, throwable bool
}

// typeCtx returns a context for compiling type expressions in a scope.
func typeCtx(scope depm.Scope) *blockCtx {
	return &blockCtx{scope: scope, ret: types.Void}
}

// sub returns a context for a nested block.
func (ctx *blockCtx) sub() *blockCtx {
	n := *ctx
	n.locals = depm.NewSymbolScope(ctx.scope)
	n.scope = n.locals
	return &n
}

// throwing returns a context in which throws are caught.
func (ctx *blockCtx) throwing() *blockCtx {
	n := *ctx
	n.throwable = true
	return &n
}

// -----------------------------------------------------------------------------

// ScanFile declares the top-level symbols of a parsed file without compiling
// them and returns the paths the file includes in order.
func (w *Walker) ScanFile(f *depm.File) (includes []string) {
	defer report.InFile(f.AbsPath)

	sw := f.Walker(0)
	for !sw.Done() {
		idx := sw.Index()

		switch sw.Kind() {
		case syntax.TagInclude:
			sw.Next()
			includes = append(includes, sw.ReadString())
			sw.Expect(syntax.TagIncludeEnd)
			continue
		case syntax.TagFunc:
			w.declare(f, sw, depm.SKFunc)
		case syntax.TagStruct:
			w.declare(f, sw, depm.SKStruct)
		case syntax.TagUnion:
			w.declare(f, sw, depm.SKUnion)
		case syntax.TagTrait:
			w.declare(f, sw, depm.SKTrait)
		case syntax.TagImplement:
			f.Impls = append(f.Impls, idx)
			w.pending = append(w.pending, pendingImpl{file: f, index: idx})
		default:
			report.Raise(report.Structural, "unexpected `%s` tag at the top level", sw.Kind())
		}

		sw = f.Walker(idx)
		sw.Skip()
	}

	return
}

func (w *Walker) declare(f *depm.File, sw *syntax.Walker, kind depm.SymbolKind) {
	idx := sw.Index()
	sw.Next()

	f.Declare(&depm.Symbol{
		Name:  sw.ReadIdent(),
		Kind:  kind,
		File:  f,
		Index: idx,
	})
}

// CompileSymbol compiles the declaration a symbol names.
func (w *Walker) CompileSymbol(sym *depm.Symbol) interface{} {
	defer report.InFile(sym.File.AbsPath)

	switch sym.Kind {
	case depm.SKFunc:
		return w.walkFuncDef(sym)
	case depm.SKStruct:
		return w.walkStructDef(sym)
	case depm.SKUnion:
		return w.walkUnionDef(sym)
	case depm.SKTrait:
		return w.walkTraitDef(sym)
	}

	report.Raise(report.Structural, "unknown symbol kind")
	return nil
}

// CompileFile compiles every declaration and implementation of a file.  When
// export is set, the file's functions are exposed to the host.
func (w *Walker) CompileFile(f *depm.File, export bool) {
	for _, sym := range f.Symbols {
		entity := sym.Resolve(w)

		if fn, ok := entity.(*Function); ok && export && fn.Decl.Sym != "" {
			w.Program.Export(fn.Decl.Name, fn.Decl.Sym)
		}
	}

	w.loadImpls()
	for _, impl := range w.impls {
		if impl.file == f {
			w.compileImpl(impl)
		}
	}
}

// Lookup resolves a name in a scope to its compiled value.
func (w *Walker) Lookup(scope depm.Scope, name string) interface{} {
	v := depm.Lookup(scope, name)
	if sym, ok := v.(*depm.Symbol); ok {
		return sym.Resolve(w)
	}

	return v
}

// valueOf turns a scope value into an expression.
func (w *Walker) valueOf(v interface{}) Expr {
	switch vv := v.(type) {
	case *depm.Symbol:
		return w.valueOf(vv.Resolve(w))
	case *depm.Variable, *depm.ClosureVariable:
		return &Load{Var: vv}
	case Expr:
		return vv
	case typeCtor:
		if len(vv.params()) == 0 {
			return &Const{Value: types.NewConstructedType(vv, nil)}
		}
	}

	return &Const{Value: v}
}

// describe names a compile-time value in error messages.
func describe(v interface{}) string {
	switch vv := v.(type) {
	case types.Type:
		return fmt.Sprintf("type `%s`", vv.Repr())
	case types.Bound:
		return fmt.Sprintf("trait `%s`", vv.Repr())
	case *Function:
		return fmt.Sprintf("function `%s`", vv.Decl.Name)
	case *FuncRef:
		return fmt.Sprintf("function `%s`", vv.Fn.Decl.Name)
	case typeCtor:
		return fmt.Sprintf("generic type `%s`", vv.Name())
	case *MethodRef:
		return fmt.Sprintf("method `%s`", vv.Name)
	default:
		return "this expression"
	}
}
