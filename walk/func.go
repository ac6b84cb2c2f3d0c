package walk

import (
	"fryc/depm"
	"fryc/generate"
	"fryc/report"
	"fryc/syntax"
	"fryc/types"
)

// signature is the list of formal parameters of a callable.
type signature struct {
	TypeParams []*types.TypeVariable
	Params     []param
}

// FuncDecl is the compiled header of a function.
type FuncDecl struct {
	Name string
	Sig  *signature
	Ret  types.Type

	Builtin  bool
	Suspends bool
	Throws   bool

	// Sym is the target symbol of the function.  It is empty for builtins
	// and trait method signatures.
	Sym string

	raw    string
	hasRaw bool
}

// Params returns the names of the value parameters.
func (fd *FuncDecl) Params() []string {
	names := make([]string, len(fd.Sig.Params))
	for i, p := range fd.Sig.Params {
		names[i] = p.Name
	}

	return names
}

// instantiate returns a copy of the declaration with its parameter and
// return types substituted.
func (fd *FuncDecl) instantiate(m types.Mapping) *FuncDecl {
	inst := *fd
	inst.Sig = &signature{TypeParams: fd.Sig.TypeParams}
	for _, p := range fd.Sig.Params {
		inst.Sig.Params = append(inst.Sig.Params, param{Name: p.Name, Type: types.Subst(p.Type, m)})
	}

	inst.Ret = types.Subst(fd.Ret, m)
	return &inst
}

// checkContext verifies that a call to the declaration may appear in ctx.
func (fd *FuncDecl) checkContext(ctx *blockCtx) {
	if fd.Suspends && !ctx.suspendable {
		report.Raise(report.Codegen, "cannot call suspending function `%s` outside of a suspendable context", fd.Name)
	}

	if fd.Throws && !ctx.throwable {
		report.Raise(report.Codegen, "cannot call throwing function `%s` outside of a throwable context", fd.Name)
	}
}

// Function is a compiled function declaration.
type Function struct {
	Decl *FuncDecl
}

// FuncRef is a function with explicitly supplied type arguments.
type FuncRef struct {
	Fn       *Function
	Explicit types.Mapping
}

func (f *Function) instantiate(w *Walker, args []interface{}) interface{} {
	targs := checkTypeArgs(f.Decl.Name, f.Decl.Sig.TypeParams, args)

	m := make(types.Mapping, len(targs))
	for i, t := range targs {
		m[f.Decl.Sig.TypeParams[i]] = t
	}

	return &FuncRef{Fn: f, Explicit: m}
}

// Call compiles a call to the function with named arguments.
func (f *Function) Call(w *Walker, ctx *blockCtx, explicit types.Mapping, args []namedArg) Expr {
	decl := f.Decl
	decl.checkContext(ctx)

	ba := w.bindArgs(decl.Sig, explicit, args, decl.Name)
	ret := types.Subst(decl.Ret, ba.mapping)

	if decl.Builtin {
		return builtins[decl.Name](ba, ret)
	}

	return &Call{
		Callee:   decl.Sym,
		Args:     ba.args,
		Perm:     ba.perm,
		Ret:      ret,
		Wrap:     narrowWidth(decl.Ret, ret),
		suspends: decl.Suspends,
		throws:   decl.Throws,
	}
}

// narrowWidth returns the width a call result must be truncated to.  Generic
// bodies are compiled once and do their arithmetic at 32 bits, so a result
// whose declared type is not an integer but which is instantiated as a
// narrower one is wrapped by the caller.
func narrowWidth(declared, actual types.Type) int {
	if _, ok := declared.(*types.IntType); ok {
		return 0
	}

	it, ok := actual.(*types.IntType)
	if !ok || it == types.Bool || it.Bits >= 32 {
		return 0
	}

	return it.Bits
}

// -----------------------------------------------------------------------------

// walkFuncHeader compiles the name, fields and attributes of a function whose
// `func` tag has been consumed.  It returns the declaration and the scope
// holding its type parameters.
func (w *Walker) walkFuncHeader(sw *syntax.Walker, parent depm.Scope) (*FuncDecl, *depm.SymbolScope) {
	decl := &FuncDecl{
		Name: sw.ReadIdent(),
		Sig:  &signature{},
		Ret:  types.Void,
	}

	scope := depm.NewSymbolScope(parent)
	seen := make(map[string]bool)

	for {
		switch sw.Kind() {
		case syntax.TagFieldName:
			name := sw.ReadIdent()
			if seen[name] {
				report.Raise(report.Name, "multiple fields named `%s` in function `%s`", name, decl.Name)
			}
			seen[name] = true

			v := w.walkConst(sw, typeCtx(scope))
			switch vv := v.(type) {
			case types.Bound:
				tv := types.NewTypeVariable(name, vv)
				scope.Define(name, tv)
				decl.Sig.TypeParams = append(decl.Sig.TypeParams, tv)
			case types.Type:
				if name == "return" {
					if !vv.Equals(types.Void) && !types.IsValueType(vv) {
						report.Raise(report.Type, "`%s` is not a value type", vv.Repr())
					}

					decl.Ret = vv
				} else if types.IsValueType(vv) {
					decl.Sig.Params = append(decl.Sig.Params, param{Name: name, Type: vv})
				} else {
					report.Raise(report.Type, "`%s` is not a value type", vv.Repr())
				}
			default:
				report.Raise(report.Type, "field `%s` of function `%s` expects a type but got %s", name, decl.Name, describe(v))
			}
		case syntax.TagAttr:
			switch attr := sw.ReadIdent(); attr {
			case "builtin":
				decl.Builtin = true
			case "suspends":
				decl.Suspends = true
			case "throws":
				decl.Throws = true
			case "js":
				if sw.Kind() != syntax.TagString {
					report.Raise(report.Type, "attribute `@js` requires a string")
				}

				decl.raw = sw.ReadString()
				decl.hasRaw = true
			default:
				report.Raise(report.Name, "unknown attribute `@%s`", attr)
			}
		default:
			return decl, scope
		}
	}
}

// walkFuncDef compiles a top-level function declaration.
func (w *Walker) walkFuncDef(sym *depm.Symbol) *Function {
	sw := sym.File.Walker(sym.Index)
	sw.Expect(syntax.TagFunc)

	decl, scope := w.walkFuncHeader(sw, sym.File.Decls)
	f := &Function{Decl: decl}

	if decl.Builtin {
		if _, ok := builtins[decl.Name]; !ok {
			report.Raise(report.Name, "no builtin named `%s`", decl.Name)
		}

		if sw.Kind() == syntax.TagBlock || decl.hasRaw {
			report.Raise(report.Type, "builtin function `%s` cannot have a body", decl.Name)
		}

		sym.Bind(f)
		sw.Expect(syntax.TagFuncEnd)
		return f
	}

	gen := w.Program.NewFunction(decl.Name, decl.Suspends, decl.Throws)
	decl.Sym = gen.Sym

	// bound before the body so the function can call itself
	sym.Bind(f)

	if decl.hasRaw {
		if sw.Kind() == syntax.TagBlock {
			report.Raise(report.Type, "function `%s` cannot have both `@js` and a body", decl.Name)
		}

		for _, p := range decl.Sig.Params {
			gen.RawParam(generate.Mangle(p.Name))
		}

		gen.SetRaw(decl.raw)
		sw.Expect(syntax.TagFuncEnd)
		return f
	}

	if sw.Kind() != syntax.TagBlock {
		report.Raise(report.Unsupported, "function `%s` has no body", decl.Name)
	}

	body := depm.NewSymbolScope(scope)
	for _, p := range decl.Sig.Params {
		body.Define(p.Name, &depm.Variable{Name: p.Name, Sym: gen.Param(p.Name), Type: p.Type})
	}

	w.walkBody(sw, gen, &blockCtx{
		scope:       body,
		fn:          gen,
		ret:         decl.Ret,
		suspendable: decl.Suspends,
		throwable:   decl.Throws,
	})

	sw.Expect(syntax.TagFuncEnd)
	return f
}

// walkBody compiles a function body block and emits it into gen.
func (w *Walker) walkBody(sw *syntax.Walker, gen *generate.Function, ctx *blockCtx) {
	emitStmts(gen.Root(), w.walkBlock(sw, ctx))
}
