package walk

import (
	"strconv"
	"strings"

	"fryc/depm"
	"fryc/generate"
	"fryc/report"
	"fryc/syntax"
	"fryc/types"
)

// Impl is an implementation of a trait for a type.
type Impl struct {
	Trait *types.ConstructedType
	For   types.Type

	ctor *TraitCtor
	file *depm.File

	// bodyIndex is the index of the first tag of the implementation body.
	bodyIndex int

	methods map[string]*implMethod

	// builder is the symbol of the function which wraps a value into a trait
	// object.
	builder  string
	compiled bool
}

type implMethod struct {
	decl *FuncDecl
	gen  *generate.Function
	done bool
}

func implKey(trait, t types.Type) string {
	return trait.Key() + "|" + t.Key()
}

// loadImpls compiles the headers of every implementation not yet loaded.
func (w *Walker) loadImpls() {
	for len(w.pending) > 0 {
		p := w.pending[0]
		w.pending = w.pending[1:]
		w.loadImplHeader(p.file, p.index)
	}
}

func (w *Walker) loadImplHeader(f *depm.File, idx int) {
	defer report.InFile(f.AbsPath)

	sw := f.Walker(idx)
	sw.Expect(syntax.TagImplement)

	trait := w.walkType(sw, typeCtx(f.Decls))
	ct, ok := trait.(*types.ConstructedType)
	var tc *TraitCtor
	if ok {
		tc, ok = ct.Ctor.(*TraitCtor)
	}

	if !ok {
		report.Raise(report.Type, "`%s` is not a trait", trait.Repr())
	}

	var forType types.Type
	for sw.Kind() == syntax.TagFieldName {
		switch name := sw.ReadIdent(); name {
		case "for":
			forType = w.walkValueType(sw, typeCtx(f.Decls))
		default:
			report.Raise(report.Name, "unknown implementation field `%s`", name)
		}
	}

	if forType == nil {
		report.Raise(report.Name, "implementation of `%s` is missing a `for` type", ct.Repr())
	}

	sw.Expect(syntax.TagImplBody)

	key := implKey(ct, forType)
	if _, ok := w.implsByKey[key]; ok {
		report.Raise(report.Name, "multiple implementations of `%s` for `%s`", ct.Repr(), forType.Repr())
	}

	impl := &Impl{
		Trait:     ct,
		For:       forType,
		ctor:      tc,
		file:      f,
		bodyIndex: sw.Index(),
		methods:   make(map[string]*implMethod),
	}

	w.impls = append(w.impls, impl)
	w.implsByKey[key] = impl
}

// findImpl returns the implementation of trait for t or nil.
func (w *Walker) findImpl(trait, t types.Type) *Impl {
	w.loadImpls()
	return w.implsByKey[implKey(trait, t)]
}

// hasImpl reports whether trait is implemented for t.
func (w *Walker) hasImpl(trait, t types.Type) bool {
	return w.findImpl(trait, t) != nil
}

// findMethod returns the declaration of the method name of the first
// implementation for t providing it or nil.
func (w *Walker) findMethod(t types.Type, name string) *FuncDecl {
	w.loadImpls()

	for _, impl := range w.impls {
		if impl.For.Equals(t) && impl.ctor.method(name) != nil {
			w.compileImpl(impl)
			return impl.methods[name].decl
		}
	}

	return nil
}

// compileImpl generates the methods and the trait object builder of an
// implementation.  Method symbols are allocated before any body is compiled
// so that methods may call each other.
func (w *Walker) compileImpl(impl *Impl) {
	if impl.compiled {
		return
	}

	impl.compiled = true
	defer report.InFile(impl.file.AbsPath)

	tc := impl.ctor
	mapping := impl.Trait.Mapping(tc.Params)

	entries := make([]string, len(tc.Methods))
	builder := w.Program.NewFunction(tc.name+"-impl", false, false)
	self := builder.Param("self")

	for i, m := range tc.Methods {
		decl := m.instantiate(mapping)
		gen := w.Program.NewFunction(tc.name+"-"+m.Name, decl.Suspends, decl.Throws)
		decl.Sym = gen.Sym

		impl.methods[m.Name] = &implMethod{decl: decl, gen: gen}
		entries[i] = strconv.Quote(m.Name) + ": " + gen.Sym + ".bind(null, " + self + ")"
	}

	builder.Root().Insert("return {" + strings.Join(entries, ", ") + "};")
	impl.builder = builder.Sym

	sw := impl.file.Walker(impl.bodyIndex)
	for sw.Take(syntax.TagFunc) {
		name := sw.ReadIdent()

		m, ok := impl.methods[name]
		if !ok {
			report.Raise(report.Name, "`%s` is not a method of trait `%s`", name, tc.name)
		} else if m.done {
			report.Raise(report.Name, "method `%s` is implemented more than once", name)
		}

		if sw.Kind() != syntax.TagBlock {
			report.Raise(report.Type, "implementation of method `%s` takes its signature from the trait", name)
		}

		params := make(map[string]*depm.Variable)
		selfVar := &depm.Variable{Name: "self", Sym: m.gen.Param("self"), Type: impl.For}
		for _, p := range m.decl.Sig.Params {
			params[p.Name] = &depm.Variable{Name: p.Name, Sym: m.gen.Param(p.Name), Type: p.Type}
		}

		w.walkBody(sw, m.gen, &blockCtx{
			scope:       depm.NewImplementScope(impl.file.Decls, selfVar, params),
			fn:          m.gen,
			ret:         m.decl.Ret,
			suspendable: m.decl.Suspends,
			throwable:   m.decl.Throws,
		})

		sw.Expect(syntax.TagFuncEnd)
		m.done = true
	}

	sw.Expect(syntax.TagImplementEnd)

	for _, m := range tc.Methods {
		if !impl.methods[m.Name].done {
			report.Raise(report.Name, "missing implementation of method `%s` of trait `%s`", m.Name, tc.name)
		}
	}
}

// -----------------------------------------------------------------------------

// MethodRef is a method selected from a receiver.  It can only be called.
type MethodRef struct {
	Name     string
	Receiver Expr
	Decl     *FuncDecl

	// Dispatch selects the method from a trait object at runtime.  Otherwise
	// the implementation is called directly with the receiver as `self`.
	Dispatch bool
}

func (mr *MethodRef) Type() types.Type {
	return types.Void
}

func (mr *MethodRef) Suspends() bool {
	return mr.Receiver.Suspends()
}

func (mr *MethodRef) Emit(b *generate.Block) string {
	report.Raise(report.Type, "method `%s` must be called", mr.Name)
	return ""
}

// call compiles a call to the method.
func (mr *MethodRef) call(w *Walker, ctx *blockCtx, args []namedArg) Expr {
	mr.Decl.checkContext(ctx)
	ba := w.bindArgs(mr.Decl.Sig, nil, args, mr.Name)

	return &Call{
		Callee:   mr.Decl.Sym,
		Args:     ba.args,
		Perm:     ba.perm,
		Ret:      mr.Decl.Ret,
		Receiver: mr.Receiver,
		Dispatch: mr.Dispatch,
		Method:   mr.Name,
		suspends: mr.Decl.Suspends,
		throws:   mr.Decl.Throws,
	}
}
