package walk

import (
	"fryc/depm"
	"fryc/report"
	"fryc/syntax"
	"fryc/types"
)

// generic is a compile-time value which can be instantiated with `<...>`.
type generic interface {
	instantiate(w *Walker, args []interface{}) interface{}
}

// typeCtor is a user declaration which constructs types.
type typeCtor interface {
	types.Constructor
	generic

	params() []*types.TypeVariable
}

// param is a named, typed field of a signature.
type param struct {
	Name string
	Type types.Type
}

// typeDecl is the common part of struct, union and trait declarations.
type typeDecl struct {
	name   string
	id     int
	Params []*types.TypeVariable
	Fields []param
}

func (td *typeDecl) Name() string {
	return td.name
}

func (td *typeDecl) ID() int {
	return td.id
}

func (td *typeDecl) params() []*types.TypeVariable {
	return td.Params
}

func (td *typeDecl) field(name string) (int, bool) {
	for i, f := range td.Fields {
		if f.Name == name {
			return i, true
		}
	}

	return -1, false
}

// fieldType returns the type of field n of the instance ct.
func (td *typeDecl) fieldType(ct *types.ConstructedType, n int) types.Type {
	return types.Subst(td.Fields[n].Type, ct.Mapping(td.Params))
}

// checkTypeArgs checks explicit type arguments against type parameters.
func checkTypeArgs(what string, params []*types.TypeVariable, args []interface{}) []types.Type {
	if len(args) > len(params) {
		report.Raise(report.Type, "`%s` takes %d type arguments but got %d", what, len(params), len(args))
	}

	targs := make([]types.Type, len(args))
	for i, arg := range args {
		t, ok := arg.(types.Type)
		if !ok || !types.IsValueType(t) {
			report.Raise(report.Type, "type argument `%s` of `%s` must be a type", params[i].Name, what)
		}

		if !params[i].Bound.Matches(t) {
			report.Raise(report.Type, "`%s` does not satisfy `%s`", t.Repr(), params[i].Bound.Repr())
		}

		targs[i] = t
	}

	return targs
}

// construct instantiates the declaration of ctor with explicit type
// arguments.
func (td *typeDecl) construct(ctor types.Constructor, args []interface{}) *types.ConstructedType {
	targs := checkTypeArgs(td.name, td.Params, args)
	if len(targs) != len(td.Params) {
		report.Raise(report.Type, "`%s` takes %d type arguments but got %d", td.name, len(td.Params), len(targs))
	}

	return types.NewConstructedType(ctor, targs)
}

// StructCtor is a struct declaration.
type StructCtor struct {
	typeDecl
}

// UnionCtor is a union declaration.  Its fields are the variants.
type UnionCtor struct {
	typeDecl
}

// TraitCtor is a trait declaration.
type TraitCtor struct {
	typeDecl

	Methods []*FuncDecl
}

func (tc *TraitCtor) method(name string) *FuncDecl {
	for _, m := range tc.Methods {
		if m.Name == name {
			return m
		}
	}

	return nil
}

func (sc *StructCtor) instantiate(w *Walker, args []interface{}) interface{} {
	return sc.construct(sc, args)
}

func (uc *UnionCtor) instantiate(w *Walker, args []interface{}) interface{} {
	return uc.construct(uc, args)
}

func (tc *TraitCtor) instantiate(w *Walker, args []interface{}) interface{} {
	return tc.construct(tc, args)
}

// -----------------------------------------------------------------------------

// walkTypeHeader compiles the generic parameters of a declaration into a
// fresh scope.
func (w *Walker) walkTypeHeader(sw *syntax.Walker, file *depm.File) ([]*types.TypeVariable, *depm.SymbolScope) {
	scope := depm.NewSymbolScope(file.Decls)

	var params []*types.TypeVariable
	for sw.Kind() == syntax.TagFieldName {
		name := sw.ReadIdent()
		bound, ok := w.walkConst(sw, typeCtx(scope)).(types.Bound)
		if !ok {
			report.Raise(report.Type, "generic parameter `%s` must be bounded by a trait such as `Type`", name)
		}

		tv := types.NewTypeVariable(name, bound)
		scope.Define(name, tv)
		params = append(params, tv)
	}

	return params, scope
}

// walkFields compiles the fields of a struct or union body.
func (w *Walker) walkFields(sw *syntax.Walker, scope depm.Scope, what string) []param {
	var fields []param
	seen := make(map[string]bool)

	for sw.Kind() == syntax.TagFieldName {
		name := sw.ReadIdent()
		if seen[name] {
			report.Raise(report.Name, "multiple fields named `%s` in `%s`", name, what)
		}
		seen[name] = true

		fields = append(fields, param{Name: name, Type: w.walkValueType(sw, typeCtx(scope))})
	}

	return fields
}

func (w *Walker) walkStructDef(sym *depm.Symbol) *StructCtor {
	sw := sym.File.Walker(sym.Index)
	sw.Expect(syntax.TagStruct)
	sc := &StructCtor{typeDecl{name: sw.ReadIdent(), id: types.NewConstructorID()}}

	var scope *depm.SymbolScope
	sc.Params, scope = w.walkTypeHeader(sw, sym.File)
	sym.Bind(sc)

	sw.Expect(syntax.TagTypeBody)
	sc.Fields = w.walkFields(sw, scope, sc.name)
	sw.Expect(syntax.TagStructEnd)
	return sc
}

func (w *Walker) walkUnionDef(sym *depm.Symbol) *UnionCtor {
	sw := sym.File.Walker(sym.Index)
	sw.Expect(syntax.TagUnion)
	uc := &UnionCtor{typeDecl{name: sw.ReadIdent(), id: types.NewConstructorID()}}

	var scope *depm.SymbolScope
	uc.Params, scope = w.walkTypeHeader(sw, sym.File)
	sym.Bind(uc)

	sw.Expect(syntax.TagTypeBody)
	uc.Fields = w.walkFields(sw, scope, uc.name)
	if len(uc.Fields) == 0 {
		report.Raise(report.Type, "union `%s` must have at least one variant", uc.name)
	}

	sw.Expect(syntax.TagUnionEnd)
	return uc
}

func (w *Walker) walkTraitDef(sym *depm.Symbol) *TraitCtor {
	sw := sym.File.Walker(sym.Index)
	sw.Expect(syntax.TagTrait)
	tc := &TraitCtor{typeDecl: typeDecl{name: sw.ReadIdent(), id: types.NewConstructorID()}}

	var scope *depm.SymbolScope
	tc.Params, scope = w.walkTypeHeader(sw, sym.File)
	sym.Bind(tc)

	sw.Expect(syntax.TagTraitBody)
	for sw.Take(syntax.TagFunc) {
		decl, _ := w.walkFuncHeader(sw, scope)
		if len(decl.Sig.TypeParams) > 0 {
			report.Raise(report.Unsupported, "trait method `%s` cannot be generic", decl.Name)
		}

		if decl.Builtin || decl.hasRaw || sw.Kind() == syntax.TagBlock {
			report.Raise(report.Type, "trait method `%s` cannot have a body", decl.Name)
		}

		if tc.method(decl.Name) != nil {
			report.Raise(report.Name, "multiple methods named `%s` in trait `%s`", decl.Name, tc.name)
		}

		tc.Methods = append(tc.Methods, decl)
		sw.Expect(syntax.TagFuncEnd)
	}

	sw.Expect(syntax.TagTraitEnd)
	return tc
}

// -----------------------------------------------------------------------------

// walkConst compiles an expression which must be a compile-time value.
func (w *Walker) walkConst(sw *syntax.Walker, ctx *blockCtx) interface{} {
	c, ok := w.walkExpr(sw, ctx).(*Const)
	if !ok {
		report.Raise(report.Type, "expected a type but got a value")
	}

	return c.Value
}

// walkType compiles a type expression.
func (w *Walker) walkType(sw *syntax.Walker, ctx *blockCtx) types.Type {
	v := w.walkConst(sw, ctx)
	t, ok := v.(types.Type)
	if !ok {
		report.Raise(report.Type, "expected a type but got %s", describe(v))
	}

	return t
}

// walkValueType compiles a type expression which must denote storable values.
func (w *Walker) walkValueType(sw *syntax.Walker, ctx *blockCtx) types.Type {
	t := w.walkType(sw, ctx)
	if !types.IsValueType(t) {
		report.Raise(report.Type, "`%s` is not a value type", t.Repr())
	}

	return t
}
