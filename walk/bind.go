package walk

import (
	"fryc/report"
	"fryc/types"
)

// namedArg is an argument of a call in source order.
type namedArg struct {
	Name  string
	Value Expr
}

// boundArgs is the result of binding named arguments to a signature.
type boundArgs struct {
	// mapping binds every type parameter of the signature.
	mapping types.Mapping

	// args holds the value arguments in source order.
	args []Expr

	// perm maps each value parameter to its index in args.
	perm []int
}

// bindArgs binds named arguments to the parameters of a signature, inferring
// the type parameters that were not given explicitly and checking every
// value argument against its declared type.
func (w *Walker) bindArgs(sig *signature, explicit types.Mapping, args []namedArg, what string) *boundArgs {
	ba := &boundArgs{
		mapping: make(types.Mapping),
		perm:    make([]int, len(sig.Params)),
	}

	for tv, t := range explicit {
		ba.mapping[tv] = t
	}

	for i := range ba.perm {
		ba.perm[i] = -1
	}

	// sort the arguments into type and value arguments
	for _, arg := range args {
		if tv := findTypeParam(sig.TypeParams, arg.Name); tv != nil {
			if _, ok := ba.mapping[tv]; ok {
				report.Raise(report.Name, "type parameter `%s` of `%s` is given more than once", arg.Name, what)
			}

			c, ok := arg.Value.(*Const)
			var t types.Type
			if ok {
				t, ok = c.Value.(types.Type)
			}

			if !ok || !types.IsValueType(t) {
				report.Raise(report.Type, "type parameter `%s` of `%s` expects a type", arg.Name, what)
			}

			ba.mapping[tv] = t
			continue
		}

		n := findParam(sig.Params, arg.Name)
		if n < 0 {
			report.Raise(report.Name, "`%s` has no parameter named `%s`", what, arg.Name)
		}

		if ba.perm[n] >= 0 {
			report.Raise(report.Name, "argument `%s` of `%s` is given more than once", arg.Name, what)
		}

		ba.perm[n] = len(ba.args)
		ba.args = append(ba.args, arg.Value)
	}

	for i, p := range sig.Params {
		if ba.perm[i] < 0 {
			report.Raise(report.Name, "missing argument `%s` of `%s`", p.Name, what)
		}
	}

	// infer the remaining type parameters from the value arguments
	cands := make(types.Candidates)
	for _, tv := range sig.TypeParams {
		if _, ok := ba.mapping[tv]; !ok {
			cands[tv] = nil
		}
	}

	if len(cands) > 0 {
		for i, p := range sig.Params {
			types.Unify(p.Type, ba.args[ba.perm[i]].Type(), cands)
		}

		for _, tv := range sig.TypeParams {
			tc, ok := cands[tv]
			if !ok {
				continue
			}

			t, result := types.Infer(tc)
			switch result {
			case types.NoCandidates:
				report.Raise(report.Type, "cannot infer type parameter `%s` of `%s`", tv.Name, what)
			case types.Ambiguous:
				report.Raise(report.Type, "type parameter `%s` of `%s` is ambiguous", tv.Name, what)
			}

			ba.mapping[tv] = t
		}
	}

	for _, tv := range sig.TypeParams {
		if t := ba.mapping[tv]; !tv.Bound.Matches(t) {
			report.Raise(report.Type, "`%s` does not satisfy `%s` for type parameter `%s` of `%s`",
				t.Repr(), tv.Bound.Repr(), tv.Name, what)
		}
	}

	for i, p := range sig.Params {
		want := types.Subst(p.Type, ba.mapping)
		n := ba.perm[i]

		conv, ok := w.convert(ba.args[n], want)
		if !ok {
			report.Raise(report.Type, "argument `%s` of `%s` expects `%s` but got `%s`",
				p.Name, what, want.Repr(), ba.args[n].Type().Repr())
		}

		ba.args[n] = conv
	}

	return ba
}

func findTypeParam(params []*types.TypeVariable, name string) *types.TypeVariable {
	for _, tv := range params {
		if tv.Name == name {
			return tv
		}
	}

	return nil
}

func findParam(params []param, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}

	return -1
}

// convert checks that e has the type want.  A value passed where a user trait
// is expected is wrapped in a trait object when an implementation exists.
func (w *Walker) convert(e Expr, want types.Type) (Expr, bool) {
	if e.Type().Equals(want) {
		return e, true
	}

	if ct, ok := want.(*types.ConstructedType); ok {
		if _, ok := ct.Ctor.(*TraitCtor); ok {
			if impl := w.findImpl(ct, e.Type()); impl != nil {
				w.compileImpl(impl)
				return &TraitObject{Value: e, Builder: impl.builder, Typ: want}, true
			}
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// typeArgs lists the bound type parameters in declaration order.
func typeArgs(params []*types.TypeVariable, m types.Mapping) []types.Type {
	targs := make([]types.Type, len(params))
	for i, tv := range params {
		targs[i] = m[tv]
	}

	return targs
}

// constructStruct compiles a struct literal.
func (w *Walker) constructStruct(sc *StructCtor, explicit types.Mapping, args []namedArg) Expr {
	ba := w.bindArgs(&signature{TypeParams: sc.Params, Params: sc.Fields}, explicit, args, sc.name)
	return &StructLit{
		Args: ba.args,
		Perm: ba.perm,
		Typ:  types.NewConstructedType(sc, typeArgs(sc.Params, ba.mapping)),
	}
}

// constructUnion compiles a union literal.  Exactly one variant is given.
func (w *Walker) constructUnion(uc *UnionCtor, explicit types.Mapping, args []namedArg) Expr {
	tag := -1
	for _, arg := range args {
		if findTypeParam(uc.Params, arg.Name) != nil {
			continue
		}

		if tag >= 0 {
			report.Raise(report.Type, "union literal `%s` requires exactly one variant", uc.name)
		}

		if tag = findParam(uc.Fields, arg.Name); tag < 0 {
			report.Raise(report.Name, "`%s` has no variant named `%s`", uc.name, arg.Name)
		}
	}

	if tag < 0 {
		report.Raise(report.Type, "union literal `%s` requires exactly one variant", uc.name)
	}

	sig := &signature{TypeParams: uc.Params, Params: []param{uc.Fields[tag]}}
	ba := w.bindArgs(sig, explicit, args, uc.name)
	return &UnionLit{
		Tag:   tag,
		Value: ba.args[0],
		Typ:   types.NewConstructedType(uc, typeArgs(uc.Params, ba.mapping)),
	}
}
