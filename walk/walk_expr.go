package walk

import (
	"math"
	"strconv"

	"fryc/depm"
	"fryc/report"
	"fryc/syntax"
	"fryc/types"
)

// walkExpr compiles the expression starting at the current tag.
func (w *Walker) walkExpr(sw *syntax.Walker, ctx *blockCtx) Expr {
	switch sw.Kind() {
	case syntax.TagString:
		return &Literal{Text: strconv.Quote(sw.ReadString()), Typ: types.String}
	case syntax.TagNumber:
		n := sw.ReadNumber()
		if n < math.MinInt32 || n > math.MaxInt32 {
			report.Raise(report.Type, "integer literal `%d` does not fit in `Int32`", n)
		}

		if n < 0 {
			return &Literal{Text: "(" + strconv.Itoa(n) + ")", Typ: types.Int32}
		}

		return &Literal{Text: strconv.Itoa(n), Typ: types.Int32}
	case syntax.TagArray:
		return w.walkArray(sw, ctx)
	case syntax.TagSpawn:
		return w.walkSpawn(sw, ctx)
	case syntax.TagIdent:
		return w.walkChain(sw, ctx)
	}

	report.Raise(report.Structural, "expected expression but got `%s`", sw.Kind())
	return nil
}

func (w *Walker) walkArray(sw *syntax.Walker, ctx *blockCtx) Expr {
	sw.Expect(syntax.TagArray)

	var elems []Expr
	for !sw.Take(syntax.TagArrayEnd) {
		elems = append(elems, w.walkExpr(sw, ctx))
	}

	if len(elems) == 0 {
		report.Raise(report.Type, "cannot infer the element type of an empty array")
	}

	elemType := elems[0].Type()
	if !types.IsValueType(elemType) {
		report.Raise(report.Type, "`%s` is not a value type", elemType.Repr())
	}

	for _, e := range elems[1:] {
		if !e.Type().Equals(elemType) {
			report.Raise(report.Type, "array elements must all be `%s` but got `%s`", elemType.Repr(), e.Type().Repr())
		}
	}

	return &ArrayLit{Elems: elems, Typ: types.ArrayOf(elemType)}
}

// walkSpawn lifts the body of a `spawn` into its own suspending function.
func (w *Walker) walkSpawn(sw *syntax.Walker, ctx *blockCtx) Expr {
	sw.Expect(syntax.TagSpawn)

	fn := w.Program.NewFunction("spawn", true, false)
	fn.RawParam("env")

	closure := depm.NewClosureScope(ctx.scope)
	body := w.walkBlock(sw, &blockCtx{
		scope:       closure,
		fn:          fn,
		ret:         types.Void,
		suspendable: true,
	})

	sw.Expect(syntax.TagSpawnEnd)
	return &Spawn{Fn: fn, Body: body, Closure: closure}
}

// walkChain compiles an identifier followed by its instantiations, calls and
// field accesses.
func (w *Walker) walkChain(sw *syntax.Walker, ctx *blockCtx) Expr {
	e := w.valueOf(depm.Lookup(ctx.scope, sw.ReadIdent()))

	for {
		switch sw.Kind() {
		case syntax.TagGenCall:
			e = w.walkGenCall(sw, ctx, e)
		case syntax.TagCall:
			e = w.walkCall(sw, ctx, e)
		case syntax.TagField:
			e = w.walkField(sw, e)
		default:
			return e
		}
	}
}

func (w *Walker) walkGenCall(sw *syntax.Walker, ctx *blockCtx, target Expr) Expr {
	sw.Expect(syntax.TagGenCall)

	var args []interface{}
	for !sw.Take(syntax.TagGenCallEnd) {
		args = append(args, w.walkConst(sw, ctx))
	}

	if c, ok := target.(*Const); ok {
		if g, ok := c.Value.(generic); ok {
			return w.valueOf(g.instantiate(w, args))
		}

		report.Raise(report.Type, "%s cannot be instantiated", describe(c.Value))
	}

	report.Raise(report.Type, "values cannot be instantiated")
	return nil
}

func (w *Walker) walkCall(sw *syntax.Walker, ctx *blockCtx, target Expr) Expr {
	sw.Expect(syntax.TagCall)

	var args []namedArg
	for sw.Kind() == syntax.TagArgName {
		name := sw.ReadIdent()
		args = append(args, namedArg{Name: name, Value: w.walkExpr(sw, ctx)})
	}

	sw.Expect(syntax.TagCallEnd)

	switch t := target.(type) {
	case *Const:
		switch v := t.Value.(type) {
		case *Function:
			return v.Call(w, ctx, nil, args)
		case *FuncRef:
			return v.Fn.Call(w, ctx, v.Explicit, args)
		case *StructCtor:
			return w.constructStruct(v, nil, args)
		case *UnionCtor:
			return w.constructUnion(v, nil, args)
		case *types.ConstructedType:
			switch ctor := v.Ctor.(type) {
			case *StructCtor:
				return w.constructStruct(ctor, v.Mapping(ctor.Params), args)
			case *UnionCtor:
				return w.constructUnion(ctor, v.Mapping(ctor.Params), args)
			}
		}

		report.Raise(report.Type, "%s is not callable", describe(t.Value))
	case *MethodRef:
		return t.call(w, ctx, args)
	}

	report.Raise(report.Type, "value of type `%s` is not callable", target.Type().Repr())
	return nil
}

func (w *Walker) walkField(sw *syntax.Walker, base Expr) Expr {
	name := sw.ReadIdent()
	pred := sw.Take(syntax.TagPred)

	if _, ok := base.(*Const); ok {
		report.Raise(report.Type, "cannot access field `%s` of %s", name, describe(base.(*Const).Value))
	}

	typ := base.Type()
	if ct, ok := typ.(*types.ConstructedType); ok {
		switch ctor := ct.Ctor.(type) {
		case *StructCtor:
			if n, ok := ctor.field(name); ok {
				if pred {
					report.Raise(report.Type, "`?` can only test union variants")
				}

				return &FieldGet{Base: base, Index: n, Typ: ctor.fieldType(ct, n)}
			}
		case *UnionCtor:
			if n, ok := ctor.field(name); ok {
				if pred {
					return &UnionTest{Base: base, Tag: n}
				}

				return &UnionGet{Base: base, Tag: n, Typ: ctor.fieldType(ct, n)}
			}
		case *TraitCtor:
			if m := ctor.method(name); m != nil && !pred {
				return &MethodRef{
					Name:     name,
					Receiver: base,
					Decl:     m.instantiate(ct.Mapping(ctor.Params)),
					Dispatch: true,
				}
			}
		}
	}

	if !pred {
		if decl := w.findMethod(typ, name); decl != nil {
			return &MethodRef{Name: name, Receiver: base, Decl: decl}
		}
	}

	report.Raise(report.Name, "`%s` has no field named `%s`", typ.Repr(), name)
	return nil
}
