package walk

import (
	"fryc/depm"
	"fryc/report"
	"fryc/syntax"
	"fryc/types"
)

// walkBlock compiles a block in a new nested scope.
func (w *Walker) walkBlock(sw *syntax.Walker, ctx *blockCtx) []Expr {
	sw.Expect(syntax.TagBlock)
	inner := ctx.sub()

	var stmts []Expr
	for !sw.Take(syntax.TagBlockEnd) {
		stmts = append(stmts, w.walkStmt(sw, inner))
	}

	return stmts
}

func (w *Walker) walkStmt(sw *syntax.Walker, ctx *blockCtx) Expr {
	switch sw.Kind() {
	case syntax.TagIf:
		return w.walkIf(sw, ctx)
	case syntax.TagWhile:
		return w.walkWhile(sw, ctx)
	case syntax.TagTry:
		return w.walkTry(sw, ctx)
	case syntax.TagVar:
		return w.walkVar(sw, ctx)
	case syntax.TagReturn:
		return w.walkReturn(sw, ctx)
	}

	e := w.walkExpr(sw, ctx)
	if !sw.Take(syntax.TagAssign) {
		if _, ok := e.(*Const); ok {
			report.Raise(report.Type, "%s cannot be used as a statement", describe(e.(*Const).Value))
		}

		return e
	}

	v := w.walkExpr(sw, ctx)
	if !v.Type().Equals(e.Type()) {
		report.Raise(report.Type, "cannot assign `%s` to a target of type `%s`", v.Type().Repr(), e.Type().Repr())
	}

	switch target := e.(type) {
	case *Load:
		return &Assign{Target: target.Var, Value: v}
	case *FieldGet:
		return &FieldAssign{Base: target.Base, Index: target.Index, Value: v}
	}

	report.Raise(report.Type, "cannot assign to this expression")
	return nil
}

// walkCond compiles a condition which must be a `Bool`.
func (w *Walker) walkCond(sw *syntax.Walker, ctx *blockCtx) Expr {
	cond := w.walkExpr(sw, ctx)
	if !cond.Type().Equals(types.Bool) {
		report.Raise(report.Type, "condition must be `Bool` but got `%s`", cond.Type().Repr())
	}

	return cond
}

func (w *Walker) walkIf(sw *syntax.Walker, ctx *blockCtx) Expr {
	sw.Expect(syntax.TagIf)

	br := &Branch{}
	cond := w.walkCond(sw, ctx)
	br.Cases = append(br.Cases, Case{Cond: cond, Body: w.walkBlock(sw, ctx)})

	for sw.Take(syntax.TagElseIf) {
		cond := w.walkCond(sw, ctx)
		br.Cases = append(br.Cases, Case{Cond: cond, Body: w.walkBlock(sw, ctx)})
	}

	if sw.Take(syntax.TagElse) {
		br.Cases = append(br.Cases, Case{Body: w.walkBlock(sw, ctx)})
	}

	sw.Expect(syntax.TagIfEnd)
	return br
}

func (w *Walker) walkWhile(sw *syntax.Walker, ctx *blockCtx) Expr {
	sw.Expect(syntax.TagWhile)

	cond := w.walkCond(sw, ctx)
	body := w.walkBlock(sw, ctx)

	sw.Expect(syntax.TagWhileEnd)
	return &While{Cond: cond, Body: body}
}

func (w *Walker) walkTry(sw *syntax.Walker, ctx *blockCtx) Expr {
	sw.Expect(syntax.TagTry)

	tr := &Try{Body: w.walkBlock(sw, ctx.throwing())}
	if sw.Take(syntax.TagElse) {
		hctx := ctx.sub()
		if sw.Kind() == syntax.TagCatch {
			name := sw.ReadIdent()
			tr.ErrVar = &depm.Variable{Name: name, Sym: ctx.fn.Local(name), Type: types.Int32}
			hctx.locals.Define(name, tr.ErrVar)
		}

		tr.Handler = w.walkBlock(sw, hctx)
	}

	sw.Expect(syntax.TagTryEnd)
	return tr
}

func (w *Walker) walkVar(sw *syntax.Walker, ctx *blockCtx) Expr {
	name := sw.ReadIdent()

	var typ types.Type
	if sw.Take(syntax.TagVarType) {
		typ = w.walkValueType(sw, ctx)
	}

	var init Expr
	if sw.Take(syntax.TagAssign) {
		init = w.walkExpr(sw, ctx)

		if typ == nil {
			typ = init.Type()
			if !types.IsValueType(typ) {
				report.Raise(report.Type, "cannot store a value of type `%s` in variable `%s`", typ.Repr(), name)
			}
		} else if conv, ok := w.convert(init, typ); ok {
			init = conv
		} else {
			report.Raise(report.Type, "variable `%s` expects `%s` but got `%s`", name, typ.Repr(), init.Type().Repr())
		}
	} else if typ == nil {
		report.Raise(report.Type, "variable `%s` needs a type or an initial value", name)
	} else {
		init = zeroValue(typ)
	}

	// defined after the initializer so that it may refer to a shadowed name
	v := &depm.Variable{Name: name, Sym: ctx.fn.Local(name), Type: typ}
	ctx.locals.Define(name, v)

	return &Assign{Target: v, Value: init}
}

func (w *Walker) walkReturn(sw *syntax.Walker, ctx *blockCtx) Expr {
	sw.Expect(syntax.TagReturn)

	if sw.Take(syntax.TagReturnEnd) {
		if !ctx.ret.Equals(types.Void) {
			report.Raise(report.Type, "missing return value of type `%s`", ctx.ret.Repr())
		}

		return &Return{}
	}

	v := w.walkExpr(sw, ctx)
	sw.Expect(syntax.TagReturnEnd)

	if !v.Type().Equals(ctx.ret) {
		report.Raise(report.Type, "expected return value of type `%s` but got `%s`", ctx.ret.Repr(), v.Type().Repr())
	}

	return &Return{Value: v}
}
