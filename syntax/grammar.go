package syntax

import (
	"fryc/common"
)

// fry is the grammar of Fry source files.  The root rule is `file`.
var fry = newFryGrammar()

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isHSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// kw matches a keyword which is not the prefix of a longer identifier.
func kw(word string) Parser {
	return Seq(Lit(word), Not(Class(common.IsIdentCont)))
}

// name matches an identifier bracketed by a leaf-start tag and `ident_end`.
func name(kind TagKind) Parser {
	return Seq(
		Emit(kind),
		Class(common.IsIdentStart),
		Many(Class(common.IsIdentCont)),
		Emit(TagIdentEnd),
	)
}

// list matches zero or more comma separated occurrences of p.
func list(p, ws Parser) Parser {
	return Opt(Seq(p, Many(Seq(ws, Lit(","), ws, p))))
}

func newFryGrammar() *Grammar {
	g := NewGrammar()

	comment := Seq(Lit("#"), Many(Class(func(c byte) bool { return c != '\n' })))
	ws := Many(Choice(Class(isSpace), comment))
	hws := Many1(Class(isHSpace))

	expr := g.Ref("expr")
	stmt := g.Ref("stmt")
	block := g.Ref("block")
	funcDecl := g.Ref("func")

	// -- Expressions --
	g.Define("string", Seq(
		Emit(TagString),
		Lit(`"`),
		Many(Choice(
			Seq(Lit(`\`), Class(func(c byte) bool { return c != '\n' })),
			Class(func(c byte) bool { return c != '"' && c != '\\' && c != '\n' }),
		)),
		Lit(`"`),
		Emit(TagStringEnd),
	))

	g.Define("number", Seq(
		Emit(TagNumber),
		Opt(Lit("-")),
		Many1(Class(common.IsDigit)),
		Not(Class(common.IsIdentCont)),
		Emit(TagNumberEnd),
	))

	g.Define("array", Seq(
		Lit("["), Emit(TagArray), ws,
		list(expr, ws),
		ws, Lit("]"), Emit(TagArrayEnd),
	))

	g.Define("spawn", Seq(kw("spawn"), Emit(TagSpawn), ws, block, Emit(TagSpawnEnd)))

	arg := Seq(name(TagArgName), ws, Lit("="), ws, expr)
	suffix := Choice(
		Seq(Lit("<"), Emit(TagGenCall), ws, expr, Many(Seq(ws, Lit(","), ws, expr)), ws, Lit(">"), Emit(TagGenCallEnd)),
		Seq(Lit("("), Emit(TagCall), ws, list(arg, ws), ws, Lit(")"), Emit(TagCallEnd)),
		Seq(Lit("."), name(TagField), Opt(Seq(Lit("?"), Emit(TagPred)))),
	)
	g.Define("chain", Seq(name(TagIdent), Many(suffix)))

	g.Define("expr", Choice(
		g.Ref("string"),
		g.Ref("number"),
		g.Ref("array"),
		g.Ref("spawn"),
		g.Ref("chain"),
	))

	// -- Statements --
	g.Define("block", Seq(
		Lit("{"), Emit(TagBlock), ws,
		Many(Seq(stmt, ws)),
		Lit("}"), Emit(TagBlockEnd),
	))

	g.Define("if", Seq(
		kw("if"), Emit(TagIf), ws, expr, ws, block,
		Many(Seq(ws, kw("else"), ws, kw("if"), Emit(TagElseIf), ws, expr, ws, block)),
		Opt(Seq(ws, kw("else"), Emit(TagElse), ws, block)),
		Emit(TagIfEnd),
	))

	g.Define("while", Seq(kw("while"), Emit(TagWhile), ws, expr, ws, block, Emit(TagWhileEnd)))

	g.Define("try", Seq(
		kw("try"), Emit(TagTry), ws, block,
		Opt(Seq(ws, kw("else"), Emit(TagElse), Opt(Seq(hws, name(TagCatch))), ws, block)),
		Emit(TagTryEnd),
	))

	g.Define("var", Seq(
		kw("var"), hws, name(TagVar),
		Opt(Seq(ws, Lit(":"), Emit(TagVarType), ws, expr)),
		Opt(Seq(ws, Lit("="), Emit(TagAssign), ws, expr)),
	))

	g.Define("return", Seq(kw("return"), Emit(TagReturn), Opt(Seq(hws, expr)), Emit(TagReturnEnd)))

	g.Define("stmt", Choice(
		g.Ref("if"),
		g.Ref("while"),
		g.Ref("try"),
		g.Ref("var"),
		g.Ref("return"),
		Seq(expr, Opt(Seq(ws, Lit("="), Emit(TagAssign), ws, expr))),
	))

	// -- Declarations --
	field := Seq(name(TagFieldName), ws, Lit(":"), ws, expr)
	attr := Seq(Lit("@"), name(TagAttr), Opt(Seq(hws, g.Ref("string"))))
	fields := Many(Seq(ws, field))

	g.Define("include", Seq(kw("include"), Emit(TagInclude), hws, g.Ref("string"), Emit(TagIncludeEnd)))

	g.Define("func", Seq(
		kw("function"), Emit(TagFunc), hws, name(TagFuncName),
		Many(Seq(ws, Choice(field, attr))),
		Opt(Seq(ws, block)),
		Emit(TagFuncEnd),
	))

	g.Define("struct", Seq(
		kw("struct"), Emit(TagStruct), hws, name(TagTypeName), fields,
		ws, Lit("{"), Emit(TagTypeBody), fields, ws, Lit("}"),
		Emit(TagStructEnd),
	))

	g.Define("union", Seq(
		kw("union"), Emit(TagUnion), hws, name(TagTypeName), fields,
		ws, Lit("{"), Emit(TagTypeBody), fields, ws, Lit("}"),
		Emit(TagUnionEnd),
	))

	g.Define("trait", Seq(
		kw("trait"), Emit(TagTrait), hws, name(TagTypeName), fields,
		ws, Lit("{"), Emit(TagTraitBody), Many(Seq(ws, funcDecl)), ws, Lit("}"),
		Emit(TagTraitEnd),
	))

	g.Define("implement", Seq(
		kw("implement"), Emit(TagImplement), hws, expr, fields,
		ws, Lit("{"), Emit(TagImplBody), Many(Seq(ws, funcDecl)), ws, Lit("}"),
		Emit(TagImplementEnd),
	))

	g.Define("file", Seq(
		ws,
		Many(Seq(
			Choice(
				g.Ref("include"),
				funcDecl,
				g.Ref("struct"),
				g.Ref("union"),
				g.Ref("trait"),
				g.Ref("implement"),
			),
			ws,
		)),
	))

	return g
}
