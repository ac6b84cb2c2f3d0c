package walk

import (
	"strconv"
	"strings"

	"fryc/depm"
	"fryc/generate"
	"fryc/report"
	"fryc/types"
)

// Expr is a compiled, typed expression.  Statements are expressions of type
// Void.
type Expr interface {
	// Type returns the static type of the expression.
	Type() types.Type

	// Suspends reports whether evaluating the expression may split the
	// enclosing block into frames.
	Suspends() bool

	// Emit inserts the expression's effects into b and returns the target
	// expression holding its value.  Statements return "".
	Emit(b *generate.Block) string
}

// anySuspends reports whether any of the expressions suspends.
func anySuspends(exprs []Expr) bool {
	for _, e := range exprs {
		if e != nil && e.Suspends() {
			return true
		}
	}

	return false
}

// isLeaf reports whether emitting e never inserts lines.
func isLeaf(e Expr) bool {
	switch e.(type) {
	case *Literal, *Load, *Const:
		return true
	default:
		return false
	}
}

// emitArgs emits expressions in order.  A value is spilled into a temporary
// when a later expression may insert lines or split the frame so that values
// are still computed in source order.
func emitArgs(b *generate.Block, exprs []Expr) []string {
	vals := make([]string, len(exprs))

	for i, e := range exprs {
		v := e.Emit(b)

		if _, ok := e.(*Literal); !ok {
			for _, later := range exprs[i+1:] {
				if !isLeaf(later) {
					v = b.Temp(v)
					break
				}
			}
		}

		vals[i] = v
	}

	return vals
}

// permute reorders source-ordered values into parameter order.
func permute(vals []string, perm []int) []string {
	ordered := make([]string, len(perm))
	for i, src := range perm {
		ordered[i] = vals[src]
	}

	return ordered
}

// emitStmts emits a statement list into a block.
func emitStmts(b *generate.Block, stmts []Expr) {
	for _, stmt := range stmts {
		if r := stmt.Emit(b); r != "" && r != generate.ResultVal {
			b.Insert(r + ";")
		}
	}
}

// -----------------------------------------------------------------------------

// Const is a compile-time value: a type, a bound, a declaration or a generic
// awaiting instantiation.
type Const struct {
	Value interface{}
}

func (c *Const) Type() types.Type {
	if _, ok := c.Value.(types.Type); ok {
		return types.TypeOfTypes
	}

	return types.Void
}

func (c *Const) Suspends() bool {
	return false
}

func (c *Const) Emit(b *generate.Block) string {
	report.Raise(report.Type, "%s cannot be used as a value", describe(c.Value))
	return ""
}

// Literal is a constant value written directly in the target language.
type Literal struct {
	Text string
	Typ  types.Type
}

func (l *Literal) Type() types.Type {
	return l.Typ
}

func (l *Literal) Suspends() bool {
	return false
}

func (l *Literal) Emit(b *generate.Block) string {
	return l.Text
}

// zeroValue returns the initial value of an uninitialized variable.
func zeroValue(t types.Type) *Literal {
	if it, ok := t.(*types.IntType); ok {
		if it.Bits == 1 {
			return &Literal{Text: "false", Typ: t}
		}

		return &Literal{Text: "0", Typ: t}
	}

	return &Literal{Text: "undefined", Typ: t}
}

// ArrayLit builds an array from its elements.
type ArrayLit struct {
	Elems []Expr
	Typ   types.Type
}

func (al *ArrayLit) Type() types.Type {
	return al.Typ
}

func (al *ArrayLit) Suspends() bool {
	return anySuspends(al.Elems)
}

func (al *ArrayLit) Emit(b *generate.Block) string {
	return "[" + strings.Join(emitArgs(b, al.Elems), ", ") + "]"
}

// Load reads a variable or a closure capture.
type Load struct {
	Var interface{}
}

func (l *Load) Type() types.Type {
	return depm.VariableType(l.Var)
}

func (l *Load) Suspends() bool {
	return false
}

func (l *Load) Emit(b *generate.Block) string {
	return depm.Ref(l.Var)
}

// Assign stores a value into a variable.
type Assign struct {
	Target interface{}
	Value  Expr
}

func (a *Assign) Type() types.Type {
	return types.Void
}

func (a *Assign) Suspends() bool {
	return a.Value.Suspends()
}

func (a *Assign) Emit(b *generate.Block) string {
	v := a.Value.Emit(b)
	b.Insert(depm.Ref(a.Target) + " = " + v + ";")
	return ""
}

// -----------------------------------------------------------------------------

// Call invokes a generated function.  Arguments are stored in source order;
// Perm maps parameters to arguments.
type Call struct {
	Callee string
	Args   []Expr
	Perm   []int
	Ret    types.Type

	// Receiver is evaluated before the arguments.  It is passed as the first
	// argument of a method or, when Dispatch is set, is the trait object whose
	// method named Method is invoked.
	Receiver Expr
	Dispatch bool
	Method   string

	// Wrap is the bit width the result is truncated to when the callee's
	// declared return type is erased but this call returns a narrow integer.
	Wrap int

	suspends, throws bool
}

func (c *Call) Type() types.Type {
	return c.Ret
}

func (c *Call) Suspends() bool {
	return c.suspends || anySuspends(c.Args) || (c.Receiver != nil && c.Receiver.Suspends())
}

func (c *Call) Emit(b *generate.Block) string {
	exprs := c.Args
	if c.Receiver != nil {
		exprs = append([]Expr{c.Receiver}, exprs...)
	}

	vals := emitArgs(b, exprs)

	callee := c.Callee
	var args []string
	if c.Receiver != nil {
		recv := vals[0]
		vals = vals[1:]

		if c.Dispatch {
			callee = recv + "[" + strconv.Quote(c.Method) + "]"
		} else {
			args = append(args, recv)
		}
	}

	args = append(args, permute(vals, c.Perm)...)
	v := emitCall(b, callee, args, c.suspends, c.throws)
	if c.Wrap > 0 {
		return wrapInt(v, c.Wrap)
	}

	return v
}

// emitCall emits a call following the calling convention of the callee.
func emitCall(b *generate.Block, callee string, args []string, suspends, throws bool) string {
	switch {
	case suspends:
		return b.Split(func(next string) string {
			full := append([]string{}, args...)
			if throws {
				if b.Escape == "" {
					report.Raise(report.Codegen, "not in a throwable context")
				}

				full = append(full, b.Escape)
			}

			return callee + "(" + strings.Join(append(full, next), ", ") + ")"
		})
	case throws && b.Escape != "":
		r := b.Function().Local("r")
		b.Insert(r + " = FryCall(" + strings.Join(append([]string{b.Escape, callee}, args...), ", ") + ");")
		b.Insert("if (" + r + " === FryDidThrow) return;")
		return r
	default:
		return callee + "(" + strings.Join(args, ", ") + ")"
	}
}

// Primitive is a builtin operation rendered inline from its arguments.
type Primitive struct {
	Args   []Expr
	Perm   []int
	Typ    types.Type
	Format func(args []string) string
}

func (p *Primitive) Type() types.Type {
	return p.Typ
}

func (p *Primitive) Suspends() bool {
	return anySuspends(p.Args)
}

func (p *Primitive) Emit(b *generate.Block) string {
	return p.Format(permute(emitArgs(b, p.Args), p.Perm))
}

// -----------------------------------------------------------------------------

// StructLit builds a struct value: an array of the fields in declaration
// order.
type StructLit struct {
	Args []Expr
	Perm []int
	Typ  types.Type
}

func (sl *StructLit) Type() types.Type {
	return sl.Typ
}

func (sl *StructLit) Suspends() bool {
	return anySuspends(sl.Args)
}

func (sl *StructLit) Emit(b *generate.Block) string {
	return "[" + strings.Join(permute(emitArgs(b, sl.Args), sl.Perm), ", ") + "]"
}

// UnionLit builds a union value: a pair of the variant index and the value.
type UnionLit struct {
	Tag   int
	Value Expr
	Typ   types.Type
}

func (ul *UnionLit) Type() types.Type {
	return ul.Typ
}

func (ul *UnionLit) Suspends() bool {
	return ul.Value.Suspends()
}

func (ul *UnionLit) Emit(b *generate.Block) string {
	return "[" + strconv.Itoa(ul.Tag) + ", " + ul.Value.Emit(b) + "]"
}

// FieldGet reads a struct field.
type FieldGet struct {
	Base  Expr
	Index int
	Typ   types.Type
}

func (fg *FieldGet) Type() types.Type {
	return fg.Typ
}

func (fg *FieldGet) Suspends() bool {
	return fg.Base.Suspends()
}

func (fg *FieldGet) Emit(b *generate.Block) string {
	return fg.Base.Emit(b) + "[" + strconv.Itoa(fg.Index) + "]"
}

// FieldAssign stores a value into a struct field.
type FieldAssign struct {
	Base  Expr
	Index int
	Value Expr
}

func (fa *FieldAssign) Type() types.Type {
	return types.Void
}

func (fa *FieldAssign) Suspends() bool {
	return fa.Base.Suspends() || fa.Value.Suspends()
}

func (fa *FieldAssign) Emit(b *generate.Block) string {
	vals := emitArgs(b, []Expr{fa.Base, fa.Value})
	b.Insert(vals[0] + "[" + strconv.Itoa(fa.Index) + "] = " + vals[1] + ";")
	return ""
}

// UnionGet reads the value of a union variant.  Reading a variant other than
// the stored one is a runtime fault.
type UnionGet struct {
	Base Expr
	Tag  int
	Typ  types.Type
}

func (ug *UnionGet) Type() types.Type {
	return ug.Typ
}

func (ug *UnionGet) Suspends() bool {
	return ug.Base.Suspends()
}

func (ug *UnionGet) Emit(b *generate.Block) string {
	return "FryUnionGet(" + ug.Base.Emit(b) + ", " + strconv.Itoa(ug.Tag) + ")"
}

// UnionTest tests which variant a union holds.
type UnionTest struct {
	Base Expr
	Tag  int
}

func (ut *UnionTest) Type() types.Type {
	return types.Bool
}

func (ut *UnionTest) Suspends() bool {
	return ut.Base.Suspends()
}

func (ut *UnionTest) Emit(b *generate.Block) string {
	return "(" + ut.Base.Emit(b) + "[0] === " + strconv.Itoa(ut.Tag) + ")"
}

// TraitObject wraps a value in the method table of one of its trait
// implementations.
type TraitObject struct {
	Value   Expr
	Builder string
	Typ     types.Type
}

func (to *TraitObject) Type() types.Type {
	return to.Typ
}

func (to *TraitObject) Suspends() bool {
	return to.Value.Suspends()
}

func (to *TraitObject) Emit(b *generate.Block) string {
	return to.Builder + "(" + to.Value.Emit(b) + ")"
}
