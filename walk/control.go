package walk

import (
	"strings"

	"fryc/depm"
	"fryc/generate"
	"fryc/types"
)

// Case is one arm of a branch.  The else arm has no condition.
type Case struct {
	Cond Expr
	Body []Expr
}

// Branch is an `if` statement with its `else if` and `else` arms.
type Branch struct {
	Cases []Case
}

func (br *Branch) Type() types.Type {
	return types.Void
}

func (br *Branch) Suspends() bool {
	for _, c := range br.Cases {
		if (c.Cond != nil && c.Cond.Suspends()) || anySuspends(c.Body) {
			return true
		}
	}

	return false
}

func (br *Branch) Emit(b *generate.Block) string {
	if !br.Suspends() {
		br.emitNative(b, 0)
		return ""
	}

	// every arm continues into the after frame exactly once
	after := b.NewFrameName("after")
	hasElse := false
	for _, c := range br.Cases {
		var cond string
		if c.Cond != nil {
			cond = c.Cond.Emit(b)
		}

		arm := b.Child()
		emitStmts(arm, c.Body)
		call := "return " + arm.SuspendableFunction() + "(" + after + ");"

		if c.Cond == nil {
			b.Insert(call)
			hasElse = true
			break
		}

		b.Insert("if (" + cond + ") " + call)
	}

	if !hasElse {
		b.Insert("return " + after + "();")
	}

	b.StartFrame(after)
	return ""
}

func (br *Branch) emitNative(b *generate.Block, n int) {
	c := br.Cases[n]
	if c.Cond == nil {
		arm := b.Child()
		emitStmts(arm, c.Body)
		b.Insert("{\n" + arm.NativeBody() + "}")
		return
	}

	cond := c.Cond.Emit(b)
	then := b.Child()
	emitStmts(then, c.Body)

	line := "if (" + cond + ") {\n" + then.NativeBody() + "}"
	if n+1 < len(br.Cases) {
		// the conditions of later arms are evaluated inside the else
		els := b.Child()
		br.emitNative(els, n+1)
		line += " else {\n" + els.NativeBody() + "}"
	}

	b.Insert(line)
}

// -----------------------------------------------------------------------------

// While is a `while` loop.
type While struct {
	Cond Expr
	Body []Expr
}

func (wl *While) Type() types.Type {
	return types.Void
}

func (wl *While) Suspends() bool {
	return wl.Cond.Suspends() || anySuspends(wl.Body)
}

func (wl *While) Emit(b *generate.Block) string {
	if !wl.Suspends() {
		loop := b.Child()
		cond := wl.Cond.Emit(loop)
		loop.Insert("if (!(" + cond + ")) break;")
		emitStmts(loop, wl.Body)
		b.Insert("while (true) {\n" + loop.NativeBody() + "}")
		return ""
	}

	// each iteration ends by calling next, which runs the loop frame again
	// without growing the stack when the iteration did not suspend
	loopName := b.NewFrameName("loop")
	after := b.NewFrameName("after")
	next := b.Function().Local("next")
	b.Insert(next + " = FryLoop(" + loopName + ");")
	b.Insert("return " + next + "();")

	b.StartFrame(loopName)
	cond := wl.Cond.Emit(b)
	b.Insert("if (!(" + cond + ")) return " + after + "();")

	body := b.Child()
	emitStmts(body, wl.Body)
	b.Insert("return " + body.SuspendableFunction() + "(" + next + ");")

	b.StartFrame(after)
	return ""
}

// -----------------------------------------------------------------------------

// Try runs its body and, if the body throws, its handler.  ErrVar receives
// the thrown value when the handler names it.
type Try struct {
	Body    []Expr
	Handler []Expr
	ErrVar  *depm.Variable
}

func (tr *Try) Type() types.Type {
	return types.Void
}

func (tr *Try) Suspends() bool {
	return anySuspends(tr.Body) || anySuspends(tr.Handler)
}

func (tr *Try) Emit(b *generate.Block) string {
	if !tr.Suspends() {
		body := b.Child()
		body.Throwable = true
		body.Escape = ""
		emitStmts(body, tr.Body)

		handler := b.Child()
		if tr.ErrVar != nil {
			handler.Insert(tr.ErrVar.Sym + " = e.value;")
		}
		emitStmts(handler, tr.Handler)

		b.Insert("try {\n" + body.NativeBody() + "} catch (e) {\nif (!(e instanceof FryError)) throw e;\n" +
			handler.NativeBody() + "}")
		return ""
	}

	after := b.NewFrameName("after")
	exc := b.Function().Local("exc")

	handler := b.Child()
	if tr.ErrVar != nil {
		handler.Insert(tr.ErrVar.Sym + " = err;")
	}
	emitStmts(handler, tr.Handler)

	body := b.Child()
	body.Throwable = true
	body.Escape = exc
	emitStmts(body, tr.Body)

	b.Insert(exc + " = function(err) {\nreturn " + handler.SuspendableFunction() + "(" + after + ");\n};")
	b.Insert("return " + body.SuspendableFunction() + "(" + after + ");")

	b.StartFrame(after)
	return ""
}

// Throw raises a value.
type Throw struct {
	Value Expr
}

func (th *Throw) Type() types.Type {
	return types.Void
}

func (th *Throw) Suspends() bool {
	return th.Value.Suspends()
}

func (th *Throw) Emit(b *generate.Block) string {
	v := th.Value.Emit(b)
	if b.Escape != "" {
		b.Insert("return " + b.Escape + "(" + v + ");")
	} else {
		b.Insert("FryThrow(" + v + ");")
	}

	return ""
}

// Return exits the enclosing function.
type Return struct {
	Value Expr
}

func (r *Return) Type() types.Type {
	return types.Void
}

func (r *Return) Suspends() bool {
	return r.Value != nil && r.Value.Suspends()
}

func (r *Return) Emit(b *generate.Block) string {
	v := ""
	if r.Value != nil {
		v = r.Value.Emit(b)
	}

	if b.Function().Suspends {
		b.Insert("return ret(" + v + ");")
	} else if v == "" {
		b.Insert("return;")
	} else {
		b.Insert("return " + v + ";")
	}

	return ""
}

// -----------------------------------------------------------------------------

// Spawn creates a coroutine from a lifted body.  The outer variables used by
// the body are copied into its environment when the coroutine is created.
type Spawn struct {
	Fn      *generate.Function
	Body    []Expr
	Closure *depm.ClosureScope

	emitted bool
}

func (sp *Spawn) Type() types.Type {
	return types.Coro
}

func (sp *Spawn) Suspends() bool {
	return false
}

func (sp *Spawn) Emit(b *generate.Block) string {
	if !sp.emitted {
		emitStmts(sp.Fn.Root(), sp.Body)
		sp.emitted = true
	}

	fields := make([]string, len(sp.Closure.Captured))
	for i, cv := range sp.Closure.Captured {
		fields[i] = cv.Field + ": " + depm.Ref(cv.Source)
	}

	return "FryCoroNew(" + sp.Fn.Sym + ", {" + strings.Join(fields, ", ") + "})"
}

// Suspend yields control back to the resumer of the current coroutine.
type Suspend struct{}

func (s *Suspend) Type() types.Type {
	return types.Void
}

func (s *Suspend) Suspends() bool {
	return true
}

func (s *Suspend) Emit(b *generate.Block) string {
	b.Split(func(next string) string {
		return "FrySuspend(" + next + ")"
	})

	return ""
}
