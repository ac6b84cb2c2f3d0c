package generate

import "strings"

// Function is a generated target function.
type Function struct {
	// Sym is the globally unique name of the function.
	Sym string

	// Suspends marks a continuation-passing function: it receives a `ret`
	// continuation after its parameters.
	Suspends bool

	// Throws marks a function which may raise.  Suspending throwing functions
	// also receive an `exc` escape callback before `ret`.
	Throws bool

	params []string
	vars   []string
	locals *SymbolGenerator
	root   *Block

	raw    string
	hasRaw bool
}

// Root returns the body block of the function.
func (fn *Function) Root() *Block {
	return fn.root
}

// Param adds a parameter and returns its target name.
func (fn *Function) Param(name string) string {
	sym := fn.locals.Generate(name)
	fn.params = append(fn.params, sym)
	return sym
}

// RawParam adds a parameter whose name is used verbatim.
func (fn *Function) RawParam(name string) {
	fn.params = append(fn.params, name)
}

// Local declares a new local variable and returns its target name.
func (fn *Function) Local(name string) string {
	sym := fn.locals.Generate(name)
	fn.vars = append(fn.vars, sym)
	return sym
}

// SetRaw replaces the body of the function with verbatim target code.
func (fn *Function) SetRaw(body string) {
	fn.raw = body
	fn.hasRaw = true
}

func (fn *Function) String() string {
	params := fn.params
	if fn.Suspends {
		params = append(append([]string{}, params...), fn.continuationParams()...)
	}

	// A raw suspending body continues synchronously through `ret` or parks
	// the current coroutine and hands `cont` to the host, which resumes it
	// with the result.
	if fn.hasRaw {
		header := "function " + fn.Sym + "(" + strings.Join(params, ", ") + ") {\n"
		if fn.Suspends {
			header += "var cont = FryCoroWrap(ret);\n"
		}

		return header + fn.raw + "\n}"
	}

	sb := strings.Builder{}
	sb.WriteString("function " + fn.Sym + "(" + strings.Join(params, ", ") + ") {\n")

	if len(fn.vars) > 0 {
		sb.WriteString("var " + strings.Join(fn.vars, ", ") + ";\n")
	}

	if fn.Suspends {
		sb.WriteString("var cont = ret;\n")
		sb.WriteString(fn.root.SuspendableBody())
	} else {
		sb.WriteString(fn.root.NativeBody())
	}

	sb.WriteString("}")
	return sb.String()
}

func (fn *Function) continuationParams() []string {
	if fn.Throws {
		return []string{"exc", "ret"}
	}

	return []string{"ret"}
}
