package generate

import (
	"strconv"
	"strings"
)

// Program is the target program being generated.  It owns the program-wide
// function symbol generator.
type Program struct {
	funcSyms *SymbolGenerator
	funcs    []*Function
	exports  []export
}

type export struct {
	name, sym string
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{funcSyms: NewSymbolGenerator("$")}
}

// NewFunction creates a new function named from name and adds it to the
// program.
func (p *Program) NewFunction(name string, suspends, throws bool) *Function {
	fn := &Function{
		Sym:      p.funcSyms.Generate(name),
		Suspends: suspends,
		Throws:   throws,
		locals:   NewSymbolGenerator("_"),
	}

	fn.root = &Block{
		fn:          fn,
		frames:      []*frame{{}},
		Suspendable: suspends,
		Throwable:   throws,
	}

	if suspends && throws {
		fn.root.Escape = "exc"
	}

	p.funcs = append(p.funcs, fn)
	return fn
}

// SymbolCount returns the number of function symbols generated so far.
func (p *Program) SymbolCount() int {
	return p.funcSyms.Count()
}

// Export exposes a function to the host under its source name.
func (p *Program) Export(name, sym string) {
	p.exports = append(p.exports, export{name: name, sym: sym})
}

// String renders the full program: the runtime preamble, every function and
// the export table.
func (p *Program) String() string {
	sb := strings.Builder{}
	sb.WriteString(Preamble)

	for _, fn := range p.funcs {
		sb.WriteString("\n")
		sb.WriteString(fn.String())
		sb.WriteString("\n")
	}

	sb.WriteString("\nvar FryExports = {")
	for i, exp := range p.exports {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(strconv.Quote(exp.name))
		sb.WriteString(": ")
		sb.WriteString(exp.sym)
	}
	sb.WriteString("};\n")

	return sb.String()
}
