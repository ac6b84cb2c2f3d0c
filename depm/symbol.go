package depm

import "fryc/report"

// SymbolKind is the kind of declaration a symbol names.
type SymbolKind int

// Enumeration of symbol kinds.
const (
	SKFunc SymbolKind = iota
	SKStruct
	SKUnion
	SKTrait
)

// Symbol is a top-level declaration of a file.  It records where the
// declaration starts in the file's tag stream and resolves lazily to the
// compiled entity.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	File  *File
	Index int

	entity    interface{}
	resolving bool
}

// Resolver compiles symbols into entities.
type Resolver interface {
	CompileSymbol(sym *Symbol) interface{}
}

// Resolve returns the compiled entity of the symbol, compiling it on first
// use.  Every later call returns the identical entity.
func (s *Symbol) Resolve(r Resolver) interface{} {
	if s.entity != nil {
		return s.entity
	}

	if s.resolving {
		report.Raise(report.Name, "`%s` is defined in terms of itself", s.Name)
	}

	s.resolving = true
	defer func() { s.resolving = false }()

	entity := r.CompileSymbol(s)
	if s.entity == nil {
		s.entity = entity
	}

	return s.entity
}

// Bind records the entity of a symbol before its compilation has finished so
// that the declaration can refer to itself.
func (s *Symbol) Bind(entity interface{}) {
	s.entity = entity
}

// Resolved reports whether the symbol has a compiled entity.
func (s *Symbol) Resolved() bool {
	return s.entity != nil
}
