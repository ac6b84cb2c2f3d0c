package depm

import (
	"fryc/generate"
	"fryc/report"
)

// Scope is a link in a chain of lexical scopes.
type Scope interface {
	// Parent returns the enclosing scope or nil.
	Parent() Scope

	// LookupLocal looks up a name without consulting the parent.
	LookupLocal(name string) (interface{}, bool)
}

// Lookup resolves a name by walking the scope chain outward.
func Lookup(s Scope, name string) interface{} {
	if v, ok := TryLookup(s, name); ok {
		return v
	}

	report.Raise(report.Name, "undefined symbol `%s`", name)
	return nil
}

// TryLookup resolves a name by walking the scope chain outward and reports
// whether it was found.
func TryLookup(s Scope, name string) (interface{}, bool) {
	for ; s != nil; s = s.Parent() {
		if v, ok := s.LookupLocal(name); ok {
			return v, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// SymbolScope is a plain lexical scope with its own table.
type SymbolScope struct {
	parent Scope
	table  map[string]interface{}
}

// NewSymbolScope creates a scope nested in parent.
func NewSymbolScope(parent Scope) *SymbolScope {
	return &SymbolScope{parent: parent, table: make(map[string]interface{})}
}

func (ss *SymbolScope) Parent() Scope {
	return ss.parent
}

func (ss *SymbolScope) LookupLocal(name string) (interface{}, bool) {
	v, ok := ss.table[name]
	return v, ok
}

// Define binds a name in this scope only.  Names may shadow bindings of
// enclosing scopes but not be redefined in the same scope.
func (ss *SymbolScope) Define(name string, value interface{}) {
	if _, ok := ss.table[name]; ok {
		report.Raise(report.Name, "multiple symbols named `%s` defined in the same scope", name)
	}

	ss.table[name] = value
}

// -----------------------------------------------------------------------------

// IncludeScope forwards lookups to the top-level declarations of included
// files.  Files are searched in inclusion order and the first match wins.
type IncludeScope struct {
	parent Scope
	files  []*File
}

// NewIncludeScope creates an include scope nested in parent.
func NewIncludeScope(parent Scope) *IncludeScope {
	return &IncludeScope{parent: parent}
}

// Add appends an included file.
func (is *IncludeScope) Add(f *File) {
	is.files = append(is.files, f)
}

func (is *IncludeScope) Parent() Scope {
	return is.parent
}

func (is *IncludeScope) LookupLocal(name string) (interface{}, bool) {
	for _, f := range is.files {
		if v, ok := f.Decls.LookupLocal(name); ok {
			return v, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// ImplementScope binds `self` and the formal parameters of the trait method
// being implemented.  These names never reach the parent chain.
type ImplementScope struct {
	parent Scope
	self   *Variable
	params map[string]*Variable
}

// NewImplementScope creates an implement scope nested in parent.
func NewImplementScope(parent Scope, self *Variable, params map[string]*Variable) *ImplementScope {
	return &ImplementScope{parent: parent, self: self, params: params}
}

func (is *ImplementScope) Parent() Scope {
	return is.parent
}

func (is *ImplementScope) LookupLocal(name string) (interface{}, bool) {
	if name == "self" {
		return is.self, true
	}

	if v, ok := is.params[name]; ok {
		return v, true
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// ClosureScope sits between the body of a closure and its enclosing scopes.
// Any variable resolved through it is captured into a slot of the closure's
// environment.  Captures are memoized per name.
type ClosureScope struct {
	parent   Scope
	fields   *generate.SymbolGenerator
	captures map[string]*ClosureVariable

	// Captured lists the captures in order of first reference.
	Captured []*ClosureVariable
}

// NewClosureScope creates a closure scope nested in parent.
func NewClosureScope(parent Scope) *ClosureScope {
	return &ClosureScope{
		parent:   parent,
		fields:   generate.NewSymbolGenerator(""),
		captures: make(map[string]*ClosureVariable),
	}
}

func (cs *ClosureScope) Parent() Scope {
	return cs.parent
}

// LookupLocal resolves the name in the enclosing scopes.  Variables become
// captures; every other value is passed through unchanged.
func (cs *ClosureScope) LookupLocal(name string) (interface{}, bool) {
	if cv, ok := cs.captures[name]; ok {
		return cv, true
	}

	v, ok := TryLookup(cs.parent, name)
	if !ok {
		return nil, false
	}

	typ := VariableType(v)
	if typ == nil {
		return v, true
	}

	cv := &ClosureVariable{
		Field:  cs.fields.Generate(name),
		Source: v,
		typ:    typ,
	}

	cs.captures[name] = cv
	cs.Captured = append(cs.Captured, cv)
	return cv, true
}
