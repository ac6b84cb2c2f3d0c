package depm

import "fryc/types"

// Variable is a local variable or parameter of a generated function.
type Variable struct {
	Name string

	// Sym is the target name of the variable.
	Sym string

	Type types.Type
}

// ClosureVariable is an outer variable captured into a closure environment.
type ClosureVariable struct {
	// Field is the name of the environment slot.
	Field string

	// Source is the captured Variable or ClosureVariable of the enclosing
	// function.
	Source interface{}

	typ types.Type
}

// Type returns the type of the captured variable.
func (cv *ClosureVariable) Type() types.Type {
	return cv.typ
}

// Ref returns the target expression which reads a variable value: a
// Variable or a ClosureVariable.
func Ref(v interface{}) string {
	switch vv := v.(type) {
	case *Variable:
		return vv.Sym
	case *ClosureVariable:
		return "env." + vv.Field
	default:
		return ""
	}
}

// VariableType returns the type of a Variable or ClosureVariable and nil for
// any other value.
func VariableType(v interface{}) types.Type {
	switch vv := v.(type) {
	case *Variable:
		return vv.Type
	case *ClosureVariable:
		return vv.typ
	default:
		return nil
	}
}
