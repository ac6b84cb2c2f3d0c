package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Type represents a Fry data type.
type Type interface {
	// Repr returns the type as it would be written in Fry source.
	Repr() string

	// Equals tests if two types are exactly identical.  No coercion or
	// widening is ever applied.
	Equals(other Type) bool

	// Key returns a canonical string for the type.  Two types are equal iff
	// their keys are equal so keys may be used to index maps by type.
	Key() string
}

// -----------------------------------------------------------------------------

// VoidType is the type of expressions which produce no value.
type VoidType struct{}

// Void is the single void type.
var Void = &VoidType{}

func (vt *VoidType) Repr() string {
	return "Void"
}

func (vt *VoidType) Equals(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}

func (vt *VoidType) Key() string {
	return "void"
}

// -----------------------------------------------------------------------------

// IntType is a signed integer of a fixed bit width.  Width one is the boolean
// type.
type IntType struct {
	Bits int
}

var intTypes = make(map[int]*IntType)

// Int returns the interned integer type of the given width.
func Int(bits int) *IntType {
	if it, ok := intTypes[bits]; ok {
		return it
	}

	it := &IntType{Bits: bits}
	intTypes[bits] = it
	return it
}

// Commonly used integer types.
var (
	Bool  = Int(1)
	Int8  = Int(8)
	Int16 = Int(16)
	Int32 = Int(32)
)

func (it *IntType) Repr() string {
	if it.Bits == 1 {
		return "Bool"
	}

	return "Int" + strconv.Itoa(it.Bits)
}

func (it *IntType) Equals(other Type) bool {
	if oit, ok := other.(*IntType); ok {
		return it.Bits == oit.Bits
	}

	return false
}

func (it *IntType) Key() string {
	return "i" + strconv.Itoa(it.Bits)
}

// -----------------------------------------------------------------------------

// typeOfTypes is the type of expressions which evaluate to types.
type typeOfTypes struct{}

// TypeOfTypes is the type of type expressions such as `Int32`.
var TypeOfTypes Type = &typeOfTypes{}

func (tt *typeOfTypes) Repr() string {
	return "TypeOfTypes"
}

func (tt *typeOfTypes) Equals(other Type) bool {
	_, ok := other.(*typeOfTypes)
	return ok
}

func (tt *typeOfTypes) Key() string {
	return "type"
}

// -----------------------------------------------------------------------------

// OpaqueType is a runtime-provided type with no visible structure.
type OpaqueType struct {
	Name string
}

// The builtin opaque types.
var (
	String = &OpaqueType{Name: "String"}
	Coro   = &OpaqueType{Name: "Coro"}
)

func (ot *OpaqueType) Repr() string {
	return ot.Name
}

func (ot *OpaqueType) Equals(other Type) bool {
	return ot == other
}

func (ot *OpaqueType) Key() string {
	return "opaque:" + ot.Name
}

// -----------------------------------------------------------------------------

var typeVarCounter int

// TypeVariable is a generic type parameter.  Type variables are compared by
// identity: two parameters with the same name are still distinct.
type TypeVariable struct {
	Name  string
	Bound Bound

	id int
}

// NewTypeVariable creates a fresh type variable.
func NewTypeVariable(name string, bound Bound) *TypeVariable {
	typeVarCounter++
	return &TypeVariable{Name: name, Bound: bound, id: typeVarCounter}
}

func (tv *TypeVariable) Repr() string {
	return tv.Name
}

func (tv *TypeVariable) Equals(other Type) bool {
	return tv == other
}

func (tv *TypeVariable) Key() string {
	return fmt.Sprintf("'%s#%d", tv.Name, tv.id)
}

// -----------------------------------------------------------------------------

var ctorCounter int

// Constructor is a declaration which produces types: a struct, union or trait
// declaration or a builtin type constructor.
type Constructor interface {
	// Name returns the declared name of the constructor.
	Name() string

	// ID returns the unique identifier of the constructor.
	ID() int
}

// NewConstructorID returns a unique constructor identifier.
func NewConstructorID() int {
	ctorCounter++
	return ctorCounter
}

// ConstructedType is a constructor applied to a list of type arguments.  A
// non-generic declaration is a constructed type with no arguments.
type ConstructedType struct {
	Ctor Constructor
	Args []Type
}

// NewConstructedType creates a new constructed type.
func NewConstructedType(ctor Constructor, args []Type) *ConstructedType {
	return &ConstructedType{Ctor: ctor, Args: args}
}

func (ct *ConstructedType) Repr() string {
	if len(ct.Args) == 0 {
		return ct.Ctor.Name()
	}

	argReprs := make([]string, len(ct.Args))
	for i, arg := range ct.Args {
		argReprs[i] = arg.Repr()
	}

	return ct.Ctor.Name() + "<" + strings.Join(argReprs, ", ") + ">"
}

func (ct *ConstructedType) Equals(other Type) bool {
	oct, ok := other.(*ConstructedType)
	if !ok || ct.Ctor.ID() != oct.Ctor.ID() || len(ct.Args) != len(oct.Args) {
		return false
	}

	for i, arg := range ct.Args {
		if !arg.Equals(oct.Args[i]) {
			return false
		}
	}

	return true
}

func (ct *ConstructedType) Key() string {
	sb := strings.Builder{}
	sb.WriteString(strconv.Itoa(ct.Ctor.ID()))
	sb.WriteRune('(')

	for i, arg := range ct.Args {
		if i > 0 {
			sb.WriteRune(',')
		}

		sb.WriteString(arg.Key())
	}

	sb.WriteRune(')')
	return sb.String()
}

// Mapping returns the substitution from the constructor's parameters to the
// type's arguments.
func (ct *ConstructedType) Mapping(params []*TypeVariable) Mapping {
	m := make(Mapping, len(params))
	for i, param := range params {
		if i < len(ct.Args) {
			m[param] = ct.Args[i]
		}
	}

	return m
}

// -----------------------------------------------------------------------------

// arrayCtor is the builtin constructor of array types.
type arrayCtor struct {
	id int
}

// ArrayCtor constructs `Array<T>`.
var ArrayCtor Constructor = &arrayCtor{id: NewConstructorID()}

func (ac *arrayCtor) Name() string {
	return "Array"
}

func (ac *arrayCtor) ID() int {
	return ac.id
}

// ArrayOf returns the array type with the given element type.
func ArrayOf(elem Type) *ConstructedType {
	return NewConstructedType(ArrayCtor, []Type{elem})
}

// ElemType returns the element type of an array type.
func ElemType(t Type) (Type, bool) {
	if ct, ok := t.(*ConstructedType); ok && ct.Ctor == ArrayCtor {
		return ct.Args[0], true
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// IsValueType reports whether values of the type can be stored in variables.
func IsValueType(t Type) bool {
	switch t.(type) {
	case *IntType, *OpaqueType, *TypeVariable, *ConstructedType:
		return true
	default:
		return false
	}
}
