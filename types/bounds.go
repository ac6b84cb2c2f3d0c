package types

// Bound is a predicate over types used to constrain type parameters.  A field
// whose type is a bound declares a type parameter rather than a value.
type Bound interface {
	Repr() string
	Matches(t Type) bool
}

// AnyBound is matched by every value type.  It is spelled `Type` in source.
type AnyBound struct{}

func (ab *AnyBound) Repr() string {
	return "Type"
}

func (ab *AnyBound) Matches(t Type) bool {
	return IsValueType(t)
}

// NumBound is matched by numeric types.
type NumBound struct{}

func (nb *NumBound) Repr() string {
	return "NumType"
}

func (nb *NumBound) Matches(t Type) bool {
	switch v := t.(type) {
	case *IntType:
		return v.Bits > 1
	case *TypeVariable:
		switch v.Bound.(type) {
		case *NumBound, *IntBound:
			return true
		}
	}

	return false
}

// IntBound is matched by integer types.
type IntBound struct{}

func (ib *IntBound) Repr() string {
	return "IntType"
}

func (ib *IntBound) Matches(t Type) bool {
	switch v := t.(type) {
	case *IntType:
		return v.Bits > 1
	case *TypeVariable:
		_, ok := v.Bound.(*IntBound)
		return ok
	}

	return false
}

// The builtin bounds.
var (
	Any     = &AnyBound{}
	Num     = &NumBound{}
	Integer = &IntBound{}
)

// ImplBound is matched by types which implement a trait.
type ImplBound struct {
	Trait Type

	// Has reports whether an implementation of trait exists for t.
	Has func(trait, t Type) bool
}

func (ib *ImplBound) Repr() string {
	return "Impl<" + ib.Trait.Repr() + ">"
}

func (ib *ImplBound) Matches(t Type) bool {
	if tv, ok := t.(*TypeVariable); ok {
		if tvib, ok := tv.Bound.(*ImplBound); ok {
			return tvib.Trait.Equals(ib.Trait)
		}

		return false
	}

	return ib.Has(ib.Trait, t)
}
