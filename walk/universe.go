package walk

import (
	"fryc/depm"
	"fryc/report"
	"fryc/types"
)

// newUniverse creates the root scope holding the builtin types, traits and
// constants.
func (w *Walker) newUniverse() *depm.SymbolScope {
	root := depm.NewSymbolScope(nil)

	for name, v := range map[string]interface{}{
		"Int8":    types.Int8,
		"Int16":   types.Int16,
		"Int32":   types.Int32,
		"Bool":    types.Bool,
		"String":  types.String,
		"Coro":    types.Coro,
		"Void":    types.Void,
		"Type":    types.Any,
		"NumType": types.Num,
		"IntType": types.Integer,
		"Impl":    implGeneric{},
		"Array":   arrayGeneric{},
		"true":    &Literal{Text: "true", Typ: types.Bool},
		"false":   &Literal{Text: "false", Typ: types.Bool},
	} {
		root.Define(name, v)
	}

	return root
}

// implGeneric is `Impl<T>`: the trait matched by implementors of a user
// trait.
type implGeneric struct{}

func (implGeneric) instantiate(w *Walker, args []interface{}) interface{} {
	if len(args) == 1 {
		if ct, ok := args[0].(*types.ConstructedType); ok {
			if _, ok := ct.Ctor.(*TraitCtor); ok {
				return &types.ImplBound{Trait: ct, Has: w.hasImpl}
			}
		}
	}

	report.Raise(report.Type, "`Impl` takes exactly one trait argument")
	return nil
}

// arrayGeneric is `Array<T>`.
type arrayGeneric struct{}

func (arrayGeneric) instantiate(w *Walker, args []interface{}) interface{} {
	if len(args) == 1 {
		if t, ok := args[0].(types.Type); ok && types.IsValueType(t) {
			return types.ArrayOf(t)
		}
	}

	report.Raise(report.Type, "`Array` takes exactly one element type")
	return nil
}
