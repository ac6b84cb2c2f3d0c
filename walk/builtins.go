package walk

import (
	"strconv"

	"fryc/types"
)

// builtin builds the expression of a call to a builtin function from its
// bound arguments and return type.
type builtin func(ba *boundArgs, ret types.Type) Expr

// builtins maps the names of `@builtin` functions to their implementations.
var builtins = map[string]builtin{
	"add": arith("+"),
	"sub": arith("-"),
	"mul": arith("*"),
	"lt":  binary("<"),
	"gt":  binary(">"),
	"eq":  binary("==="),
	"and": binary("&&"),
	"or":  binary("||"),
	"not": inline(func(a []string) string {
		return "(!" + a[0] + ")"
	}),
	"print": inline(func(a []string) string {
		return "FryPrint(" + a[0] + ")"
	}),
	"length": inline(func(a []string) string {
		return "(" + a[0] + ".length | 0)"
	}),
	"at": inline(func(a []string) string {
		return a[0] + "[" + a[1] + "]"
	}),
	"resume": inline(func(a []string) string {
		return "FryCoroResume(" + a[0] + ")"
	}),
	"suspend": func(ba *boundArgs, ret types.Type) Expr {
		return &Suspend{}
	},
	"throw": func(ba *boundArgs, ret types.Type) Expr {
		return &Throw{Value: ba.args[ba.perm[0]]}
	},
}

func inline(format func(args []string) string) builtin {
	return func(ba *boundArgs, ret types.Type) Expr {
		return &Primitive{Args: ba.args, Perm: ba.perm, Typ: ret, Format: format}
	}
}

func binary(op string) builtin {
	return inline(func(a []string) string {
		return "(" + a[0] + " " + op + " " + a[1] + ")"
	})
}

// arith builds wrapping integer arithmetic.  The result is truncated to the
// bit width of the operand type.
func arith(op string) builtin {
	return func(ba *boundArgs, ret types.Type) Expr {
		bits := 32
		if it, ok := ret.(*types.IntType); ok {
			bits = it.Bits
		}

		return &Primitive{
			Args: ba.args,
			Perm: ba.perm,
			Typ:  ret,
			Format: func(a []string) string {
				var v string
				if op == "*" {
					v = "Math.imul(" + a[0] + ", " + a[1] + ")"
				} else {
					v = "(" + a[0] + " " + op + " " + a[1] + ")"
				}

				return wrapInt(v, bits)
			},
		}
	}
}

// wrapInt truncates a JavaScript number to a signed integer of the given
// width.
func wrapInt(v string, bits int) string {
	switch {
	case bits >= 32:
		return "(" + v + " | 0)"
	default:
		shift := strconv.Itoa(32 - bits)
		return "(" + v + " << " + shift + " >> " + shift + ")"
	}
}
