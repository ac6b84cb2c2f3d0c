package types

// Mapping substitutes type variables with types.
type Mapping map[*TypeVariable]Type

// Subst applies a mapping to a type.  Constructed types are rebuilt with
// their arguments substituted so that nested instantiations compose.
func Subst(t Type, m Mapping) Type {
	if len(m) == 0 {
		return t
	}

	switch v := t.(type) {
	case *TypeVariable:
		if st, ok := m[v]; ok {
			return st
		}
	case *ConstructedType:
		if len(v.Args) == 0 {
			return v
		}

		args := make([]Type, len(v.Args))
		for i, arg := range v.Args {
			args[i] = Subst(arg, m)
		}

		return NewConstructedType(v.Ctor, args)
	}

	return t
}

// Candidates collects the types observed for each type variable being
// inferred.
type Candidates map[*TypeVariable][]Type

// Unify matches an argument type against a parameter type and records the
// argument types which line up with the inferred variables.
func Unify(param, arg Type, cands Candidates) {
	switch v := param.(type) {
	case *TypeVariable:
		if _, ok := cands[v]; ok {
			cands[v] = append(cands[v], arg)
		}
	case *ConstructedType:
		if av, ok := arg.(*ConstructedType); ok && av.Ctor.ID() == v.Ctor.ID() && len(av.Args) == len(v.Args) {
			for i, pa := range v.Args {
				Unify(pa, av.Args[i], cands)
			}
		}
	}
}

// InferResult is the outcome of choosing a type from a candidate set.
type InferResult int

// Enumeration of inference results.
const (
	Inferred InferResult = iota
	NoCandidates
	Ambiguous
)

// Infer chooses the most specific type from a candidate set.  Any other type
// outranks a bare type variable.  Two distinct candidates of the best rank are
// ambiguous.
func Infer(cands []Type) (Type, InferResult) {
	if len(cands) == 0 {
		return nil, NoCandidates
	}

	bestRank := 0
	for _, cand := range cands {
		if inferRank(cand) > bestRank {
			bestRank = inferRank(cand)
		}
	}

	var best Type
	for _, cand := range cands {
		if inferRank(cand) != bestRank {
			continue
		}

		if best == nil {
			best = cand
		} else if !best.Equals(cand) {
			return nil, Ambiguous
		}
	}

	return best, Inferred
}

func inferRank(t Type) int {
	if _, ok := t.(*TypeVariable); ok {
		return 0
	}

	return 1
}
