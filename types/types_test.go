package types

import "testing"

type testCtor struct {
	name string
	id   int
}

func newTestCtor(name string) *testCtor {
	return &testCtor{name: name, id: NewConstructorID()}
}

func (tc *testCtor) Name() string { return tc.name }
func (tc *testCtor) ID() int      { return tc.id }

func TestConstructedTypeEquality(t *testing.T) {
	pair := newTestCtor("Pair")

	// Two instantiations built at different sites.
	a := NewConstructedType(pair, []Type{Int32, ArrayOf(Int8)})
	b := NewConstructedType(pair, []Type{Int(32), ArrayOf(Int(8))})

	if !a.Equals(b) || !b.Equals(a) {
		t.Fatal("structurally equal instantiations must be equal")
	}

	if a.Key() != b.Key() {
		t.Fatalf("equal types must have equal keys: %s vs %s", a.Key(), b.Key())
	}

	seen := map[string]Type{a.Key(): a}
	if _, ok := seen[b.Key()]; !ok {
		t.Fatal("instantiation was not found by key")
	}

	c := NewConstructedType(pair, []Type{Int16, ArrayOf(Int8)})
	if a.Equals(c) || a.Key() == c.Key() {
		t.Fatal("instantiations with different arguments must differ")
	}

	other := NewConstructedType(newTestCtor("Pair"), []Type{Int32, ArrayOf(Int8)})
	if a.Equals(other) {
		t.Fatal("constructors are compared by identity, not name")
	}

	if got := a.Repr(); got != "Pair<Int32, Array<Int8>>" {
		t.Errorf("unexpected repr %q", got)
	}
}

func TestTypeVariablesAreIdentityBased(t *testing.T) {
	a := NewTypeVariable("T", Any)
	b := NewTypeVariable("T", Any)

	if a.Equals(b) || a.Key() == b.Key() {
		t.Fatal("distinct type variables must not be equal")
	}

	if !a.Equals(a) {
		t.Fatal("a type variable must equal itself")
	}
}

func TestSubstComposes(t *testing.T) {
	box := newTestCtor("Box")
	outer := NewTypeVariable("T", Any)
	inner := NewTypeVariable("U", Any)

	// Box<Array<U>> with U := T then T := Int32
	ty := NewConstructedType(box, []Type{ArrayOf(inner)})
	ty2 := Subst(ty, Mapping{inner: outer})
	ty3 := Subst(ty2, Mapping{outer: Int32})

	want := NewConstructedType(box, []Type{ArrayOf(Int32)})
	if !ty3.Equals(want) {
		t.Fatalf("got %s, want %s", ty3.Repr(), want.Repr())
	}
}

func TestInfer(t *testing.T) {
	tv := NewTypeVariable("T", Num)
	tv2 := NewTypeVariable("U", Num)

	cases := []struct {
		name   string
		cands  []Type
		want   Type
		result InferResult
	}{
		{"empty", nil, nil, NoCandidates},
		{"single", []Type{Int32}, Int32, Inferred},
		{"repeated", []Type{Int8, Int8}, Int8, Inferred},
		{"concrete outranks variable", []Type{tv, Int16}, Int16, Inferred},
		{"variable only", []Type{tv}, tv, Inferred},
		{"concrete outranks tied variables", []Type{tv, tv2, Int32}, Int32, Inferred},
		{"tie", []Type{Int32, Int8}, nil, Ambiguous},
		{"variable tie", []Type{tv, tv2}, nil, Ambiguous},
	}

	for _, c := range cases {
		got, result := Infer(c.cands)
		if result != c.result {
			t.Errorf("%s: got result %d, want %d", c.name, result, c.result)
			continue
		}

		if c.want != nil && !got.Equals(c.want) {
			t.Errorf("%s: got %s, want %s", c.name, got.Repr(), c.want.Repr())
		}
	}
}

func TestUnifyThroughConstructors(t *testing.T) {
	tv := NewTypeVariable("T", Any)
	cands := Candidates{tv: nil}

	Unify(ArrayOf(tv), ArrayOf(String), cands)
	Unify(tv, String, cands)
	Unify(Int32, Int32, cands)

	if len(cands[tv]) != 2 {
		t.Fatalf("expected two candidates, got %d", len(cands[tv]))
	}

	if got, res := Infer(cands[tv]); res != Inferred || got != String {
		t.Fatalf("expected String, got %v", got)
	}
}

func TestBounds(t *testing.T) {
	numVar := NewTypeVariable("N", Num)
	anyVar := NewTypeVariable("A", Any)

	if !Num.Matches(Int32) || Num.Matches(Bool) || Num.Matches(String) {
		t.Error("NumType matches the wrong types")
	}

	if !Num.Matches(numVar) || Num.Matches(anyVar) {
		t.Error("NumType must match variables by their bound")
	}

	if !Any.Matches(String) || Any.Matches(Void) || Any.Matches(TypeOfTypes) {
		t.Error("Type must match exactly the value types")
	}

	show := NewConstructedType(newTestCtor("Show"), nil)
	impl := &ImplBound{
		Trait: show,
		Has:   func(trait, ty Type) bool { return ty.Equals(Int32) },
	}

	if !impl.Matches(Int32) || impl.Matches(Int8) {
		t.Error("Impl bound must defer to its predicate")
	}

	if !impl.Matches(NewTypeVariable("S", &ImplBound{Trait: show})) {
		t.Error("Impl bound must match variables with the same bound")
	}
}
