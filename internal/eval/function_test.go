package eval

import "testing"

func TestSelectArityPrefersExactMatch(t *testing.T) {
	f := &Function{Arities: []Arity{
		{Fixed: []string{"x"}},
		{Fixed: []string{"x", "y"}, Variadic: "rest", HasRest: true},
	}}
	a, ok := f.SelectArity(1)
	if !ok || a.HasRest {
		t.Fatalf("expected the exact 1-fixed-arg arity, got %+v, ok=%v", a, ok)
	}
	a, ok = f.SelectArity(2)
	if !ok || !a.HasRest {
		t.Fatalf("expected the variadic arity for argc 2, got %+v, ok=%v", a, ok)
	}
	a, ok = f.SelectArity(5)
	if !ok || !a.HasRest {
		t.Fatalf("expected the variadic arity for argc 5, got %+v, ok=%v", a, ok)
	}
	_, ok = f.SelectArity(0)
	if ok {
		t.Fatal("expected no matching arity for argc 0")
	}
}

// TestBuildAritiesAllowsVariadicMatchingTopFixedArity mirrors Clojure's own
// concat (`([] ...) ([x] ...) ([x y] ...) ([x y & zs] ...)`): a variadic
// arity is allowed to share its fixed-parameter count with the largest
// non-variadic arity — SelectArity's exact-match-first rule disambiguates
// at call time, so this isn't actually ambiguous.
func TestBuildAritiesAllowsVariadicMatchingTopFixedArity(t *testing.T) {
	arities := []Arity{
		{Fixed: nil},
		{Fixed: []string{"x"}},
		{Fixed: []string{"x", "y"}},
		{Fixed: []string{"x", "y"}, Variadic: "zs", HasRest: true},
	}
	if err := BuildArities(arities); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildAritiesRejectsVariadicBelowTopFixedArity(t *testing.T) {
	arities := []Arity{
		{Fixed: []string{"x", "y", "z"}},
		{Fixed: []string{"x", "y"}, Variadic: "zs", HasRest: true},
	}
	if err := BuildArities(arities); err == nil {
		t.Fatal("expected an error: variadic arity has fewer fixed params than a non-variadic arity")
	}
}

func TestBuildAritiesRejectsDuplicateFixedArity(t *testing.T) {
	arities := []Arity{
		{Fixed: []string{"x"}},
		{Fixed: []string{"y"}},
	}
	if err := BuildArities(arities); err == nil {
		t.Fatal("expected an error: duplicate fixed arity count")
	}
}

func TestBuildAritiesRejectsMultipleVariadicArities(t *testing.T) {
	arities := []Arity{
		{Fixed: []string{"x"}, Variadic: "a", HasRest: true},
		{Fixed: []string{"x", "y"}, Variadic: "b", HasRest: true},
	}
	if err := BuildArities(arities); err == nil {
		t.Fatal("expected an error: at most one variadic arity allowed")
	}
}
