package value

import (
	"errors"
	"testing"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), true},
		{Str(""), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestNumEqualPromotesIntAndFloat(t *testing.T) {
	eq, both := NumEqual(Int(2), Float(2.0))
	if !both {
		t.Fatal("expected bothNumeric true")
	}
	if !eq {
		t.Error("expected Int(2) == Float(2.0)")
	}
}

func TestEqualStructural(t *testing.T) {
	a := NewVector([]Value{Int(1), Int(2)})
	b := NewVector([]Value{Int(1), Int(2)})
	if !Equal(a, b) {
		t.Error("expected structurally equal vectors to be Equal")
	}
	c := NewVector([]Value{Int(1), Int(3)})
	if Equal(a, c) {
		t.Error("expected differing vectors to be unequal")
	}
}

func TestVectorAssocOutOfBounds(t *testing.T) {
	v := NewVector([]Value{Int(10), Int(20), Int(30)})
	_, err := v.Assoc(4, Int(99))
	if err == nil {
		t.Fatal("expected an OutOfBoundsError")
	}
	var oob OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected OutOfBoundsError, got %T", err)
	}
	if oob.Index != 4 || oob.Len != 3 {
		t.Errorf("got %+v", oob)
	}
}

func TestVectorAssocInBoundsIsImmutable(t *testing.T) {
	v := NewVector([]Value{Int(10), Int(20), Int(30)})
	v2, err := v.Assoc(1, Int(99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := v.Get(1)
	if got != Int(20) {
		t.Error("original vector was mutated")
	}
	got2, _ := v2.Get(1)
	if got2 != Int(99) {
		t.Error("new vector doesn't reflect the assoc")
	}
}

func TestMapAssocDissoc(t *testing.T) {
	m := NewMap(nil)
	m2 := m.Assoc(Int(1), Bool(true))
	if m.Len() != 0 {
		t.Error("original map was mutated")
	}
	if m2.Len() != 1 {
		t.Fatalf("got len %d, want 1", m2.Len())
	}
	v, ok := m2.Get(Int(1))
	if !ok || v != Bool(true) {
		t.Errorf("got (%v, %v), want (true, true)", v, ok)
	}
	m3 := m2.Dissoc(Int(1))
	if m3.Len() != 0 {
		t.Errorf("got len %d, want 0 after dissoc", m3.Len())
	}
}

func TestSetConjDisjHas(t *testing.T) {
	s := NewSet(nil)
	s2 := s.Conj(Int(1))
	if s.Has(Int(1)) {
		t.Error("original set was mutated")
	}
	if !s2.Has(Int(1)) {
		t.Error("expected conj'd set to have the element")
	}
	s3 := s2.Disj(Int(1))
	if s3.Has(Int(1)) {
		t.Error("expected disj'd set to not have the element")
	}
}

func TestSeqFromSliceAndToSlice(t *testing.T) {
	s := SeqFromSlice([]Value{Int(1), Int(2), Int(3)})
	if s.IsEmpty() {
		t.Fatal("expected non-empty seq")
	}
	out, err := SeqToSlice(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 || out[0] != Int(1) || out[2] != Int(3) {
		t.Errorf("got %v", out)
	}
}

func TestEmptySeqFirstRest(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatal("Empty should be empty")
	}
	v, err := Empty.First()
	if err != nil || v != (Nil{}) {
		t.Errorf("First() of empty seq = (%v, %v), want (Nil{}, nil)", v, err)
	}
	rest, err := Empty.Rest()
	if err != nil || !rest.IsEmpty() {
		t.Errorf("Rest() of empty seq = (%v, %v)", rest, err)
	}
}

func TestLazySeqForcesOnce(t *testing.T) {
	calls := 0
	ls := NewLazySeq(func() (Value, error) {
		calls++
		return NewCons(Int(1), Empty), nil
	})
	if _, err := ls.First(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ls.Rest(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ls.First(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("thunk called %d times, want 1", calls)
	}
}

func TestPrintCanonicalBasics(t *testing.T) {
	p := NewPrinter()
	if got := p.Print(Nil{}); got != "nil" {
		t.Errorf("got %q", got)
	}
	if got := p.Print(Int(42)); got != "42" {
		t.Errorf("got %q", got)
	}
	if got := p.Print(Str("hi")); got != `"hi"` {
		t.Errorf("got %q", got)
	}
}
