// Package value implements Lambdatron's tagged-union runtime value model:
// the Value interface and its concrete variants, plus structural/numeric
// equality and hashing shared by the collection types.
//
// Grounded on the teacher's internal/expr package (a small closed interface
// with String()/IsEmpty() implemented by a handful of concrete structs);
// Value generalizes that shape to the full Lisp value set described in
// spec.md §3.
package value

import "math"

// Kind tags the dynamic type of a Value. The evaluator itself dispatches
// with type switches on the concrete types.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindChar
	KindString
	KindSymbol
	KindKeyword
	KindSeq
	KindVector
	KindMap
	KindSet
	KindVar
	KindFunction
	KindMacro
	KindSpecial
	KindBuiltin
	KindRegex
)

// Value is implemented by every Lambdatron runtime value. The unexported
// marker method seals the interface to this package and types that embed
// Embed (used by the eval package for Var/Function/Macro, which need a
// back-reference to evaluator-only types and so can't live here without an
// import cycle).
type Value interface {
	Kind() Kind
	isValue()
}

// Embed is embedded by Value implementations that live outside this
// package. It exists only to satisfy the unexported isValue marker.
type Embed struct{}

func (Embed) isValue() {}

// Nil is the single absent value. The zero value is ready to use.
type Nil struct{ Embed }

func (Nil) Kind() Kind { return KindNil }

// Bool wraps a boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) isValue()   {}

// Int is a 64-bit signed integer.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (Int) isValue()   {}

// Float is a 64-bit IEEE-754 float.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (Float) isValue()   {}

// Char is a single Unicode code point.
type Char rune

func (Char) Kind() Kind { return KindChar }
func (Char) isValue()   {}

// Str is an immutable string atom.
type Str string

func (Str) Kind() Kind { return KindString }
func (Str) isValue()   {}

// Truthy implements spec.md §4.5's falsy rule: only Nil and Bool(false) are
// falsy; every other value, including Int(0) and the empty seq, is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(t)
	default:
		return true
	}
}

// NumEqual implements the cross-type numeric equality rule from spec.md §3:
// Int(3) == Float(3.0). Returns false, false if either value isn't numeric.
func NumEqual(a, b Value) (equal bool, bothNumeric bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return false, false
	}
	ai, aIsInt := a.(Int)
	bi, bIsInt := b.(Int)
	if aIsInt && bIsInt {
		return ai == bi, true
	}
	return af == bf, true
}

func asFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Float:
		return float64(t), true
	}
	return 0, false
}

// Equal implements spec.md §3's equality rule: structural for data,
// identity for Var/Function/Macro, cross-type for numbers.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, numeric := NumEqual(a, b); numeric {
		return eq
	}
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Char:
		bv, ok := b.(Char)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av.HasNs == bv.HasNs && av.NsID == bv.NsID && av.NameID == bv.NameID
	case *Keyword:
		bv, ok := b.(*Keyword)
		return ok && av.HasNs == bv.HasNs && av.NsID == bv.NsID && av.NameID == bv.NameID
	case Seq:
		bv, ok := b.(Seq)
		return ok && seqEqual(av, bv)
	case *Vector:
		bv, ok := b.(*Vector)
		return ok && vectorEqual(av, bv)
	case *Map:
		bv, ok := b.(*Map)
		return ok && mapEqual(av, bv)
	case *Set:
		bv, ok := b.(*Set)
		return ok && setEqual(av, bv)
	default:
		// Var, Function, Macro, Special, BuiltIn: identity-based. Special
		// and BuiltIn are plain comparable values, so == gives tag
		// equality; Var/Function/Macro are pointers, so == gives identity.
		return a == b
	}
}

// Hash produces a hash consistent with Equal: Equal(a, b) implies
// Hash(a) == Hash(b). Map and Set do not use it; they scan with Equal.
func Hash(v Value) uint64 {
	switch t := v.(type) {
	case Nil:
		return 0
	case Bool:
		if t {
			return 1
		}
		return 2
	case Int:
		return hashFloat(float64(t))
	case Float:
		return hashFloat(float64(t))
	case Char:
		return 3*1000003 + uint64(t)
	case Str:
		return hashString(string(t))
	case *Symbol:
		return 4*1000003 + uint64(t.NsID)*1000033 + uint64(t.NameID)
	case *Keyword:
		return 5*1000003 + uint64(t.NsID)*1000033 + uint64(t.NameID)
	case Seq:
		h := uint64(17)
		_ = seqForEach(t, func(e Value) error {
			h = h*1000003 + Hash(e)
			return nil
		})
		return h
	case *Vector:
		h := uint64(19)
		for _, e := range t.Items {
			h = h*1000003 + Hash(e)
		}
		return h
	case *Map:
		var h uint64
		for _, e := range t.entries {
			h += Hash(e.key) * 1000003 + Hash(e.val)
		}
		return h
	case *Set:
		var h uint64
		for _, e := range t.entries {
			h += Hash(e)
		}
		return h
	default:
		return 0
	}
}

func hashFloat(f float64) uint64 {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		// Integral floats hash the same as the equal Int, per NumEqual.
		return hashString("#" + itoa(int64(f)))
	}
	bits := math.Float64bits(f)
	return bits ^ (bits >> 33)
}

func hashString(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
