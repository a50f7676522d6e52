package value

import "lambdatron.dev/lambdatron/internal/intern"

// Symbol is a pair (name, optional namespace), interned for O(1) identity
// comparison. Grounded on spec.md §3; the teacher's symbol/namespace split
// has no direct analogue (losp names are flat), so the shape here follows
// the spec directly.
type Symbol struct {
	Embed
	store  *intern.Store
	NameID intern.ID
	NsID   intern.ID
	HasNs  bool
}

func (*Symbol) Kind() Kind { return KindSymbol }

// NewSymbol interns name (and namespace, if given) into store.
func NewSymbol(store *intern.Store, namespace, name string) *Symbol {
	s := &Symbol{store: store, NameID: store.Intern(name)}
	if namespace != "" {
		s.NsID = store.Intern(namespace)
		s.HasNs = true
	}
	return s
}

// Name returns the unqualified name text.
func (s *Symbol) Name() string { return s.store.Lookup(s.NameID) }

// Namespace returns the namespace text, or "" if unqualified.
func (s *Symbol) Namespace() string {
	if !s.HasNs {
		return ""
	}
	return s.store.Lookup(s.NsID)
}

// Keyword is like Symbol but self-evaluating and printed with a leading ':'.
type Keyword struct {
	Embed
	store  *intern.Store
	NameID intern.ID
	NsID   intern.ID
	HasNs  bool
}

func (*Keyword) Kind() Kind { return KindKeyword }

// NewKeyword interns name (and namespace, if given) into store.
func NewKeyword(store *intern.Store, namespace, name string) *Keyword {
	k := &Keyword{store: store, NameID: store.Intern(name)}
	if namespace != "" {
		k.NsID = store.Intern(namespace)
		k.HasNs = true
	}
	return k
}

// Name returns the unqualified name text.
func (k *Keyword) Name() string { return k.store.Lookup(k.NameID) }

// Namespace returns the namespace text, or "" if unqualified.
func (k *Keyword) Namespace() string {
	if !k.HasNs {
		return ""
	}
	return k.store.Lookup(k.NsID)
}

// SpecialTag identifies one of the built-in special forms (spec.md §4.5).
// The table in spec.md §4.5 names twelve forms even though §2/§9 refer to
// "the eleven special-form tags" in passing; the operative table in §4.5
// wins.
type SpecialTag int

const (
	SpecialQuote SpecialTag = iota
	SpecialIf
	SpecialDo
	SpecialDef
	SpecialLet
	SpecialVar
	SpecialFn
	SpecialDefmacro
	SpecialLoop
	SpecialRecur
	SpecialApply
	SpecialAttempt
)

var specialNames = map[SpecialTag]string{
	SpecialQuote:    "quote",
	SpecialIf:       "if",
	SpecialDo:       "do",
	SpecialDef:      "def",
	SpecialLet:      "let",
	SpecialVar:      "var",
	SpecialFn:       "fn",
	SpecialDefmacro: "defmacro",
	SpecialLoop:     "loop",
	SpecialRecur:    "recur",
	SpecialApply:    "apply",
	SpecialAttempt:  "attempt",
}

var specialByName = func() map[string]SpecialTag {
	m := make(map[string]SpecialTag, len(specialNames))
	for tag, n := range specialNames {
		m[n] = tag
	}
	return m
}()

// SpecialByName returns the tag for a special-form name, and whether it
// names a special form at all.
func SpecialByName(name string) (SpecialTag, bool) {
	tag, ok := specialByName[name]
	return tag, ok
}

// String returns the special form's source-level name.
func (t SpecialTag) String() string { return specialNames[t] }

// Special wraps a SpecialTag as a self-evaluating Value.
type Special struct {
	Embed
	Tag SpecialTag
}

func (Special) Kind() Kind { return KindSpecial }

// BuiltinID names a host-registered primitive by its stable dot-prefixed
// name (spec.md §6): ".cons", ".assoc", etc.
type BuiltinID string

// Builtin is a host-provided primitive function, invoked by the evaluator
// exactly like a Function but implemented in Go. Fn receives the already
// fully-evaluated argument list.
type Builtin struct {
	Embed
	Name BuiltinID
	Fn   func(args []Value) (Value, error)
}

func (*Builtin) Kind() Kind { return KindBuiltin }
