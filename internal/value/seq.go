package value

// Seq is the uniform traversal interface over both eager cons-chains and
// lazy sequences (spec.md §3, §4.7). Forcing happens inside First/Rest, not
// at construction, so a LazySeq is only ever evaluated when something asks
// for its head or tail.
type Seq interface {
	Value
	IsEmpty() bool
	// First returns the head value, or Nil for the empty seq.
	First() (Value, error)
	// Rest returns the tail seq, or the empty seq for the empty seq's tail.
	Rest() (Seq, error)
}

// emptySeq is the single canonical empty sequence.
type emptySeq struct{ Embed }

func (emptySeq) Kind() Kind             { return KindSeq }
func (emptySeq) IsEmpty() bool          { return true }
func (emptySeq) First() (Value, error)  { return Nil{}, nil }
func (emptySeq) Rest() (Seq, error)     { return Empty, nil }
func (emptySeq) String() string        { return "()" }

// Empty is the canonical empty sequence value; every IsEmpty seq is
// interchangeable with it for equality purposes (seqEqual compares by
// exhaustion, not by identity).
var Empty Seq = emptySeq{}

// Cons is an eager singly-linked sequence node.
type Cons struct {
	Embed
	Head Value
	Tail Seq
}

func (*Cons) Kind() Kind            { return KindSeq }
func (*Cons) IsEmpty() bool         { return false }
func (c *Cons) First() (Value, error) { return c.Head, nil }
func (c *Cons) Rest() (Seq, error)    { return c.Tail, nil }

// NewCons prepends head onto tail.
func NewCons(head Value, tail Seq) *Cons {
	if tail == nil {
		tail = Empty
	}
	return &Cons{Head: head, Tail: tail}
}

// SeqFromSlice builds a proper list (right to left) from vs.
func SeqFromSlice(vs []Value) Seq {
	var s Seq = Empty
	for i := len(vs) - 1; i >= 0; i-- {
		s = NewCons(vs[i], s)
	}
	return s
}

// SeqToSlice forces and flattens s into a slice, forcing any lazy nodes
// along the way.
func SeqToSlice(s Seq) ([]Value, error) {
	var out []Value
	err := seqForEach(s, func(v Value) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

func seqForEach(s Seq, f func(Value) error) error {
	for {
		if s == nil || s.IsEmpty() {
			return nil
		}
		h, err := s.First()
		if err != nil {
			return err
		}
		if err := f(h); err != nil {
			return err
		}
		s, err = s.Rest()
		if err != nil {
			return err
		}
	}
}

func seqEqual(a, b Seq) bool {
	for {
		aEmpty, bEmpty := a.IsEmpty(), b.IsEmpty()
		if aEmpty || bEmpty {
			return aEmpty == bEmpty
		}
		ah, aerr := a.First()
		bh, berr := b.First()
		if aerr != nil || berr != nil {
			return false
		}
		if !Equal(ah, bh) {
			return false
		}
		var err error
		a, err = a.Rest()
		if err != nil {
			return false
		}
		b, err = b.Rest()
		if err != nil {
			return false
		}
	}
}

// Thunk produces the next step of a lazy seq: either a Seq (adopted
// directly), Nil or the empty seq (terminates the sequence), or any other
// Value (wrapped in a single-element seq), per spec.md §4.7.
type Thunk func() (Value, error)

// LazySeq is a seq node whose head/tail come from a single-use Thunk.
// Forcing happens at most once; the result is memoized and the thunk is
// dropped afterward so a forced LazySeq holds no reference back to its
// capturing closure (avoiding the thunk/closure reference cycle flagged in
// spec.md §9).
type LazySeq struct {
	Embed
	thunk  Thunk
	forced bool
	empty  bool
	head   Value
	tail   Seq
	err    error
}

func (*LazySeq) Kind() Kind { return KindSeq }

// NewLazySeq wraps thunk as an unforced lazy seq node.
func NewLazySeq(thunk Thunk) *LazySeq {
	return &LazySeq{thunk: thunk}
}

// force evaluates the thunk exactly once, caching the result.
func (l *LazySeq) force() error {
	if l.forced {
		return l.err
	}
	l.forced = true
	v, err := l.thunk()
	l.thunk = nil
	if err != nil {
		l.err = err
		l.empty = true
		return err
	}
	switch t := v.(type) {
	case nil:
		l.empty = true
	case Nil:
		l.empty = true
	case Seq:
		if t.IsEmpty() {
			l.empty = true
			return nil
		}
		h, err := t.First()
		if err != nil {
			l.err = err
			l.empty = true
			return err
		}
		tl, err := t.Rest()
		if err != nil {
			l.err = err
			l.empty = true
			return err
		}
		l.head, l.tail = h, tl
	default:
		l.head, l.tail = v, Empty
	}
	return nil
}

func (l *LazySeq) IsEmpty() bool {
	if err := l.force(); err != nil {
		return true
	}
	return l.empty
}

func (l *LazySeq) First() (Value, error) {
	if err := l.force(); err != nil {
		return nil, err
	}
	if l.empty {
		return Nil{}, nil
	}
	return l.head, nil
}

func (l *LazySeq) Rest() (Seq, error) {
	if err := l.force(); err != nil {
		return nil, err
	}
	if l.empty {
		return Empty, nil
	}
	return l.tail, nil
}
