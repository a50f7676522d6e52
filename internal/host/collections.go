package host

import (
	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

// collectionEntries implements the dot-prefixed host primitives the
// expander's quasiquote lowering (internal/reader/expand.go) and the
// bootstrap stdlib are both built on: `.cons`, `.vec`, plus the rest of
// spec.md §8's scenario set (`.assoc`, `.get`, `.count`, `.first`,
// `.rest`, `.conj`, `.disj`, `.deref` lives in lazy.go since it shares
// lazy-seq's evaluator dependency).
func collectionEntries() []entry {
	return []entry{
		{".cons", hostCons},
		{".first", hostFirst},
		{".rest", hostRest},
		{".vec", hostVec},
		{".seq", hostSeq},
		{".count", hostCount},
		{".get", hostGet},
		{".assoc", hostAssoc},
		{".dissoc", hostDissoc},
		{".conj", hostConj},
		{".disj", hostDisj},
		{".concat", hostConcat},
	}
}

func hostCons(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".cons", Message: "expected 2 arguments"}
	}
	tail, err := asSeq(".cons", args[1])
	if err != nil {
		return nil, err
	}
	return value.NewCons(args[0], tail), nil
}

func asSeq(fn string, v value.Value) (value.Seq, error) {
	switch c := v.(type) {
	case value.Nil:
		return value.Empty, nil
	case value.Seq:
		return c, nil
	case *value.Vector:
		return value.SeqFromSlice(append([]value.Value{}, c.Items...)), nil
	case *value.Set:
		var items []value.Value
		c.Range(func(v value.Value) bool { items = append(items, v); return true })
		return value.SeqFromSlice(items), nil
	case *value.Map:
		var items []value.Value
		c.Range(func(k, v value.Value) bool {
			items = append(items, value.NewVector([]value.Value{k, v}))
			return true
		})
		return value.SeqFromSlice(items), nil
	default:
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "argument must be a seq, vector, map, or set"}
	}
}

func hostFirst(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".first", Message: "expected 1 argument"}
	}
	s, err := asSeq(".first", args[0])
	if err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return value.Nil{}, nil
	}
	return s.First()
}

func hostRest(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".rest", Message: "expected 1 argument"}
	}
	s, err := asSeq(".rest", args[0])
	if err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return value.Empty, nil
	}
	return s.Rest()
}

func hostVec(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".vec", Message: "expected 1 argument"}
	}
	switch c := args[0].(type) {
	case *value.Vector:
		return c, nil
	default:
		s, err := asSeq(".vec", args[0])
		if err != nil {
			return nil, err
		}
		items, err := value.SeqToSlice(s)
		if err != nil {
			return nil, err
		}
		return value.NewVector(items), nil
	}
}

func hostSeq(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".seq", Message: "expected 1 argument"}
	}
	s, err := asSeq(".seq", args[0])
	if err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return value.Nil{}, nil
	}
	return s, nil
}

func hostCount(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".count", Message: "expected 1 argument"}
	}
	switch c := args[0].(type) {
	case value.Nil:
		return value.Int(0), nil
	case *value.Vector:
		return value.Int(c.Len()), nil
	case *value.Map:
		return value.Int(c.Len()), nil
	case *value.Set:
		return value.Int(c.Len()), nil
	case value.Seq:
		items, err := value.SeqToSlice(c)
		if err != nil {
			return nil, err
		}
		return value.Int(len(items)), nil
	default:
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".count", Message: "argument must be a collection"}
	}
}

func hostGet(args []value.Value) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".get", Message: "expected 2 or 3 arguments"}
	}
	notFound := value.Value(value.Nil{})
	if len(args) == 3 {
		notFound = args[2]
	}
	switch c := args[0].(type) {
	case *value.Map:
		if v, ok := c.Get(args[1]); ok {
			return v, nil
		}
		return notFound, nil
	case *value.Set:
		if c.Has(args[1]) {
			return args[1], nil
		}
		return notFound, nil
	case *value.Vector:
		idx, ok := args[1].(value.Int)
		if !ok || int(idx) < 0 || int(idx) >= c.Len() {
			return notFound, nil
		}
		return c.Get(int(idx))
	case value.Nil:
		return notFound, nil
	default:
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".get", Message: "argument must be a map, set, or vector"}
	}
}

// hostAssoc implements spec.md §8 scenarios 1 and 2: variadic key/value
// pairs applied to a map, or a single index/value pair applied to a
// vector (an out-of-range index is OutOfBounds, not an extension).
func hostAssoc(args []value.Value) (value.Value, error) {
	if len(args) < 3 || len(args)%2 == 0 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".assoc", Message: "expected an odd number of arguments >= 3 (coll k v ...)"}
	}
	switch c := args[0].(type) {
	case *value.Map:
		m := c
		for i := 1; i+1 < len(args); i += 2 {
			m = m.Assoc(args[i], args[i+1])
		}
		return m, nil
	case *value.Vector:
		if len(args) != 3 {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".assoc", Message: "vectors take exactly one index/value pair"}
		}
		idx, ok := args[1].(value.Int)
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".assoc", Message: "vector index must be an Int"}
		}
		v, err := c.Assoc(int(idx), args[2])
		if err != nil {
			return nil, &eval.EvalError{Kind: eval.OutOfBounds, Fn: ".assoc", Message: err.Error()}
		}
		return v, nil
	case value.Nil:
		m := value.EmptyMap
		for i := 1; i+1 < len(args); i += 2 {
			m = m.Assoc(args[i], args[i+1])
		}
		return m, nil
	default:
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".assoc", Message: "argument must be a map, vector, or nil"}
	}
}

func hostDissoc(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".dissoc", Message: "expected at least 1 argument"}
	}
	m, ok := args[0].(*value.Map)
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".dissoc", Message: "argument must be a map"}
	}
	for _, k := range args[1:] {
		m = m.Dissoc(k)
	}
	return m, nil
}

func hostConj(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".conj", Message: "expected at least 1 argument"}
	}
	switch c := args[0].(type) {
	case *value.Vector:
		v := c
		for _, item := range args[1:] {
			v = v.Conj(item)
		}
		return v, nil
	case *value.Set:
		s := c
		for _, item := range args[1:] {
			s = s.Conj(item)
		}
		return s, nil
	case value.Seq:
		s := c
		for _, item := range args[1:] {
			s = value.NewCons(item, s)
		}
		return s, nil
	case value.Nil:
		return value.SeqFromSlice(args[1:]), nil
	default:
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".conj", Message: "argument must be a collection"}
	}
}

func hostDisj(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".disj", Message: "expected at least 1 argument"}
	}
	s, ok := args[0].(*value.Set)
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".disj", Message: "argument must be a set"}
	}
	for _, item := range args[1:] {
		s = s.Disj(item)
	}
	return s, nil
}

// hostConcat strictly appends b onto the end of a. It exists as a host
// primitive, rather than going through the bootstrap stdlib's own lazy
// `concat`, so that syntax-quote's unquote-splice lowering (spec.md §4.3)
// has somewhere to call before any .lbt-defined function exists yet.
func hostConcat(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".concat", Message: "expected 2 arguments"}
	}
	a, err := asSeq(".concat", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asSeq(".concat", args[1])
	if err != nil {
		return nil, err
	}
	items, err := value.SeqToSlice(a)
	if err != nil {
		return nil, err
	}
	tail := b
	for i := len(items) - 1; i >= 0; i-- {
		tail = value.NewCons(items[i], tail)
	}
	return tail, nil
}
