package host

import (
	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

func predicateEntries() []entry {
	return []entry{
		{"not", unaryFn("not", func(v value.Value) (value.Value, error) {
			return value.Bool(!value.Truthy(v)), nil
		})},
		{"nil?", typePred("nil?", func(v value.Value) bool { _, ok := v.(value.Nil); return ok })},
		{"true?", typePred("true?", func(v value.Value) bool { b, ok := v.(value.Bool); return ok && bool(b) })},
		{"false?", typePred("false?", func(v value.Value) bool { b, ok := v.(value.Bool); return ok && !bool(b) })},
		{"symbol?", typePred("symbol?", func(v value.Value) bool { _, ok := v.(*value.Symbol); return ok })},
		{"keyword?", typePred("keyword?", func(v value.Value) bool { _, ok := v.(*value.Keyword); return ok })},
		{"string?", typePred("string?", func(v value.Value) bool { _, ok := v.(value.Str); return ok })},
		{"number?", typePred("number?", func(v value.Value) bool { _, ok := asNum(v); return ok })},
		{"fn?", typePred("fn?", func(v value.Value) bool {
			f, ok := v.(*eval.Function)
			return ok && !f.IsMacro
		})},
		{"seq?", typePred("seq?", func(v value.Value) bool { _, ok := v.(value.Seq); return ok })},
		{"vector?", typePred("vector?", func(v value.Value) bool { _, ok := v.(*value.Vector); return ok })},
		{"map?", typePred("map?", func(v value.Value) bool { _, ok := v.(*value.Map); return ok })},
		{"set?", typePred("set?", func(v value.Value) bool { _, ok := v.(*value.Set); return ok })},
		{"empty?", unaryFn("empty?", func(v value.Value) (value.Value, error) {
			switch c := v.(type) {
			case value.Nil:
				return value.Bool(true), nil
			case value.Seq:
				return value.Bool(c.IsEmpty()), nil
			case *value.Vector:
				return value.Bool(c.Len() == 0), nil
			case *value.Map:
				return value.Bool(c.Len() == 0), nil
			case *value.Set:
				return value.Bool(c.Len() == 0), nil
			default:
				return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: "empty?", Message: "argument must be a collection"}
			}
		})},
	}
}

func unaryFn(fn string, op func(value.Value) (value.Value, error)) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &eval.EvalError{Kind: eval.Arity, Fn: fn, Message: "expected 1 argument"}
		}
		return op(args[0])
	}
}

func typePred(fn string, pred func(value.Value) bool) eval.HostFunc {
	return unaryFn(fn, func(v value.Value) (value.Value, error) { return value.Bool(pred(v)), nil })
}
