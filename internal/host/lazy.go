package host

import (
	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

// lazyEntries implements `.lazy-seq` (spec.md §4.7) and `.deref`
// (spec.md §4.3's deref-reader-macro lowering target). Both need to call
// back into the evaluator to invoke a Function, so — unlike the rest of
// the host table — they're built as closures over ev rather than free
// functions.
func lazyEntries(ev *eval.Evaluator) []entry {
	return []entry{
		{".lazy-seq", hostLazySeq(ev)},
		{".deref", hostDeref(ev)},
	}
}

// hostLazySeq wraps a zero-argument thunk Function in a value.LazySeq:
// the `lazy-seq` bootstrap macro expands to `(.lazy-seq (fn [] body*))`,
// and forcing the resulting node invokes that closure at most once
// (spec.md §4.7, §8's lazy-force-once invariant).
func hostLazySeq(ev *eval.Evaluator) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".lazy-seq", Message: "expected 1 argument"}
		}
		fn, ok := args[0].(*eval.Function)
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".lazy-seq", Message: "argument must be a 0-argument fn"}
		}
		return value.NewLazySeq(func() (value.Value, error) {
			return ev.ApplyHostCallback(fn, nil)
		}), nil
	}
}

func hostDeref(ev *eval.Evaluator) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".deref", Message: "expected 1 argument"}
		}
		v, ok := args[0].(*eval.Var)
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".deref", Message: "argument must be a var"}
		}
		val, bound := v.Get()
		if !bound {
			return nil, &eval.EvalError{Kind: eval.UnboundVar, Fn: ".deref", Message: "var has no bound value"}
		}
		return val, nil
	}
}
