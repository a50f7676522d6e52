package host

import (
	"github.com/dustin/go-humanize"

	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

// formatEntries wraps github.com/dustin/go-humanize for the human-readable
// number rendering Clojure programs typically reach a formatting library
// for: `.comma` groups an integer with thousands separators, `.ordinal`
// appends the English ordinal suffix.
func formatEntries() []entry {
	return []entry{
		{".comma", hostComma},
		{".ordinal", hostOrdinal},
	}
}

func hostComma(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".comma", Message: "expected 1 argument"}
	}
	n, ok := asNum(args[0])
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".comma", Message: "argument must be a number"}
	}
	i, ok := n.(value.Int)
	if !ok {
		return value.Str(humanize.CommafWithDigits(numFloat(n), 2)), nil
	}
	return value.Str(humanize.Comma(int64(i))), nil
}

func hostOrdinal(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".ordinal", Message: "expected 1 argument"}
	}
	n, ok := asNum(args[0])
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".ordinal", Message: "argument must be a number"}
	}
	i, ok := n.(value.Int)
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: ".ordinal", Message: "argument must be an integer"}
	}
	return value.Str(humanize.Ordinal(int(i))), nil
}
