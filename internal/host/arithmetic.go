package host

import (
	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

// arithmeticEntries implements spec.md §4.8's numeric model: arithmetic
// promotes to double when either operand is a double; Int/Int division
// by zero is ArithmeticError, Float division by zero follows IEEE 754.
func arithmeticEntries() []entry {
	return []entry{
		{"+", reduceNum("+", 0, addNum)},
		{"-", subNum},
		{"*", reduceNum("*", 1, mulNum)},
		{"/", divNum},
		{"=", numEq},
		{"<", numCompare("<", func(a, b float64) bool { return a < b })},
		{">", numCompare(">", func(a, b float64) bool { return a > b })},
		{"<=", numCompare("<=", func(a, b float64) bool { return a <= b })},
		{">=", numCompare(">=", func(a, b float64) bool { return a >= b })},
		{"inc", unaryNum("inc", func(v value.Value) (value.Value, error) { return addNum(v, value.Int(1)) })},
		{"dec", unaryNum("dec", func(v value.Value) (value.Value, error) { return addNum(v, value.Int(-1)) })},
		{"zero?", predNum("zero?", func(f float64) bool { return f == 0 })},
		{"pos?", predNum("pos?", func(f float64) bool { return f > 0 })},
		{"neg?", predNum("neg?", func(f float64) bool { return f < 0 })},
	}
}

func asNum(v value.Value) (value.Value, bool) {
	switch v.(type) {
	case value.Int, value.Float:
		return v, true
	}
	return nil, false
}

func numFloat(v value.Value) float64 {
	switch n := v.(type) {
	case value.Int:
		return float64(n)
	case value.Float:
		return float64(n)
	}
	return 0
}

func addNum(a, b value.Value) (value.Value, error) {
	ai, aok := a.(value.Int)
	bi, bok := b.(value.Int)
	if aok && bok {
		return ai + bi, nil
	}
	return value.Float(numFloat(a) + numFloat(b)), nil
}

func mulNum(a, b value.Value) (value.Value, error) {
	ai, aok := a.(value.Int)
	bi, bok := b.(value.Int)
	if aok && bok {
		return ai * bi, nil
	}
	return value.Float(numFloat(a) * numFloat(b)), nil
}

func reduceNum(fn string, identity value.Int, op func(a, b value.Value) (value.Value, error)) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return identity, nil
		}
		acc, ok := asNum(args[0])
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "arguments must be numbers"}
		}
		for _, a := range args[1:] {
			n, ok := asNum(a)
			if !ok {
				return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "arguments must be numbers"}
			}
			var err error
			acc, err = op(acc, n)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
}

func subNum(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: "-", Message: "expects at least 1 argument"}
	}
	first, ok := asNum(args[0])
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: "-", Message: "arguments must be numbers"}
	}
	if len(args) == 1 {
		return negNum(first)
	}
	acc := first
	for _, a := range args[1:] {
		n, ok := asNum(a)
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: "-", Message: "arguments must be numbers"}
		}
		neg, err := negNum(n)
		if err != nil {
			return nil, err
		}
		acc, err = addNum(acc, neg)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func negNum(v value.Value) (value.Value, error) {
	if i, ok := v.(value.Int); ok {
		return -i, nil
	}
	return value.Float(-numFloat(v)), nil
}

func divNum(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: "/", Message: "expects at least 2 arguments"}
	}
	acc, ok := asNum(args[0])
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: "/", Message: "arguments must be numbers"}
	}
	for _, a := range args[1:] {
		n, ok := asNum(a)
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: "/", Message: "arguments must be numbers"}
		}
		ai, aok := acc.(value.Int)
		bi, bok := n.(value.Int)
		if aok && bok {
			if bi == 0 {
				return nil, &eval.EvalError{Kind: eval.ArithmeticError, Fn: "/", Message: "division by zero"}
			}
			acc = ai / bi
			continue
		}
		acc = value.Float(numFloat(acc) / numFloat(n))
	}
	return acc, nil
}

// numEq implements `=`: structural equality (spec.md §3), not restricted
// to numbers — named alongside the arithmetic entries since it shares
// their variadic reduce shape.
func numEq(args []value.Value) (value.Value, error) {
	for i := 1; i < len(args); i++ {
		if !value.Equal(args[i-1], args[i]) {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func numCompare(fn string, cmp func(a, b float64) bool) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		for i := 1; i < len(args); i++ {
			a, aok := asNum(args[i-1])
			b, bok := asNum(args[i])
			if !aok || !bok {
				return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "arguments must be numbers"}
			}
			if !cmp(numFloat(a), numFloat(b)) {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil
	}
}

func unaryNum(fn string, op func(value.Value) (value.Value, error)) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &eval.EvalError{Kind: eval.Arity, Fn: fn, Message: "expected 1 argument"}
		}
		n, ok := asNum(args[0])
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "argument must be a number"}
		}
		return op(n)
	}
}

func predNum(fn string, pred func(float64) bool) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &eval.EvalError{Kind: eval.Arity, Fn: fn, Message: "expected 1 argument"}
		}
		n, ok := asNum(args[0])
		if !ok {
			return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "argument must be a number"}
		}
		return value.Bool(pred(numFloat(n))), nil
	}
}
