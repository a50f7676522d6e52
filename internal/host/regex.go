package host

import (
	"regexp"

	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

// regexEntries exercises the #"..." literal's *value.Regex (spec.md §6's
// optional regex extension): `.re-matches` tests a whole string against a
// pattern, `.re-find` returns the first match or nil.
func regexEntries() []entry {
	return []entry{
		{".re-matches", hostReMatches},
		{".re-find", hostReFind},
	}
}

func asRegex(fn string, v value.Value) (*value.Regex, error) {
	re, ok := v.(*value.Regex)
	if !ok {
		return nil, &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "argument must be a regex"}
	}
	return re, nil
}

func asStr(fn string, v value.Value) (string, error) {
	s, ok := v.(value.Str)
	if !ok {
		return "", &eval.EvalError{Kind: eval.InvalidArgument, Fn: fn, Message: "argument must be a string"}
	}
	return string(s), nil
}

func hostReMatches(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".re-matches", Message: "expected 2 arguments"}
	}
	re, err := asRegex(".re-matches", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asStr(".re-matches", args[1])
	if err != nil {
		return nil, err
	}
	whole, err := regexp.Compile(`^(?:` + re.Re.String() + `)$`)
	if err != nil {
		return nil, &eval.EvalError{Kind: eval.InvalidRegex, Fn: ".re-matches", Message: err.Error()}
	}
	if !whole.MatchString(s) {
		return value.Nil{}, nil
	}
	return value.Str(s), nil
}

func hostReFind(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, &eval.EvalError{Kind: eval.Arity, Fn: ".re-find", Message: "expected 2 arguments"}
	}
	re, err := asRegex(".re-find", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asStr(".re-find", args[1])
	if err != nil {
		return nil, err
	}
	m := re.Re.FindString(s)
	if m == "" && !re.Re.MatchString(s) {
		return value.Nil{}, nil
	}
	return value.Str(m), nil
}
