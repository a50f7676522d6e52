package eval

import (
	"fmt"

	"lambdatron.dev/lambdatron/internal/value"
)

// evalFn implements `(fn name? [params…] body*) | (fn name? ([…] body)…)`
// (spec.md §4.5): builds a closure over ctx. isMacro is threaded through
// from evalDefmacro, which shares this exact parsing.
func (e *Evaluator) evalFn(tail value.Seq, ctx *Context, isMacro bool) (*Function, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	selfName := ""
	if len(items) > 0 {
		if sym, ok := items[0].(*value.Symbol); ok && !sym.HasNs {
			selfName = sym.Name()
			items = items[1:]
		}
	}
	arities, err := parseArities(items, formName(isMacro))
	if err != nil {
		return nil, err
	}
	if err := BuildArities(arities); err != nil {
		return nil, newArgError(formName(isMacro), err.Error())
	}
	return &Function{
		SelfName: selfName,
		Arities:  arities,
		Env:      ctx,
		IsMacro:  isMacro,
	}, nil
}

func formName(isMacro bool) string {
	if isMacro {
		return "defmacro"
	}
	return "fn"
}

// parseArities accepts either the single-arity shorthand `[params…]
// body*` or one or more `([…] body)` clauses.
func parseArities(items []value.Value, fn string) ([]Arity, error) {
	if len(items) == 0 {
		return nil, newArgError(fn, "expected a parameter vector or at least one arity clause")
	}
	if _, ok := items[0].(*value.Vector); ok {
		a, err := parseArity(items[0], items[1:], fn)
		if err != nil {
			return nil, err
		}
		return []Arity{a}, nil
	}
	arities := make([]Arity, 0, len(items))
	for _, clause := range items {
		seq, ok := clause.(value.Seq)
		if !ok {
			return nil, newArgError(fn, "multi-arity clauses must be lists of (params body*)")
		}
		parts, err := value.SeqToSlice(seq)
		if err != nil {
			return nil, err
		}
		if len(parts) == 0 {
			return nil, newArgError(fn, "multi-arity clause missing a parameter vector")
		}
		a, err := parseArity(parts[0], parts[1:], fn)
		if err != nil {
			return nil, err
		}
		arities = append(arities, a)
	}
	return arities, nil
}

// parseArity parses one `[params…]` vector (with an optional `& rest` in
// penultimate position) plus its body forms.
func parseArity(paramsForm value.Value, body []value.Value, fn string) (Arity, error) {
	params, ok := paramsForm.(*value.Vector)
	if !ok {
		return Arity{}, newArgError(fn, "parameters must be a vector")
	}
	var fixed []string
	variadic := ""
	hasRest := false
	ampCount := 0
	for i := 0; i < params.Len(); i++ {
		sym, ok := params.Items[i].(*value.Symbol)
		if !ok || sym.HasNs {
			return Arity{}, newArgError(fn, "parameters must be unqualified symbols")
		}
		if sym.Name() == "&" {
			ampCount++
			if ampCount > 1 || i != params.Len()-2 {
				return Arity{}, newArgError(fn, "'&' must appear at most once, in the penultimate position")
			}
			continue
		}
		if hasRest {
			variadic = sym.Name()
			continue
		}
		if ampCount == 1 {
			variadic = sym.Name()
			hasRest = true
			continue
		}
		fixed = append(fixed, sym.Name())
	}
	if ampCount == 1 && !hasRest {
		return Arity{}, newArgError(fn, "'&' must be followed by a rest parameter")
	}
	return Arity{Fixed: fixed, Variadic: variadic, HasRest: hasRest, Body: body}, nil
}

// evalDefmacro implements `(defmacro name [params…] body*) | (defmacro
// name ([…] body)…)` (spec.md §4.5): as fn, but bound into a Var as a
// Macro; returns the Var. Qualified names follow the same current
// namespace rule as def (spec.md §9).
func (e *Evaluator) evalDefmacro(tail value.Seq, ctx *Context) (value.Value, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	if len(items) < 2 {
		return nil, newArgError("defmacro", fmt.Sprintf("expected at least 2 argument(s), got %d", len(items)))
	}
	sym, ok := items[0].(*value.Symbol)
	if !ok {
		return nil, newArgError("defmacro", "first argument must be a symbol")
	}
	if sym.HasNs && sym.Namespace() != ctx.Namespace().Name {
		return nil, newError(QualifiedSymbolMisuse, "defmacro's symbol must be unqualified or name the current namespace")
	}
	macroTail := value.SeqFromSlice(items[1:])
	fn, err := e.evalFn(macroTail, ctx, true)
	if err != nil {
		return nil, err
	}
	fn.SelfName = sym.Name()
	v := ctx.Namespace().Intern(sym.Name())
	v.Set(fn)
	return v, nil
}
