package eval

import (
	"fmt"

	"lambdatron.dev/lambdatron/internal/value"
)

// evalSpecial dispatches a Special(tag) head (spec.md §4.5) with its
// unevaluated tail arguments. tailPos marks whether this form occupies a
// tail position; only `if`, `do`, and `let` forward a RecurSignal
// produced by their own tail form — every other special form either
// consumes recur itself (`loop`, function application inside `apply`) or
// never produces one.
func (e *Evaluator) evalSpecial(tag value.SpecialTag, tail value.Seq, ctx *Context, tailPos bool) (value.Value, *RecurSignal, error) {
	switch tag {
	case value.SpecialQuote:
		return e.evalQuote(tail)
	case value.SpecialIf:
		return e.evalIf(tail, ctx, tailPos)
	case value.SpecialDo:
		items, err := value.SeqToSlice(tail)
		if err != nil {
			return nil, nil, err
		}
		v, recur, err := e.evalBodyTail(items, ctx)
		return finishTail(tailPos, v, recur, err)
	case value.SpecialDef:
		v, err := e.evalDef(tail, ctx)
		return v, nil, err
	case value.SpecialLet:
		return e.evalLet(tail, ctx, tailPos)
	case value.SpecialVar:
		v, err := e.evalVar(tail, ctx)
		return v, nil, err
	case value.SpecialFn:
		v, err := e.evalFn(tail, ctx, false)
		return v, nil, err
	case value.SpecialDefmacro:
		v, err := e.evalDefmacro(tail, ctx)
		return v, nil, err
	case value.SpecialLoop:
		v, err := e.evalLoop(tail, ctx)
		return v, nil, err
	case value.SpecialRecur:
		return e.evalRecur(tail, ctx, tailPos)
	case value.SpecialApply:
		v, err := e.evalApply(tail, ctx)
		return v, nil, err
	case value.SpecialAttempt:
		v, err := e.evalAttempt(tail, ctx)
		return v, nil, err
	default:
		return nil, nil, newError(RuntimeError, "unknown special form")
	}
}

// finishTail either forwards a RecurSignal (when the enclosing form is
// itself in tail position) or converts it to RecurMisuse.
func finishTail(tailPos bool, v value.Value, recur *RecurSignal, err error) (value.Value, *RecurSignal, error) {
	if err != nil {
		return nil, nil, err
	}
	if recur != nil {
		if tailPos {
			return nil, recur, nil
		}
		return nil, nil, newError(RecurMisuse, "recur used outside tail position")
	}
	return v, nil, nil
}

func (e *Evaluator) evalQuote(tail value.Seq) (value.Value, *RecurSignal, error) {
	if tail.IsEmpty() {
		return value.Nil{}, nil, nil
	}
	v, err := tail.First()
	return v, nil, err
}

func (e *Evaluator) evalIf(tail value.Seq, ctx *Context, tailPos bool) (value.Value, *RecurSignal, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, nil, err
	}
	if len(items) < 2 || len(items) > 3 {
		return nil, nil, newArgError("if", fmt.Sprintf("expected 2 or 3 argument(s), got %d", len(items)))
	}
	cond, err := e.Eval(items[0], ctx)
	if err != nil {
		return nil, nil, err
	}
	var branch value.Value
	if value.Truthy(cond) {
		branch = items[1]
	} else if len(items) == 3 {
		branch = items[2]
	} else {
		return value.Nil{}, nil, nil
	}
	v, recur, err := e.evalTail(branch, ctx)
	return finishTail(tailPos, v, recur, err)
}

// evalDef implements `(def sym [init])` (spec.md §4.5, §9): interns sym
// into the current namespace, binding init's value if present; leaves
// the Var unbound otherwise. Qualified symbols must name the current
// namespace (spec.md §9's resolved Open Question: applied uniformly here
// and in defmacro).
func (e *Evaluator) evalDef(tail value.Seq, ctx *Context) (value.Value, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	if len(items) < 1 || len(items) > 2 {
		return nil, newArgError("def", fmt.Sprintf("expected 1 or 2 argument(s), got %d", len(items)))
	}
	sym, ok := items[0].(*value.Symbol)
	if !ok {
		return nil, newArgError("def", "first argument must be a symbol")
	}
	if sym.HasNs && sym.Namespace() != ctx.Namespace().Name {
		return nil, newError(QualifiedSymbolMisuse, "def's symbol must be unqualified or name the current namespace")
	}
	v := ctx.Namespace().Intern(sym.Name())
	if len(items) == 2 {
		val, err := e.Eval(items[1], ctx)
		if err != nil {
			return nil, err
		}
		v.Set(val)
	}
	return v, nil
}

// evalVar implements `(var sym)`: resolves sym to its Var cell without
// dereferencing it (spec.md §4.5).
func (e *Evaluator) evalVar(tail value.Seq, ctx *Context) (value.Value, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	if len(items) != 1 {
		return nil, newArgError("var", fmt.Sprintf("expected 1 argument, got %d", len(items)))
	}
	sym, ok := items[0].(*value.Symbol)
	if !ok {
		return nil, newArgError("var", "argument must be a symbol")
	}
	var resolved value.Value
	if sym.HasNs {
		resolved, ok = ctx.LookupQualified(sym.Namespace(), sym.Name())
	} else {
		resolved, ok = ctx.Lookup(sym.Name())
	}
	if !ok {
		return nil, newError(InvalidSymbol, "no such var: "+symText(sym))
	}
	v, ok := resolved.(*Var)
	if !ok {
		return nil, newError(InvalidSymbol, symText(sym)+" does not name a var")
	}
	return v, nil
}

// evalLet implements `(let [b1 v1 ...] body*)` (spec.md §4.5, §8): an
// even-length binding vector, each value evaluated in the scope
// accumulated so far, then the body as an implicit do.
func (e *Evaluator) evalLet(tail value.Seq, ctx *Context, tailPos bool) (value.Value, *RecurSignal, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, nil, err
	}
	if len(items) < 1 {
		return nil, nil, newError(BindingMismatch, "let requires a binding vector")
	}
	bindings, ok := items[0].(*value.Vector)
	if !ok {
		return nil, nil, newError(BindingMismatch, "let's first argument must be a binding vector")
	}
	if bindings.Len()%2 != 0 {
		return nil, nil, newError(BindingMismatch, "let's binding vector must have an even number of forms")
	}
	frame := ctx.Child()
	for i := 0; i < bindings.Len(); i += 2 {
		sym, ok := bindings.Items[i].(*value.Symbol)
		if !ok || sym.HasNs {
			return nil, nil, newError(BindingMismatch, "let's binding names must be unqualified symbols")
		}
		val, err := e.Eval(bindings.Items[i+1], frame)
		if err != nil {
			return nil, nil, err
		}
		frame.Bind(sym.Name(), val)
	}
	v, recur, err := e.evalBodyTail(items[1:], frame)
	return finishTail(tailPos, v, recur, err)
}

// evalLoop implements `(loop [b1 v1 ...] body*)` (spec.md §4.5, §8): like
// let, but a `recur` in the body re-binds these parameters and
// re-executes instead of escaping, entirely within this call — loop
// never forwards a RecurSignal to its own caller.
func (e *Evaluator) evalLoop(tail value.Seq, ctx *Context) (value.Value, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	if len(items) < 1 {
		return nil, newError(BindingMismatch, "loop requires a binding vector")
	}
	bindings, ok := items[0].(*value.Vector)
	if !ok {
		return nil, newError(BindingMismatch, "loop's first argument must be a binding vector")
	}
	if bindings.Len()%2 != 0 {
		return nil, newError(BindingMismatch, "loop's binding vector must have an even number of forms")
	}
	names := make([]string, bindings.Len()/2)
	args := make([]value.Value, bindings.Len()/2)
	frame := ctx.Child()
	for i, j := 0, 0; i < bindings.Len(); i, j = i+2, j+1 {
		sym, ok := bindings.Items[i].(*value.Symbol)
		if !ok || sym.HasNs {
			return nil, newError(BindingMismatch, "loop's binding names must be unqualified symbols")
		}
		val, err := e.Eval(bindings.Items[i+1], frame)
		if err != nil {
			return nil, err
		}
		names[j] = sym.Name()
		args[j] = val
		frame.Bind(sym.Name(), val)
	}
	body := items[1:]
	for {
		v, recur, err := e.evalBodyTail(body, frame)
		if err != nil {
			return nil, err
		}
		if recur == nil {
			return v, nil
		}
		if len(recur.Args) != len(names) {
			return nil, newError(RecurMisuse, "recur argument count doesn't match loop's binding count")
		}
		frame = ctx.Child()
		for i, name := range names {
			frame.Bind(name, recur.Args[i])
		}
	}
}

// evalRecur implements `(recur arg*)`: evaluates its arguments and
// produces the RecurSignal sentinel (spec.md §4.5). Only meaningful in
// tail position; evaluating the arguments happens unconditionally so
// that `recur`'s own argument errors surface regardless.
func (e *Evaluator) evalRecur(tail value.Seq, ctx *Context, tailPos bool) (value.Value, *RecurSignal, error) {
	args, err := e.evalArgs(tail, ctx)
	if err != nil {
		return nil, nil, err
	}
	if !tailPos {
		return nil, nil, newError(RecurMisuse, "recur used outside tail position")
	}
	return nil, &RecurSignal{Args: args}, nil
}

// evalApply implements `(apply f a1 ... an coll)` (spec.md §4.5):
// evaluates f, the fixed arguments, and coll; prepends the fixed
// arguments to coll's elements (Nil, seq, vector, or a map flattened to
// [k v] pairs) and invokes f.
func (e *Evaluator) evalApply(tail value.Seq, ctx *Context) (value.Value, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	if len(items) < 2 {
		return nil, newArgError("apply", fmt.Sprintf("expected at least 2 argument(s), got %d", len(items)))
	}
	fv, err := e.Eval(items[0], ctx)
	if err != nil {
		return nil, err
	}
	evaled := make([]value.Value, len(items)-1)
	for i, it := range items[1:] {
		ev, err := e.Eval(it, ctx)
		if err != nil {
			return nil, err
		}
		evaled[i] = ev
	}
	collElems, err := flattenApplyColl(evaled[len(evaled)-1])
	if err != nil {
		return nil, err
	}
	args := append(append([]value.Value{}, evaled[:len(evaled)-1]...), collElems...)
	return e.applyValue(fv, args)
}

func flattenApplyColl(coll value.Value) ([]value.Value, error) {
	switch c := coll.(type) {
	case value.Nil:
		return nil, nil
	case value.Seq:
		return value.SeqToSlice(c)
	case *value.Vector:
		return append([]value.Value{}, c.Items...), nil
	case *value.Map:
		var out []value.Value
		c.Range(func(k, v value.Value) bool {
			out = append(out, k, v)
			return true
		})
		return out, nil
	default:
		return nil, newArgError("apply", "last argument must be nil, a seq, a vector, or a map")
	}
}

// applyValue invokes a Function or BuiltIn with already-evaluated args;
// shared between ordinary call-position application and `apply`.
func (e *Evaluator) applyValue(head value.Value, args []value.Value) (value.Value, error) {
	switch fnv := head.(type) {
	case *Function:
		return e.applyFunction(fnv, args)
	case *value.Builtin:
		return fnv.Fn(args)
	default:
		return nil, newError(NotEvalable, fmt.Sprintf("%v is not callable", head))
	}
}

// evalAttempt implements `(attempt e*)` (spec.md §4.5): evaluates forms
// left-to-right, returning the first one that succeeds; if every form
// fails, returns the last failure. Recur is not meaningful inside
// attempt's forms; none of them run in tail position.
func (e *Evaluator) evalAttempt(tail value.Seq, ctx *Context) (value.Value, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	var lastErr error
	for _, f := range items {
		v, err := e.Eval(f, ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return value.Nil{}, nil
	}
	return nil, lastErr
}
