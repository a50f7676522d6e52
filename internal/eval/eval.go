// Package eval implements Lambdatron's tree-walking evaluator: namespaces,
// lexical contexts, special-form dispatch, function application with the
// recur trampoline, and the EvalError domain.
//
// Grounded on the teacher's internal/eval package shape (an Evaluator
// struct built via functional Options, wrapping a Namespace), generalized
// from losp's flat-text dispatch to an s-expression tree walker.
package eval

import (
	"fmt"

	"go.uber.org/zap"

	"lambdatron.dev/lambdatron/internal/intern"
	"lambdatron.dev/lambdatron/internal/reader"
	"lambdatron.dev/lambdatron/internal/value"
)

// RecurSignal is how evaluate's Recur(Params) result (spec.md §4.4) travels
// back up the call stack: a distinguished return value threaded alongside
// ordinary (Value, error) results instead of a three-armed EvalResult
// type. Only `if`, `do`, and `let`'s body are *pass-through* positions —
// they forward a RecurSignal produced by their own tail form unexamined.
// Every other context converts an observed RecurSignal to RecurMisuse.
type RecurSignal struct {
	Args []value.Value
}

// HostFunc is the signature host-registered BuiltIns implement (spec.md
// §6): already-evaluated arguments in, a Value or error out.
type HostFunc func(args []value.Value) (value.Value, error)

// Evaluator ties together the intern store, namespace registry, and
// current namespace, and drives eval() (spec.md §4.4).
//
// Grounded on the teacher's internal/eval.Evaluator, built with the same
// functional-Option pattern; generalized from losp's single flat
// Namespace to a Registry of namespaces plus the current one.
type Evaluator struct {
	Store    *intern.Store
	Registry *Registry
	ns       *Namespace
	log      *zap.Logger
	out      func(string)
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the structured logger used for diagnostic output.
// Defaults to zap.NewNop() (SPEC_FULL.md §A.1).
func WithLogger(log *zap.Logger) Option {
	return func(e *Evaluator) { e.log = log }
}

// WithOutput sets the function invoked by the `print`/`println` host
// functions to emit text.
func WithOutput(w func(string)) Option {
	return func(e *Evaluator) { e.out = w }
}

// New creates an Evaluator rooted in the "user" namespace.
func New(store *intern.Store, opts ...Option) *Evaluator {
	reg := NewRegistry()
	e := &Evaluator{
		Store:    store,
		Registry: reg,
		ns:       reg.FindOrCreate("user"),
		log:      zap.NewNop(),
		out:      func(string) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Logger returns the evaluator's structured logger.
func (e *Evaluator) Logger() *zap.Logger { return e.log }

// Output sends s to the configured output sink.
func (e *Evaluator) Output(s string) { e.out(s) }

// CurrentNamespace returns the namespace new top-level forms evaluate in.
func (e *Evaluator) CurrentNamespace() *Namespace { return e.ns }

// SetCurrentNamespace switches the evaluator's current namespace (used by
// an `in-ns`-style bootstrap form, if the embedded stdlib defines one).
func (e *Evaluator) SetCurrentNamespace(ns *Namespace) { e.ns = ns }

// RootContext returns a fresh top-level Context for the current namespace.
func (e *Evaluator) RootContext() *Context {
	return NewRootContext(e.Registry, e.ns)
}

// Evaluate reads, expands, and evaluates every top-level form in src in
// turn, returning the last result (spec.md §6's Evaluator API). Read and
// expand failures are returned unchanged; callers distinguish ReadFailure
// from EvalFailure with errors.As against *reader.ReadError /
// *reader.ExpandError / *EvalError.
func (e *Evaluator) Evaluate(src string) (value.Value, error) {
	lex := reader.NewFromString(src)
	parser := reader.NewParser(lex, e.Store)
	forms, err := parser.ParseAll()
	if err != nil {
		return nil, err
	}
	var result value.Value = value.Nil{}
	for _, form := range forms {
		expander := reader.NewExpander(e.Store, e.ns.Name)
		expanded, err := expander.Expand(form)
		if err != nil {
			return nil, err
		}
		result, err = e.Eval(expanded, e.RootContext())
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Eval evaluates form to a plain Value; a RecurSignal escaping from a
// non-tail position becomes RecurMisuse (spec.md §7).
func (e *Evaluator) Eval(form value.Value, ctx *Context) (value.Value, error) {
	v, recur, err := e.eval(form, ctx, false)
	if err != nil {
		return nil, err
	}
	if recur != nil {
		return nil, newError(RecurMisuse, "recur used outside tail position")
	}
	return v, nil
}

// evalTail evaluates form where it occupies a tail position: a RecurSignal
// produced by a pass-through form (if/do/let) or by `recur` itself is
// returned instead of converted to an error, so the nearest enclosing
// `fn`/`loop` trampoline can catch it.
func (e *Evaluator) evalTail(form value.Value, ctx *Context) (value.Value, *RecurSignal, error) {
	return e.eval(form, ctx, true)
}

// eval implements the dispatch table of spec.md §4.4. tailPos marks
// whether form occupies a position where a RecurSignal may legally
// surface instead of being an error.
func (e *Evaluator) eval(form value.Value, ctx *Context, tailPos bool) (value.Value, *RecurSignal, error) {
	switch v := form.(type) {
	case *value.Symbol:
		val, err := e.evalSymbol(v, ctx)
		return val, nil, err
	case *value.Vector:
		val, err := e.evalVector(v, ctx)
		return val, nil, err
	case *value.Map:
		val, err := e.evalMap(v, ctx)
		return val, nil, err
	case value.Seq:
		return e.evalSeq(v, ctx, tailPos)
	default:
		// Atoms evaluate to themselves (spec.md §4.4, §8's eval-idempotence
		// invariant).
		return form, nil, nil
	}
}

func (e *Evaluator) evalSymbol(sym *value.Symbol, ctx *Context) (value.Value, error) {
	var resolved value.Value
	var ok bool
	if sym.HasNs {
		resolved, ok = ctx.LookupQualified(sym.Namespace(), sym.Name())
	} else {
		resolved, ok = ctx.Lookup(sym.Name())
	}
	if !ok {
		return nil, newError(InvalidSymbol, "unresolved symbol: "+symText(sym))
	}
	if v, isVar := resolved.(*Var); isVar {
		val, bound := v.Get()
		if !bound {
			return v, nil
		}
		return val, nil
	}
	return resolved, nil
}

func symText(sym *value.Symbol) string {
	if sym.HasNs {
		return sym.Namespace() + "/" + sym.Name()
	}
	return sym.Name()
}

func (e *Evaluator) evalVector(v *value.Vector, ctx *Context) (value.Value, error) {
	out := make([]value.Value, v.Len())
	for i, it := range v.Items {
		ev, err := e.Eval(it, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return value.NewVector(out), nil
}

func (e *Evaluator) evalMap(m *value.Map, ctx *Context) (value.Value, error) {
	result := value.EmptyMap
	var outerErr error
	m.Range(func(k, v value.Value) bool {
		ek, err := e.Eval(k, ctx)
		if err != nil {
			outerErr = err
			return false
		}
		ev, err := e.Eval(v, ctx)
		if err != nil {
			outerErr = err
			return false
		}
		result = result.Assoc(ek, ev)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return result, nil
}

func (e *Evaluator) evalSeq(s value.Seq, ctx *Context, tailPos bool) (value.Value, *RecurSignal, error) {
	if s.IsEmpty() {
		return value.Empty, nil, nil
	}
	headForm, err := s.First()
	if err != nil {
		return nil, nil, err
	}
	tail, err := s.Rest()
	if err != nil {
		return nil, nil, err
	}

	if sp, ok := headForm.(value.Special); ok {
		return e.evalSpecial(sp.Tag, tail, ctx, tailPos)
	}

	head, err := e.Eval(headForm, ctx)
	if err != nil {
		return nil, nil, err
	}

	switch fnv := head.(type) {
	case *Function:
		if fnv.IsMacro {
			args, err := value.SeqToSlice(tail)
			if err != nil {
				return nil, nil, err
			}
			expansion, err := e.applyFunction(fnv, args)
			if err != nil {
				return nil, nil, err
			}
			return e.eval(expansion, ctx, tailPos)
		}
		args, err := e.evalArgs(tail, ctx)
		if err != nil {
			return nil, nil, err
		}
		v, err := e.applyFunction(fnv, args)
		return v, nil, err
	case *value.Builtin:
		args, err := e.evalArgs(tail, ctx)
		if err != nil {
			return nil, nil, err
		}
		v, err := fnv.Fn(args)
		return v, nil, err
	default:
		return nil, nil, newError(NotEvalable, fmt.Sprintf("%v is not callable", head))
	}
}

// ApplyHostCallback lets a host function (internal/host) invoke a
// Lambdatron closure it was handed as an argument — needed by
// `.lazy-seq`'s thunk forcing, and any future higher-order host
// primitive that takes a callback.
func (e *Evaluator) ApplyHostCallback(fn *Function, args []value.Value) (value.Value, error) {
	return e.applyFunction(fn, args)
}

func (e *Evaluator) evalArgs(tail value.Seq, ctx *Context) ([]value.Value, error) {
	items, err := value.SeqToSlice(tail)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(items))
	for i, it := range items {
		ev, err := e.Eval(it, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}

// applyFunction implements spec.md §4.4's application + recur-trampoline
// rule: select an arity, bind it, evaluate the body as an implicit do;
// loop on a tail Recur instead of growing the Go stack (spec.md §8's O(1)
// host-stack invariant).
func (e *Evaluator) applyFunction(fn *Function, args []value.Value) (value.Value, error) {
	arity, ok := fn.SelectArity(len(args))
	if !ok {
		return nil, newArgError(fnName(fn), fmt.Sprintf("no matching arity for %d argument(s)", len(args)))
	}
	for {
		frame := fn.Env.Child()
		if fn.SelfName != "" {
			frame.Bind(fn.SelfName, fn)
		}
		if err := bindArity(frame, arity, args); err != nil {
			return nil, err
		}
		result, recur, err := e.evalBodyTail(arity.Body, frame)
		if err != nil {
			return nil, err
		}
		if recur == nil {
			return result, nil
		}
		if len(recur.Args) != len(arity.Fixed)+boolToInt(arity.HasRest) {
			return nil, newError(RecurMisuse, "recur argument count doesn't match the enclosing fn's arity")
		}
		args = recur.Args
	}
}

func fnName(fn *Function) string {
	if fn.SelfName != "" {
		return fn.SelfName
	}
	return "fn"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func bindArity(frame *Context, a Arity, args []value.Value) error {
	if a.HasRest {
		if len(args) < len(a.Fixed) {
			return newArgError("fn", fmt.Sprintf("expected at least %d argument(s), got %d", len(a.Fixed), len(args)))
		}
		for i, p := range a.Fixed {
			frame.Bind(p, args[i])
		}
		frame.Bind(a.Variadic, value.SeqFromSlice(args[len(a.Fixed):]))
		return nil
	}
	if len(args) != len(a.Fixed) {
		return newArgError("fn", fmt.Sprintf("expected %d argument(s), got %d", len(a.Fixed), len(args)))
	}
	for i, p := range a.Fixed {
		frame.Bind(p, args[i])
	}
	return nil
}

// evalBodyTail evaluates forms as an implicit `do` (spec.md §4.5's `do`
// row): every form but the last is evaluated for effect only (a
// RecurSignal escaping one of them is RecurMisuse); the last is
// evaluated in tail position, forwarding any RecurSignal it produces.
func (e *Evaluator) evalBodyTail(forms []value.Value, ctx *Context) (value.Value, *RecurSignal, error) {
	if len(forms) == 0 {
		return value.Nil{}, nil, nil
	}
	for _, f := range forms[:len(forms)-1] {
		if _, err := e.Eval(f, ctx); err != nil {
			return nil, nil, err
		}
	}
	return e.evalTail(forms[len(forms)-1], ctx)
}
