package eval

import (
	"errors"
	"testing"

	"lambdatron.dev/lambdatron/internal/intern"
	"lambdatron.dev/lambdatron/internal/value"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	return New(intern.New())
}

func mustEval(t *testing.T, e *Evaluator, src string) value.Value {
	t.Helper()
	v, err := e.Evaluate(src)
	if err != nil {
		t.Fatalf("evaluating %q: %v", src, err)
	}
	return v
}

func evalErr(t *testing.T, e *Evaluator, src string) *EvalError {
	t.Helper()
	_, err := e.Evaluate(src)
	if err == nil {
		t.Fatalf("expected an error evaluating %q", src)
	}
	var ee *EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *EvalError, got %T: %v", err, err)
	}
	return ee
}

func TestIfBranches(t *testing.T) {
	e := newTestEvaluator(t)
	if got := mustEval(t, e, "(if true 1 2)"); got != value.Int(1) {
		t.Errorf("got %v, want 1", got)
	}
	if got := mustEval(t, e, "(if false 1 2)"); got != value.Int(2) {
		t.Errorf("got %v, want 2", got)
	}
	if got := mustEval(t, e, "(if false 1)"); got != (value.Nil{}) {
		t.Errorf("got %v, want nil", got)
	}
}

func TestIfArityError(t *testing.T) {
	e := newTestEvaluator(t)
	ee := evalErr(t, e, "(if true)")
	if ee.Kind != InvalidArgument {
		t.Errorf("got kind %v, want InvalidArgument", ee.Kind)
	}
}

func TestDoSequencing(t *testing.T) {
	e := newTestEvaluator(t)
	got := mustEval(t, e, "(do 1 2 3)")
	if got != value.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestDefAndSymbolLookup(t *testing.T) {
	e := newTestEvaluator(t)
	got := mustEval(t, e, "(def x 10) x")
	if got != value.Int(10) {
		t.Errorf("got %v, want 10", got)
	}
}

func TestQualifiedDefMustMatchCurrentNamespace(t *testing.T) {
	e := newTestEvaluator(t)
	ee := evalErr(t, e, "(def other/x 1)")
	if ee.Kind != QualifiedSymbolMisuse {
		t.Errorf("got kind %v, want QualifiedSymbolMisuse", ee.Kind)
	}
}

func TestQualifiedDefMatchingCurrentNamespaceIsLegal(t *testing.T) {
	e := newTestEvaluator(t)
	got := mustEval(t, e, "(def user/x 7) x")
	if got != value.Int(7) {
		t.Errorf("got %v, want 7", got)
	}
}

func TestLetBindingMismatch(t *testing.T) {
	e := newTestEvaluator(t)
	ee := evalErr(t, e, "(let [x] x)")
	if ee.Kind != BindingMismatch {
		t.Errorf("got kind %v, want BindingMismatch", ee.Kind)
	}
}

func TestLetSequentialScoping(t *testing.T) {
	e := newTestEvaluator(t)
	got := mustEval(t, e, "(let [x 10 y x] y)")
	if got != value.Int(10) {
		t.Errorf("got %v, want 10", got)
	}
}

func TestFnMultiArityDispatch(t *testing.T) {
	e := newTestEvaluator(t)
	e.Evaluate(`(def f (fn ([x] 1) ([x y] 2) ([x y & more] 3)))`)
	if got := mustEval(t, e, "(f 0)"); got != value.Int(1) {
		t.Errorf("got %v, want 1", got)
	}
	if got := mustEval(t, e, "(f 0 0)"); got != value.Int(2) {
		t.Errorf("got %v, want 2", got)
	}
	if got := mustEval(t, e, "(f 0 0 0)"); got != value.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestFnNoMatchingArityIsInvalidArgument(t *testing.T) {
	e := newTestEvaluator(t)
	e.Evaluate(`(def f (fn ([x] 1) ([x y] 2)))`)
	ee := evalErr(t, e, "(f)")
	if ee.Kind != InvalidArgument {
		t.Errorf("got kind %v, want InvalidArgument", ee.Kind)
	}
}

func TestLoopRecurArityMismatch(t *testing.T) {
	e := newTestEvaluator(t)
	ee := evalErr(t, e, "(loop [x 1] (recur 1 2))")
	if ee.Kind != RecurMisuse {
		t.Errorf("got kind %v, want RecurMisuse", ee.Kind)
	}
}

func TestRecurOutsideTailPositionIsRecurMisuse(t *testing.T) {
	e := newTestEvaluator(t)
	ee := evalErr(t, e, "(recur 1)")
	if ee.Kind != RecurMisuse {
		t.Errorf("got kind %v, want RecurMisuse", ee.Kind)
	}
}

// TestRecurThroughLetInTailPositionPropagates confirms a recur nested
// inside let's body (itself nested inside an if) correctly escapes both
// pass-through forms and reaches the enclosing loop, rather than being
// rejected as RecurMisuse partway out.
func TestRecurThroughLetInTailPositionPropagates(t *testing.T) {
	e := newTestEvaluator(t)
	got := mustEval(t, e, "(loop [n true] (let [m n] (if n (if m (recur false) 99) 100)))")
	if got != value.Int(100) {
		t.Errorf("got %v, want 100 (meaning the second loop iteration, bound via the propagated recur, was reached)", got)
	}
}

func TestCallingNonFunctionIsNotEvalable(t *testing.T) {
	e := newTestEvaluator(t)
	ee := evalErr(t, e, "(1 2 3)")
	if ee.Kind != NotEvalable {
		t.Errorf("got kind %v, want NotEvalable", ee.Kind)
	}
}

func TestQuoteReturnsUnevaluatedForm(t *testing.T) {
	e := newTestEvaluator(t)
	got := mustEval(t, e, "(quote (a b c))")
	s, ok := got.(value.Seq)
	if !ok {
		t.Fatalf("expected a seq, got %T", got)
	}
	items, err := value.SeqToSlice(s)
	if err != nil || len(items) != 3 {
		t.Fatalf("got %v, err %v", items, err)
	}
}

func TestVarFormResolvesToVarCell(t *testing.T) {
	e := newTestEvaluator(t)
	e.Evaluate("(def x 5)")
	got := mustEval(t, e, "(var x)")
	if _, ok := got.(*Var); !ok {
		t.Errorf("expected *Var, got %T", got)
	}
}

func TestAttemptReturnsFirstSuccessElseLastFailure(t *testing.T) {
	e := newTestEvaluator(t)
	got := mustEval(t, e, "(attempt undefined-sym 42)")
	if got != value.Int(42) {
		t.Errorf("got %v, want 42", got)
	}
	ee := evalErr(t, e, "(attempt undefined-sym another-undefined-sym)")
	if ee.Kind != InvalidSymbol {
		t.Errorf("got kind %v, want InvalidSymbol", ee.Kind)
	}
}

func TestDefmacroExpandsAtCallSite(t *testing.T) {
	e := newTestEvaluator(t)
	e.Evaluate("(defmacro ignored [x] (quote nil))")
	// A trivial macro whose template ignores its argument, just to
	// confirm the macro path runs (expansion, then a second eval pass on
	// the result) without requiring host arithmetic.
	got := mustEval(t, e, "(ignored whatever-undefined-symbol)")
	if got != (value.Nil{}) {
		t.Errorf("got %v", got)
	}
}

func TestApplyFlattensVectorAndMap(t *testing.T) {
	e := newTestEvaluator(t)
	e.Evaluate(`(def f (fn [a b c] (quote applied)))`)
	got := mustEval(t, e, "(apply f [1 2 3])")
	sym, ok := got.(*value.Symbol)
	if !ok || sym.Name() != "applied" {
		t.Errorf("got %v", got)
	}
	e.Evaluate(`(def g (fn [k v] v))`)
	if got := mustEval(t, e, "(apply g {:a 1})"); got != value.Int(1) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestApplyWithNilCollIsJustFixedArgs(t *testing.T) {
	e := newTestEvaluator(t)
	e.Evaluate(`(def f (fn [] (quote called)))`)
	got := mustEval(t, e, "(apply f nil)")
	sym, ok := got.(*value.Symbol)
	if !ok || sym.Name() != "called" {
		t.Errorf("got %v", got)
	}
}
