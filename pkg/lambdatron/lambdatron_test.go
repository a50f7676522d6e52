package lambdatron

import (
	"testing"

	"lambdatron.dev/lambdatron/internal/eval"
)

func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt, err := New()
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	return rt
}

func evalOK(t *testing.T, rt *Runtime, src string) string {
	t.Helper()
	res := rt.Evaluate(src)
	if !res.Ok() {
		t.Fatalf("evaluating %q failed: %s", src, res.String())
	}
	return res.String()
}

// TestAssocMap covers spec.md §8 scenario 1.
func TestAssocMap(t *testing.T) {
	rt := newRuntime(t)
	got := evalOK(t, rt, "(.assoc {} 1 true 2 false)")
	want := "{1 true, 2 false}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestAssocVectorOutOfBounds covers spec.md §8 scenario 2.
func TestAssocVectorOutOfBounds(t *testing.T) {
	rt := newRuntime(t)
	res := rt.Evaluate("(.assoc [10 20 30] 4 99)")
	if res.Ok() {
		t.Fatalf("expected OutOfBounds error, got %s", res.String())
	}
	if res.EvalErr == nil || res.EvalErr.Kind != eval.OutOfBounds {
		t.Errorf("expected OutOfBounds error, got %v", res.EvalErr)
	}
}

// TestFactorial covers spec.md §8 scenario 3.
func TestFactorial(t *testing.T) {
	rt := newRuntime(t)
	got := evalOK(t, rt, "((fn fact [n] (if (zero? n) 1 (* n (fact (dec n))))) 5)")
	if got != "120" {
		t.Errorf("got %q, want 120", got)
	}
}

// TestLoopRecurMillion covers spec.md §8 scenario 4: a million-iteration
// recur loop must not overflow the host stack.
func TestLoopRecurMillion(t *testing.T) {
	rt := newRuntime(t)
	got := evalOK(t, rt, "(loop [n 1000000 acc 0] (if (zero? n) acc (recur (dec n) (inc acc))))")
	if got != "1000000" {
		t.Errorf("got %q, want 1000000", got)
	}
}

// TestTakeIterate covers spec.md §8 scenario 5.
func TestTakeIterate(t *testing.T) {
	rt := newRuntime(t)
	got := evalOK(t, rt, "(take 5 (iterate inc 0))")
	if got != "(0 1 2 3 4)" {
		t.Errorf("got %q, want (0 1 2 3 4)", got)
	}
}

// TestLetAndBindingMismatch covers spec.md §8 scenario 6.
func TestLetAndBindingMismatch(t *testing.T) {
	rt := newRuntime(t)
	got := evalOK(t, rt, "(let [x 10 y (+ x 1)] (+ x y))")
	if got != "21" {
		t.Errorf("got %q, want 21", got)
	}

	res := rt.Evaluate("(let [x])")
	if res.Ok() {
		t.Fatalf("expected BindingMismatch error, got %s", res.String())
	}
	if res.EvalErr == nil || res.EvalErr.Kind != eval.BindingMismatch {
		t.Errorf("expected BindingMismatch error, got %v", res.EvalErr)
	}
}

func TestThreadFirstMacro(t *testing.T) {
	rt := newRuntime(t)
	got := evalOK(t, rt, "(-> 1 inc inc (* 10))")
	if got != "30" {
		t.Errorf("got %q, want 30", got)
	}
}

func TestDefnAndWhen(t *testing.T) {
	rt := newRuntime(t)
	evalOK(t, rt, "(defn double [x] (* x 2))")
	got := evalOK(t, rt, "(when (pos? 3) (double 21))")
	if got != "42" {
		t.Errorf("got %q, want 42", got)
	}
	got = evalOK(t, rt, "(when (pos? -3) (double 21))")
	if got != "nil" {
		t.Errorf("got %q, want nil", got)
	}
}

// TestAnonFnLiteralCallable exercises #(...) end to end against a fully
// bootstrapped runtime: New() must succeed (the embedded stdlib's own defn
// macro expands through syntax-quote splicing), and the literal must
// evaluate its whole body as one call
// expression rather than three separate top-level forms.
func TestAnonFnLiteralCallable(t *testing.T) {
	rt := newRuntime(t)
	got := evalOK(t, rt, "(#(+ %1 %2) 3 4)")
	if got != "7" {
		t.Errorf("got %q, want 7", got)
	}
	got = evalOK(t, rt, "(#(inc %) 41)")
	if got != "42" {
		t.Errorf("got %q, want 42", got)
	}
}

func TestReadFailureIsDistinguished(t *testing.T) {
	rt := newRuntime(t)
	res := rt.Evaluate("(+ 1 2")
	if res.Ok() {
		t.Fatalf("expected a read failure")
	}
	if res.ReadErr == nil {
		t.Errorf("expected ReadErr to be set, got %+v", res)
	}
}

func TestWithoutStdlibSkipsBootstrap(t *testing.T) {
	rt, err := New(WithoutStdlib())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := rt.Evaluate("(take 1 '(1 2 3))")
	if res.Ok() {
		t.Fatalf("expected take to be undefined without stdlib, got %s", res.String())
	}
}
