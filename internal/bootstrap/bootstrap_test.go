package bootstrap

import (
	"testing"

	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/host"
	"lambdatron.dev/lambdatron/internal/intern"
	"lambdatron.dev/lambdatron/internal/value"
)

func newLoadedEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	ev := eval.New(intern.New())
	host.Install(ev)
	if err := Load(ev); err != nil {
		t.Fatalf("bootstrap load failed: %v", err)
	}
	return ev
}

func TestSourceIsNonEmpty(t *testing.T) {
	if Source() == "" {
		t.Fatal("expected embedded core.lbt source to be non-empty")
	}
}

func TestLoadDefinesDefn(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(defn double [x] (* x 2)) (double 21)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != value.Int(42) {
		t.Errorf("got %v, want 42", v)
	}
}

func TestWhenTrueAndFalse(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(when (pos? 1) 99)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != value.Int(99) {
		t.Errorf("got %v, want 99", v)
	}
	v, err = ev.Evaluate("(when (pos? -1) 99)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != (value.Nil{}) {
		t.Errorf("got %v, want nil", v)
	}
}

func TestWhenLet(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(when-let [x 5] (* x x))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != value.Int(25) {
		t.Errorf("got %v, want 25", v)
	}
}

func TestThreadFirst(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(-> 1 inc inc (* 10))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != value.Int(30) {
		t.Errorf("got %v, want 30", v)
	}
}

func TestIterateTake(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(.vec (take 5 (iterate inc 0)))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[0 1 2 3 4]" {
		t.Errorf("got %s", got)
	}
}

func TestDropAndRepeat(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(.vec (drop 2 (take 5 (iterate inc 0))))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[2 3 4]" {
		t.Errorf("got %s", got)
	}

	v, err = ev.Evaluate("(.vec (repeat 3 7))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[7 7 7]" {
		t.Errorf("got %s", got)
	}
}

func TestConcatOfTwoAndThree(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(.vec (concat [1 2] [3 4]))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[1 2 3 4]" {
		t.Errorf("got %s", got)
	}

	v, err = ev.Evaluate("(.vec (concat [1] [2] [3]))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[1 2 3]" {
		t.Errorf("got %s", got)
	}
}

func TestInterleaveTwoCollections(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(.vec (interleave [1 2 3] [:a :b :c]))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[1 :a 2 :b 3 :c]" {
		t.Errorf("got %s", got)
	}
}

func TestInterpose(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate(`(.vec (interpose "," [1 2 3]))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != `[1 "," 2 "," 3]` {
		t.Errorf("got %s", got)
	}
}

func TestRemove(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(.vec (remove pos? [1 -1 2 -2]))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[-1 -2]" {
		t.Errorf("got %s", got)
	}
}

func TestListStar(t *testing.T) {
	ev := newLoadedEvaluator(t)
	v, err := ev.Evaluate("(.vec (list* 1 2 [3 4]))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := value.NewPrinter().Print(v); got != "[1 2 3 4]" {
		t.Errorf("got %s", got)
	}
}
