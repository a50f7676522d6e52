package reader

import (
	"errors"
	"regexp"
	"testing"

	"lambdatron.dev/lambdatron/internal/intern"
	"lambdatron.dev/lambdatron/internal/value"
)

func parseOne(t *testing.T, store *intern.Store, src string) value.Value {
	t.Helper()
	p := NewParser(NewFromString(src), store)
	forms, err := p.ParseAll()
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	if len(forms) != 1 {
		t.Fatalf("parsing %q: got %d forms, want 1", src, len(forms))
	}
	return forms[0]
}

func TestParsePrintRoundTrip(t *testing.T) {
	store := intern.New()
	cases := []string{
		`(1 2 3)`,
		`[1 2 3]`,
		`{:a 1 :b 2}`,
		`#{1 2 3}`,
		`"hello\nworld"`,
		`3.14`,
		`-42`,
	}
	for _, src := range cases {
		form := parseOne(t, store, src)
		got := value.NewPrinter().Print(form)
		if got == "" {
			t.Errorf("printing %q produced empty output", src)
			continue
		}
		back := parseOne(t, store, got)
		if !value.Equal(form, back) {
			t.Errorf("%q printed as %s, which reads back as %s", src, got, value.NewPrinter().Print(back))
		}
	}
}

func TestUnterminatedListIsReadError(t *testing.T) {
	store := intern.New()
	p := NewParser(NewFromString("(+ 1 2"), store)
	_, err := p.ParseAll()
	if err == nil {
		t.Fatal("expected a ReadError for an unterminated list")
	}
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %T: %v", err, err)
	}
}

func TestUnterminatedRegexIsInvalidRegex(t *testing.T) {
	store := intern.New()
	p := NewParser(NewFromString(`#"abc`), store)
	_, err := p.ParseAll()
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %T: %v", err, err)
	}
	if readErr.Kind != InvalidRegex {
		t.Errorf("got kind %v, want InvalidRegex", readErr.Kind)
	}
}

func TestExpandQuoteIsUntouched(t *testing.T) {
	store := intern.New()
	form := parseOne(t, store, "(quote (a b c))")
	exp := NewExpander(store, "user")
	out, err := exp.Expand(form)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if value.NewPrinter().Print(out) != "(quote (a b c))" {
		t.Errorf("got %s", value.NewPrinter().Print(out))
	}
}

func TestExpandSyntaxQuoteSubstitutesUnquote(t *testing.T) {
	store := intern.New()
	form := parseOne(t, store, "`(a ~b ~@c)")
	exp := NewExpander(store, "user")
	out, err := exp.Expand(form)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	// The expansion builds a .cons/.concat chain rather than a literal
	// list: a is namespace-qualified and quoted, b is substituted as-is,
	// and c is spliced.
	printed := value.NewPrinter().Print(out)
	if printed == "" {
		t.Fatal("expected non-empty expansion")
	}
	want := "(.cons (quote user/a) (.cons b (.concat c ())))"
	if printed != want {
		t.Errorf("got %s, want %s", printed, want)
	}
}

func TestAutoGensymIsStableWithinOneExpansion(t *testing.T) {
	store := intern.New()
	form := parseOne(t, store, "`(let [x# 1] (+ x# x#))")
	exp := NewExpander(store, "user")
	out, err := exp.Expand(form)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	printed := value.NewPrinter().Print(out)
	if printed == "" {
		t.Fatal("expected non-empty expansion")
	}
	names := regexp.MustCompile(`x__[0-9a-f]{8}__auto__`).FindAllString(printed, -1)
	if len(names) != 3 {
		t.Fatalf("got %d gensyms in %s, want 3", len(names), printed)
	}
	if names[0] != names[1] || names[1] != names[2] {
		t.Errorf("x# expanded to different symbols: %v", names)
	}
}

func TestAnonFnLiteralExpands(t *testing.T) {
	store := intern.New()
	form := parseOne(t, store, "#(+ %1 %2)")
	exp := NewExpander(store, "user")
	out, err := exp.Expand(form)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if _, ok := out.(value.Seq); !ok {
		t.Fatalf("expected #(...) to expand to a seq (fn form), got %T", out)
	}
	// #(+ %1 %2) must become (fn [%1 %2] (+ %1 %2)) — a single call
	// expression as the body, not three separate top-level body forms.
	got := value.NewPrinter().Print(out)
	if got != "(fn [%1 %2] (+ %1 %2))" {
		t.Fatalf("got %s, want (fn [%%1 %%2] (+ %%1 %%2))", got)
	}
}

// TestAnonFnBareParamIsRenamedToPercent1 confirms #(...) with a single
// implicit parameter still threads %1 through even when only the bare %
// spelling is used.
func TestAnonFnBareParamIsRenamedToPercent1(t *testing.T) {
	store := intern.New()
	form := parseOne(t, store, "#(inc %)")
	exp := NewExpander(store, "user")
	out, err := exp.Expand(form)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	got := value.NewPrinter().Print(out)
	if got != "(fn [%1] (inc %1))" {
		t.Fatalf("got %s, want (fn [%%1] (inc %%1))", got)
	}
}

func TestMismatchedDelimiterIsReadError(t *testing.T) {
	store := intern.New()
	p := NewParser(NewFromString("(1 2]"), store)
	_, err := p.ParseAll()
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %T: %v", err, err)
	}
	if readErr.Kind != MismatchedDelimiter {
		t.Errorf("got kind %v, want MismatchedDelimiter", readErr.Kind)
	}
}
