package reader

import (
	"fmt"

	"github.com/google/uuid"

	"lambdatron.dev/lambdatron/internal/intern"
	"lambdatron.dev/lambdatron/internal/value"
)

// ExpandError reports a reader-macro expansion failure: spec.md §4.3 names
// exactly one — unquote (or unquote-splicing) used outside syntax-quote.
type ExpandError struct {
	Message string
}

func (e *ExpandError) Error() string { return e.Message }

// Expander rewrites the reader-macro placeholder forms ParseForm produces
// into the canonical shapes spec.md §4.3 describes: quote survives as the
// lone lexical reader form; syntax-quote/unquote/unquote-splicing/deref and
// the #(...) anonymous-fn marker are fully lowered into ordinary code built
// from quote, .cons, .vec, and the host primitive .concat.
//
// Grounded on the teacher's parseBodyImmediateOnly, which rewrites a parsed
// body in a single pass before the evaluator ever sees it; generalized here
// from losp's flat token rewriting to a recursive tree rewrite plus the
// syntax-quote templating algorithm every quasiquote-style reader needs.
type Expander struct {
	store *intern.Store
	ns    string

	// gensyms maps an auto-gensym base name ("x" from "x#") to the symbol
	// generated for it, scoped to the syntax-quote form currently being
	// expanded; reset whenever a new outermost syntax-quote is entered.
	gensyms map[string]*value.Symbol
}

// NewExpander creates an Expander that qualifies unqualified symbols with ns
// inside syntax-quote templates (spec.md §4.3).
func NewExpander(store *intern.Store, ns string) *Expander {
	return &Expander{store: store, ns: ns}
}

// Expand rewrites every reader-macro marker within form.
func (e *Expander) Expand(form value.Value) (value.Value, error) {
	return e.expand(form, 0)
}

// expand rewrites form in ordinary code position (depth == 0): markers are
// lowered, quote's contents recurse unchanged, everything else recurses
// plainly with no symbol qualification. Once inside a syntax-quote
// (depth > 0) control passes to expandTemplate and stays there until an
// unquote drops back to depth 0.
func (e *Expander) expand(form value.Value, depth int) (value.Value, error) {
	if depth > 0 {
		return e.expandTemplate(form, depth)
	}
	switch v := form.(type) {
	case value.Seq:
		if name, arg, ok := e.asSymbolMarker(v); ok {
			return e.expandMarker(name, arg, depth)
		}
		if sp, ok := headSpecial(v); ok && sp == value.SpecialQuote {
			return e.expandQuote(v)
		}
		return e.expandSeqPlain(v)
	case *value.Vector:
		return e.expandVectorPlain(v)
	case *value.Map:
		return e.expandMapPlain(v)
	case *value.Set:
		return e.expandSetPlain(v)
	default:
		return form, nil
	}
}

func headSpecial(s value.Seq) (value.SpecialTag, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	h, err := s.First()
	if err != nil {
		return 0, false
	}
	sp, ok := h.(value.Special)
	return sp.Tag, ok
}

// asSymbolMarker reports whether s is a two-element list (sym arg) headed
// by one of the expander's own unqualified marker symbols.
func (e *Expander) asSymbolMarker(s value.Seq) (name string, arg value.Value, ok bool) {
	if s.IsEmpty() {
		return "", nil, false
	}
	h, err := s.First()
	if err != nil {
		return "", nil, false
	}
	sym, isSym := h.(*value.Symbol)
	if !isSym || sym.HasNs {
		return "", nil, false
	}
	switch sym.Name() {
	case markerSyntaxQ, markerUnquote, markerUnquoteAt, markerDeref, markerAnonFn:
	default:
		return "", nil, false
	}
	rest, err := s.Rest()
	if err != nil || rest.IsEmpty() {
		return "", nil, false
	}
	arg, err = rest.First()
	if err != nil {
		return "", nil, false
	}
	return sym.Name(), arg, true
}

// expandMarker handles a marker encountered in ordinary code position
// (depth == 0).
func (e *Expander) expandMarker(name string, arg value.Value, depth int) (value.Value, error) {
	switch name {
	case markerSyntaxQ:
		e.gensyms = make(map[string]*value.Symbol)
		return e.expandTemplate(arg, depth+1)
	case markerUnquote:
		return nil, &ExpandError{Message: "unquote used outside syntax-quote"}
	case markerUnquoteAt:
		return nil, &ExpandError{Message: "unquote-splicing used outside syntax-quote"}
	case markerDeref:
		inner, err := e.expand(arg, depth)
		if err != nil {
			return nil, err
		}
		derefSym := value.NewSymbol(e.store, "", ".deref")
		return value.SeqFromSlice([]value.Value{derefSym, inner}), nil
	case markerAnonFn:
		return e.expandAnonFn(arg)
	}
	return nil, fmt.Errorf("reader: unknown marker %q", name)
}

func (e *Expander) expandQuote(s value.Seq) (value.Value, error) {
	rest, _ := s.Rest()
	if rest.IsEmpty() {
		return s, nil
	}
	arg, _ := rest.First()
	inner, err := e.expand(arg, 0)
	if err != nil {
		return nil, err
	}
	head := value.Special{Tag: value.SpecialQuote}
	return value.SeqFromSlice([]value.Value{head, inner}), nil
}

func (e *Expander) expandSeqPlain(s value.Seq) (value.Value, error) {
	items, err := value.SeqToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(items))
	for i, it := range items {
		ev, err := e.expand(it, 0)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return value.SeqFromSlice(out), nil
}

func (e *Expander) expandVectorPlain(v *value.Vector) (value.Value, error) {
	out := make([]value.Value, v.Len())
	for i, it := range v.Items {
		ev, err := e.expand(it, 0)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return value.NewVector(out), nil
}

func (e *Expander) expandMapPlain(m *value.Map) (value.Value, error) {
	var flat []value.Value
	var outerErr error
	m.Range(func(k, v value.Value) bool {
		ek, err := e.expand(k, 0)
		if err != nil {
			outerErr = err
			return false
		}
		ev, err := e.expand(v, 0)
		if err != nil {
			outerErr = err
			return false
		}
		flat = append(flat, ek, ev)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return value.NewMapFromFlat(flat), nil
}

func (e *Expander) expandSetPlain(s *value.Set) (value.Value, error) {
	var out []value.Value
	var outerErr error
	s.Range(func(v value.Value) bool {
		ev, err := e.expand(v, 0)
		if err != nil {
			outerErr = err
			return false
		}
		out = append(out, ev)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return value.NewSet(out), nil
}

// expandTemplate builds the code a syntax-quote template lowers to: a form
// which, when evaluated, reconstructs the templated data with every
// unquote substituted at runtime and every unquote-splicing spliced in
// (spec.md §4.3). depth is always >= 1 here.
func (e *Expander) expandTemplate(form value.Value, depth int) (value.Value, error) {
	switch v := form.(type) {
	case value.Seq:
		if name, arg, ok := e.asSymbolMarker(v); ok {
			switch name {
			case markerSyntaxQ:
				return e.expandTemplate(arg, depth+1)
			case markerUnquote:
				if depth == 1 {
					return e.expand(arg, 0)
				}
				return e.templateNestedMarker(markerUnquote, arg, depth)
			case markerUnquoteAt:
				if depth == 1 {
					return nil, &ExpandError{Message: "unquote-splicing used outside a sequential template"}
				}
				return e.templateNestedMarker(markerUnquoteAt, arg, depth)
			case markerDeref:
				return e.templateDeref(arg, depth)
			}
		}
		return e.templateSeq(v, depth)
	case *value.Vector:
		return e.templateVector(v, depth)
	case *value.Map:
		return e.templateMap(v, depth)
	case *value.Set:
		return e.templateSet(v, depth)
	case *value.Symbol:
		return e.templateSymbol(v), nil
	default:
		return quoteLiteral(v), nil
	}
}

// templateNestedMarker re-emits an unquote/unquote-splicing marker found
// more than one syntax-quote level deep: it doesn't fire yet, but its own
// argument still templates one level shallower ("nests one level of
// quoting", spec.md §4.3).
func (e *Expander) templateNestedMarker(name string, arg value.Value, depth int) (value.Value, error) {
	inner, err := e.expandTemplate(arg, depth-1)
	if err != nil {
		return nil, err
	}
	consSym := value.NewSymbol(e.store, "", ".cons")
	markerLit := quoteLiteral(value.NewSymbol(e.store, "", name))
	return value.SeqFromSlice([]value.Value{consSym, markerLit,
		value.SeqFromSlice([]value.Value{consSym, inner, value.Empty})}), nil
}

// templateDeref lowers `@x` found inside a template to the (.deref x) shape
// spec.md §4.3 names, regardless of nesting depth.
func (e *Expander) templateDeref(arg value.Value, depth int) (value.Value, error) {
	inner, err := e.expandTemplate(arg, depth)
	if err != nil {
		return nil, err
	}
	consSym := value.NewSymbol(e.store, "", ".cons")
	derefLit := quoteLiteral(value.NewSymbol(e.store, "", ".deref"))
	return value.SeqFromSlice([]value.Value{consSym, derefLit,
		value.SeqFromSlice([]value.Value{consSym, inner, value.Empty})}), nil
}

// templateSymbol qualifies an unqualified symbol with the current
// namespace, or substitutes its per-expansion gensym if its name ends in
// '#' (spec.md §4.3, SPEC_FULL.md §C).
func (e *Expander) templateSymbol(sym *value.Symbol) value.Value {
	name := sym.Name()
	if sym.HasNs {
		return quoteLiteral(sym)
	}
	if len(name) > 1 && name[len(name)-1] == '#' {
		base := name[:len(name)-1]
		if e.gensyms == nil {
			e.gensyms = make(map[string]*value.Symbol)
		}
		if g, ok := e.gensyms[base]; ok {
			return quoteLiteral(g)
		}
		g := value.NewSymbol(e.store, "", base+"__"+uuid.NewString()[:8]+"__auto__")
		e.gensyms[base] = g
		return quoteLiteral(g)
	}
	return quoteLiteral(value.NewSymbol(e.store, e.ns, name))
}

// quoteLiteral wraps v in (quote v), the one reader form spec.md §4.3 says
// survives expansion.
func quoteLiteral(v value.Value) value.Value {
	head := value.Special{Tag: value.SpecialQuote}
	return value.SeqFromSlice([]value.Value{head, v})
}

// templateSeq builds the (.cons t1 (.cons t2 ... tailExpr)) / (.concat seg
// tailExpr) chain implementing list templating with splicing (spec.md
// §4.3's "splice into enclosing sequential form").
func (e *Expander) templateSeq(s value.Seq, depth int) (value.Value, error) {
	items, err := value.SeqToSlice(s)
	if err != nil {
		return nil, err
	}
	return e.templateSequentialChain(items, depth, func(tail value.Value) value.Value { return tail })
}

func (e *Expander) templateVector(v *value.Vector, depth int) (value.Value, error) {
	return e.templateSequentialChain(v.Items, depth, func(tail value.Value) value.Value {
		toVecSym := value.NewSymbol(e.store, "", ".vec")
		return value.SeqFromSlice([]value.Value{toVecSym, tail})
	})
}

// templateSequentialChain builds the runtime-construction form for a
// sequential template's elements, right to left, then applies wrap to the
// finished list-building expression (identity for lists, ".vec" for
// vectors).
func (e *Expander) templateSequentialChain(items []value.Value, depth int, wrap func(value.Value) value.Value) (value.Value, error) {
	var tail value.Value = value.Empty
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if s, isSeq := it.(value.Seq); isSeq {
			if name, arg, ok := e.asSymbolMarker(s); ok && name == markerUnquoteAt && depth == 1 {
				spliced, err := e.expand(arg, 0)
				if err != nil {
					return nil, err
				}
				// .concat is a host primitive rather than the bootstrap
				// stdlib's own `concat` so that splicing works before
				// core.lbt has defined anything at all — defn itself
				// expands through this chain (core.lbt:6), so the lowering
				// target can't depend on any .lbt-defined function.
				concatSym := value.NewSymbol(e.store, "", ".concat")
				tail = value.SeqFromSlice([]value.Value{concatSym, spliced, tail})
				continue
			}
		}
		templated, err := e.expandTemplate(it, depth)
		if err != nil {
			return nil, err
		}
		consSym := value.NewSymbol(e.store, "", ".cons")
		tail = value.SeqFromSlice([]value.Value{consSym, templated, tail})
	}
	return wrap(tail), nil
}

// templateMap and templateSet have no splicing support (a documented
// scope decision — spec.md §4.3 only discusses splicing into "enclosing
// sequential form"): Map and Set literals evaluate their own elements in
// place (like Vector), so templating them just means recursing into each
// member and letting the evaluator's own Map/Set construction rule do the
// rest — no .cons/.concat chain needed.
func (e *Expander) templateMap(m *value.Map, depth int) (value.Value, error) {
	var flat []value.Value
	var outerErr error
	m.Range(func(k, v value.Value) bool {
		ek, err := e.expandTemplate(k, depth)
		if err != nil {
			outerErr = err
			return false
		}
		ev, err := e.expandTemplate(v, depth)
		if err != nil {
			outerErr = err
			return false
		}
		flat = append(flat, ek, ev)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return value.NewMapFromFlat(flat), nil
}

func (e *Expander) templateSet(s *value.Set, depth int) (value.Value, error) {
	var out []value.Value
	var outerErr error
	s.Range(func(v value.Value) bool {
		ev, err := e.expandTemplate(v, depth)
		if err != nil {
			outerErr = err
			return false
		}
		out = append(out, ev)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return value.NewSet(out), nil
}

// expandAnonFn lowers a #(...) marker into (fn [params...] content),
// collecting %, %1..%9, and %& from content (SPEC_FULL.md §C). content is
// the #(...) form's whole parenthesized body taken as one expression, not
// split into separate top-level body forms.
func (e *Expander) expandAnonFn(content value.Value) (value.Value, error) {
	contentSeq, ok := content.(value.Seq)
	if !ok {
		return nil, &ExpandError{Message: "#(...) body is not a sequence"}
	}
	bodyItems, err := value.SeqToSlice(contentSeq)
	if err != nil {
		return nil, err
	}

	used := map[int]bool{}
	rest := false
	var walk func(v value.Value)
	walk = func(v value.Value) {
		switch t := v.(type) {
		case *value.Symbol:
			if t.HasNs {
				return
			}
			n := t.Name()
			switch {
			case n == "%" || n == "%1":
				used[1] = true
			case n == "%&":
				rest = true
			case len(n) == 2 && n[0] == '%' && n[1] >= '1' && n[1] <= '9':
				used[int(n[1]-'0')] = true
			}
		case value.Seq:
			items, err := value.SeqToSlice(t)
			if err != nil {
				return
			}
			for _, it := range items {
				walk(it)
			}
		case *value.Vector:
			for _, it := range t.Items {
				walk(it)
			}
		}
	}
	for _, it := range bodyItems {
		walk(it)
	}

	maxArg := 0
	for n := range used {
		if n > maxArg {
			maxArg = n
		}
	}
	params := make([]value.Value, 0, maxArg+2)
	for i := 1; i <= maxArg; i++ {
		params = append(params, value.NewSymbol(e.store, "", fmt.Sprintf("%%%d", i)))
	}
	if rest {
		params = append(params,
			value.NewSymbol(e.store, "", "&"),
			value.NewSymbol(e.store, "", "%&"))
	}

	renamedContent := e.renameBareParam(contentSeq)
	expandedBody, err := e.expandBodyForms([]value.Value{renamedContent})
	if err != nil {
		return nil, err
	}

	fnHead := value.Special{Tag: value.SpecialFn}
	form := make([]value.Value, 0, len(expandedBody)+2)
	form = append(form, fnHead, value.NewVector(params))
	form = append(form, expandedBody...)
	return value.SeqFromSlice(form), nil
}

// renameBareParam rewrites the bare "%" anon-fn param symbol to "%1" so it
// shares the single-arg parameter binding fn's own arity receives.
func (e *Expander) renameBareParam(v value.Value) value.Value {
	switch t := v.(type) {
	case *value.Symbol:
		if !t.HasNs && t.Name() == "%" {
			return value.NewSymbol(e.store, "", "%1")
		}
		return t
	case value.Seq:
		items, err := value.SeqToSlice(t)
		if err != nil {
			return t
		}
		out := make([]value.Value, len(items))
		for i, it := range items {
			out[i] = e.renameBareParam(it)
		}
		return value.SeqFromSlice(out)
	case *value.Vector:
		out := make([]value.Value, t.Len())
		for i, it := range t.Items {
			out[i] = e.renameBareParam(it)
		}
		return value.NewVector(out)
	default:
		return v
	}
}

func (e *Expander) expandBodyForms(forms []value.Value) ([]value.Value, error) {
	out := make([]value.Value, len(forms))
	for i, f := range forms {
		ev, err := e.expand(f, 0)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}
