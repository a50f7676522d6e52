package eval

import (
	"fmt"
	"strings"

	"lambdatron.dev/lambdatron/internal/value"
)

// Arity is one (fixed-parameter list, optional variadic parameter, body)
// clause of a Function (spec.md §3).
type Arity struct {
	Fixed    []string
	Variadic string // "" if this arity has no rest parameter
	HasRest  bool
	Body     []value.Value
}

// Function is a closure: an optional self-reference name, its arities, and
// the context it closed over (spec.md §3). Macro shares the identical
// shape, distinguished only by how the evaluator dispatches on it (spec.md
// §9's "same underlying closure structure").
type Function struct {
	value.Embed
	SelfName string
	Arities  []Arity
	Env      *Context
	IsMacro  bool
}

func (f *Function) Kind() value.Kind {
	if f.IsMacro {
		return value.KindMacro
	}
	return value.KindFunction
}

func (f *Function) String() string {
	tag := "fn"
	if f.IsMacro {
		tag = "macro"
	}
	name := f.SelfName
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("#<%s %s>", tag, name)
}

// SelectArity implements spec.md §8's arity-dispatch invariant: prefer the
// exact fixed-count match; else the variadic arity whose fixed count is
// maximal and <= argc; else none.
func (f *Function) SelectArity(argc int) (Arity, bool) {
	for _, a := range f.Arities {
		if !a.HasRest && len(a.Fixed) == argc {
			return a, true
		}
	}
	best := -1
	for i, a := range f.Arities {
		if a.HasRest && len(a.Fixed) <= argc {
			if best == -1 || len(a.Fixed) > len(f.Arities[best].Fixed) {
				best = i
			}
		}
	}
	if best >= 0 {
		return f.Arities[best], true
	}
	return Arity{}, false
}

// BuildArities validates the arity-list constraints from spec.md §3: at
// most one variadic arity, at most one arity per fixed arity-count, and a
// variadic arity must have at least as many fixed parameters as every
// non-variadic arity (matching it exactly is fine — SelectArity always
// prefers the exact non-variadic match over the variadic fallback).
func BuildArities(arities []Arity) error {
	seenFixed := map[int]bool{}
	variadicCount := 0
	maxFixedNonVariadic := -1
	for _, a := range arities {
		if a.HasRest {
			variadicCount++
			continue
		}
		if seenFixed[len(a.Fixed)] {
			return fmt.Errorf("duplicate arity for %d fixed parameters", len(a.Fixed))
		}
		seenFixed[len(a.Fixed)] = true
		if len(a.Fixed) > maxFixedNonVariadic {
			maxFixedNonVariadic = len(a.Fixed)
		}
	}
	if variadicCount > 1 {
		return fmt.Errorf("at most one variadic arity is allowed")
	}
	for _, a := range arities {
		if a.HasRest && len(a.Fixed) < maxFixedNonVariadic {
			return fmt.Errorf("variadic arity must have at least as many fixed parameters as every non-variadic arity")
		}
	}
	return nil
}

func formatParams(a Arity) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(a.Fixed, " "))
	if a.HasRest {
		if len(a.Fixed) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("& " + a.Variadic)
	}
	return sb.String()
}
