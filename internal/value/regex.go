package value

import "regexp"

// Regex wraps a compiled pattern from a #"..." literal (spec.md §6). The
// core Value union in spec.md §3 doesn't list a Regex variant — regex
// literals are mentioned only at the lexer/source-syntax level, "present
// only if the implementation supports them" — so this is the supplemented,
// optional extension spec.md §9 gestures at, kept as its own small type
// rather than overloading Str so printing and equality stay unambiguous.
type Regex struct {
	Embed
	Pattern string
	Re      *regexp.Regexp
}

func (*Regex) Kind() Kind { return KindRegex }

func (r *Regex) String() string { return `#"` + r.Pattern + `"` }

// NewRegex compiles pattern, returning an error if it isn't a valid RE2
// pattern (the parser surfaces it as ReadError InvalidRegex).
func NewRegex(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{Pattern: pattern, Re: re}, nil
}
