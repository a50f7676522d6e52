package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders Values in Lambdatron's canonical readable form (spec.md
// §6). Symbol/Keyword text is resolved through the store each of them
// carries.
type Printer struct{}

// NewPrinter returns a Printer. It takes no arguments because Symbol and
// Keyword already carry their own store reference (see symbol.go); kept as
// a type, rather than a free function, so the eval package can extend it
// with Function/Macro/Var rendering without this package needing to know
// about those types.
func NewPrinter() *Printer { return &Printer{} }

// Print renders v. Opaque values this package doesn't define (Function,
// Macro, Var) are rendered via their own String() method if they implement
// fmt.Stringer, else as a generic tagged placeholder.
func (p *Printer) Print(v Value) string {
	var sb strings.Builder
	p.write(&sb, v)
	return sb.String()
}

func (p *Printer) write(sb *strings.Builder, v Value) {
	switch t := v.(type) {
	case Nil:
		sb.WriteString("nil")
	case Bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Int:
		sb.WriteString(strconv.FormatInt(int64(t), 10))
	case Float:
		sb.WriteString(formatFloat(float64(t)))
	case Char:
		sb.WriteString(printChar(rune(t)))
	case Str:
		sb.WriteString(printString(string(t)))
	case *Symbol:
		if t.HasNs {
			sb.WriteString(t.Namespace())
			sb.WriteByte('/')
		}
		sb.WriteString(t.Name())
	case *Keyword:
		sb.WriteByte(':')
		if t.HasNs {
			sb.WriteString(t.Namespace())
			sb.WriteByte('/')
		}
		sb.WriteString(t.Name())
	case Seq:
		sb.WriteByte('(')
		first := true
		_ = seqForEach(t, func(e Value) error {
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			p.write(sb, e)
			return nil
		})
		sb.WriteByte(')')
	case *Vector:
		sb.WriteByte('[')
		for i, e := range t.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			p.write(sb, e)
		}
		sb.WriteByte(']')
	case *Map:
		sb.WriteByte('{')
		i := 0
		t.Range(func(k, val Value) bool {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.write(sb, k)
			sb.WriteByte(' ')
			p.write(sb, val)
			i++
			return true
		})
		sb.WriteByte('}')
	case *Set:
		sb.WriteString("#{")
		i := 0
		t.Range(func(e Value) bool {
			if i > 0 {
				sb.WriteByte(' ')
			}
			p.write(sb, e)
			i++
			return true
		})
		sb.WriteByte('}')
	case Special:
		sb.WriteString(t.Tag.String())
	case *Builtin:
		sb.WriteString(fmt.Sprintf("#<builtin %s>", t.Name))
	case fmt.Stringer:
		// Function, Macro, Var (defined in package eval) implement
		// fmt.Stringer so they can be printed without this package
		// depending on theirs.
		sb.WriteString(t.String())
	default:
		sb.WriteString(fmt.Sprintf("#<%T>", v))
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

func printChar(r rune) string {
	switch r {
	case '\n':
		return `\newline`
	case ' ':
		return `\space`
	case '\t':
		return `\tab`
	case '\r':
		return `\return`
	case '\\':
		return `\\`
	case '"':
		return `\"`
	default:
		return `\` + string(r)
	}
}

func printString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
