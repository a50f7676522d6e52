package host

import (
	"strings"

	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

// ioEntries wires `print`/`println`/`str` to the Evaluator's configured
// output sink (spec.md §6's writeOutput hook).
func ioEntries(ev *eval.Evaluator) []entry {
	return []entry{
		{"str", hostStr},
		{"print", hostPrint(ev, "")},
		{"println", hostPrint(ev, "\n")},
	}
}

func hostStr(args []value.Value) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(displayString(a))
	}
	return value.Str(sb.String()), nil
}

// displayString renders a value the way `str` does: strings and chars
// unwrap to their raw text, nil renders as the empty string, everything
// else uses its canonical print form (spec.md §6).
func displayString(v value.Value) string {
	switch t := v.(type) {
	case value.Str:
		return string(t)
	case value.Char:
		return string(rune(t))
	case value.Nil:
		return ""
	default:
		return value.NewPrinter().Print(v)
	}
}

func hostPrint(ev *eval.Evaluator, suffix string) eval.HostFunc {
	return func(args []value.Value) (value.Value, error) {
		var sb strings.Builder
		for _, a := range args {
			sb.WriteString(displayString(a))
		}
		sb.WriteString(suffix)
		ev.Output(sb.String())
		return value.Nil{}, nil
	}
}
