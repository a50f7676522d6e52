// Package host implements Lambdatron's host function library: the
// dot-prefixed BuiltIns the evaluator invokes directly (spec.md §6), as
// opposed to the macros and seq utilities the embedded bootstrap stdlib
// builds out of them (internal/bootstrap).
//
// Grounded on the teacher's internal/eval/builtin.go name->function
// registry, generalized from losp's raw-string-argument BuiltinFunc to
// already-evaluated []value.Value arguments, and split by concern the
// way the teacher splits builtin_async.go/builtin_history.go/etc. from
// the main builtin.go table.
package host

import (
	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/value"
)

// entry pairs a stable host-function name with its implementation.
type entry struct {
	name string
	fn   eval.HostFunc
}

// Install interns every host builtin as a Var in a dedicated
// "lambdatron.core" namespace, then refers each one, unqualified, into
// ev's current namespace — mirroring spec.md §4.6's description of
// referred vars shadowing nothing already defined locally.
func Install(ev *eval.Evaluator) {
	core := ev.Registry.FindOrCreate("lambdatron.core")
	for _, e := range allEntries(ev) {
		v := core.Intern(e.name)
		v.Set(&value.Builtin{Name: value.BuiltinID(e.name), Fn: e.fn})
		ev.CurrentNamespace().Refer(e.name, v)
	}
}

func allEntries(ev *eval.Evaluator) []entry {
	var all []entry
	all = append(all, arithmeticEntries()...)
	all = append(all, predicateEntries()...)
	all = append(all, collectionEntries()...)
	all = append(all, ioEntries(ev)...)
	all = append(all, lazyEntries(ev)...)
	all = append(all, formatEntries()...)
	all = append(all, regexEntries()...)
	return all
}
