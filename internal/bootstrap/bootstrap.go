// Package bootstrap embeds Lambdatron's own stdlib source and loads it
// into a fresh Evaluator (spec.md §6): `defn`, `when`, `when-let`, `->`,
// and the seq utilities built on internal/host's primitives.
//
// Grounded on the teacher's internal/stdlib package shape — a small
// package whose only job is go:embed-ing text and handing it to the
// evaluator — generalized from losp's markdown primer text to an
// executable .lbt source file.
package bootstrap

import (
	_ "embed"
	"fmt"

	"lambdatron.dev/lambdatron/internal/eval"
)

//go:embed core.lbt
var coreSource string

// Source returns the embedded stdlib text.
func Source() string { return coreSource }

// Load evaluates the embedded stdlib in ev. Any error here is fatal to
// interpreter startup (spec.md §6's "any error during bootstrap is
// fatal").
func Load(ev *eval.Evaluator) error {
	if _, err := ev.Evaluate(coreSource); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return nil
}
