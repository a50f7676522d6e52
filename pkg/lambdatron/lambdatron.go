// Package lambdatron is the public API for embedding the interpreter: a
// Runtime built with functional Options, wrapping internal/eval,
// internal/host, and internal/bootstrap (spec.md §6).
//
// Grounded on the teacher's pkg/losp package shape (a Runtime struct
// built from Options wrapping an internal Evaluator, with the stdlib
// loaded at construction time unless disabled).
package lambdatron

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lambdatron.dev/lambdatron/internal/bootstrap"
	"lambdatron.dev/lambdatron/internal/eval"
	"lambdatron.dev/lambdatron/internal/host"
	"lambdatron.dev/lambdatron/internal/intern"
	"lambdatron.dev/lambdatron/internal/reader"
	"lambdatron.dev/lambdatron/internal/value"
)

// Runtime is a Lambdatron interpreter instance (spec.md §6's Evaluator
// API: new/reset/evaluate/writeOutput/internStore/currentNamespace).
type Runtime struct {
	store     *intern.Store
	evaluator *eval.Evaluator
	noStdlib  bool
	log       *zap.Logger
	output    func(string)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the structured logger used for diagnostic output.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runtime) { r.log = log }
}

// WithOutput sets the hook `print`/`println` write through (spec.md §6's
// writeOutput). Defaults to a no-op.
func WithOutput(w func(string)) Option {
	return func(r *Runtime) { r.output = w }
}

// WithoutStdlib skips loading the embedded bootstrap stdlib, for tests
// that want a bare evaluator with only the special forms and host
// primitives.
func WithoutStdlib() Option {
	return func(r *Runtime) { r.noStdlib = true }
}

// New creates a Runtime, installs the host function library, and — unless
// WithoutStdlib is given — loads the embedded bootstrap stdlib. A
// bootstrap failure is fatal (spec.md §6) and returned as an error.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		log:    zap.NewNop(),
		output: func(string) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.store = intern.New()
	r.evaluator = eval.New(r.store,
		eval.WithLogger(r.log),
		eval.WithOutput(r.output),
	)
	host.Install(r.evaluator)
	if !r.noStdlib {
		if err := bootstrap.Load(r.evaluator); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Result is the outcome of Evaluate: on failure exactly one of ReadErr,
// ExpandErr, or EvalErr is set, otherwise Value holds the result (spec.md
// §6's `{ Success(Value) | ReadFailure(ReadError) | EvalFailure(EvalError) }`,
// with reader-macro expansion failures reported separately as ExpandErr).
type Result struct {
	Value     value.Value
	ReadErr   *reader.ReadError
	ExpandErr *reader.ExpandError
	EvalErr   *eval.EvalError
}

// Ok reports whether evaluation succeeded.
func (r Result) Ok() bool {
	return r.ReadErr == nil && r.ExpandErr == nil && r.EvalErr == nil
}

// String renders the result's value in canonical print form, or its
// error.
func (r Result) String() string {
	switch {
	case r.ReadErr != nil:
		return r.ReadErr.Error()
	case r.ExpandErr != nil:
		return r.ExpandErr.Error()
	case r.EvalErr != nil:
		return r.EvalErr.Error()
	default:
		return value.NewPrinter().Print(r.Value)
	}
}

// Evaluate reads and evaluates src, classifying any failure as a
// ReadError, an ExpandError, or an EvalError (spec.md §7).
func (r *Runtime) Evaluate(src string) Result {
	v, err := r.evaluator.Evaluate(src)
	if err == nil {
		return Result{Value: v}
	}
	var readErr *reader.ReadError
	if errors.As(err, &readErr) {
		return Result{ReadErr: readErr}
	}
	var expandErr *reader.ExpandError
	if errors.As(err, &expandErr) {
		return Result{ExpandErr: expandErr}
	}
	var evalErr *eval.EvalError
	if errors.As(err, &evalErr) {
		return Result{EvalErr: evalErr}
	}
	return Result{EvalErr: &eval.EvalError{Kind: eval.RuntimeError, Message: fmt.Sprintf("%v", err)}}
}

// InternStore returns the runtime's symbol/keyword intern store.
func (r *Runtime) InternStore() *intern.Store { return r.store }

// CurrentNamespace returns the name of the namespace top-level forms
// evaluate in.
func (r *Runtime) CurrentNamespace() string { return r.evaluator.CurrentNamespace().Name }

// Reset discards all namespaces and re-runs bootstrap, as if the Runtime
// were newly constructed with the same options.
func (r *Runtime) Reset() error {
	r.evaluator = eval.New(r.store,
		eval.WithLogger(r.log),
		eval.WithOutput(r.output),
	)
	host.Install(r.evaluator)
	if !r.noStdlib {
		return bootstrap.Load(r.evaluator)
	}
	return nil
}
