// Command lambdatron is the Lambdatron interpreter CLI: batch
// evaluation of a -e string or a file, or an interactive REPL when run
// against a terminal.
//
// Grounded on the teacher's cmd/losp/main.go flag layout and dispatch
// order (string, then file, then piped stdin, then REPL).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"lambdatron.dev/lambdatron/pkg/lambdatron"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	flags, err := parseFlags(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log := zap.NewNop()
	if flags.verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to build logger:", err)
			return 1
		}
		defer log.Sync()
	}

	opts := []lambdatron.Option{
		lambdatron.WithLogger(log),
		lambdatron.WithOutput(func(s string) { fmt.Print(s) }),
	}
	if flags.noStdlib {
		opts = append(opts, lambdatron.WithoutStdlib())
	}

	rt, err := lambdatron.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bootstrap failed:", err)
		return 1
	}

	switch {
	case flags.evalStr != "":
		return printResult(rt.Evaluate(flags.evalStr))
	case flags.file != "":
		src, err := os.ReadFile(flags.file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return printResult(rt.Evaluate(string(src)))
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return printResult(rt.Evaluate(string(src)))
	default:
		runREPL(rt)
		return 0
	}
}

func printResult(res lambdatron.Result) int {
	if !res.Ok() {
		fmt.Fprintln(os.Stderr, res.String())
		return 1
	}
	fmt.Println(res.String())
	return 0
}
