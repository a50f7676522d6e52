package main

import "flag"

type cliFlags struct {
	evalStr  string
	file     string
	noStdlib bool
	verbose  bool
}

func parseFlags(argv []string) (cliFlags, error) {
	fs := flag.NewFlagSet("lambdatron", flag.ContinueOnError)
	var f cliFlags
	fs.StringVar(&f.evalStr, "e", "", "evaluate a Lambdatron expression and exit")
	fs.StringVar(&f.file, "f", "", "evaluate a Lambdatron source file and exit")
	fs.BoolVar(&f.noStdlib, "no-stdlib", false, "skip loading the embedded bootstrap stdlib")
	fs.BoolVar(&f.verbose, "v", false, "enable development-mode structured logging")
	if err := fs.Parse(argv); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}
