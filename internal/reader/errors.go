package reader

import "fmt"

// ReadErrorKind enumerates the lex/parse failure modes from spec.md §7.
type ReadErrorKind int

const (
	InvalidEscape ReadErrorKind = iota
	NonTerminatedString
	MismatchedDelimiter
	UnfinishedForm
	MapKVMismatch
	InvalidRegex
)

var readErrorNames = map[ReadErrorKind]string{
	InvalidEscape:       "InvalidEscape",
	NonTerminatedString: "NonTerminatedString",
	MismatchedDelimiter: "MismatchedDelimiter",
	UnfinishedForm:      "UnfinishedForm",
	MapKVMismatch:       "MapKVMismatch",
	InvalidRegex:        "InvalidRegex",
}

func (k ReadErrorKind) String() string { return readErrorNames[k] }

// ReadError reports a lex or parse failure, with the 1-based line/column it
// occurred at.
type ReadError struct {
	Kind    ReadErrorKind
	Line    int
	Col     int
	Message string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Col, e.Message)
}

func newReadError(kind ReadErrorKind, line, col int, msg string) *ReadError {
	return &ReadError{Kind: kind, Line: line, Col: col, Message: msg}
}
