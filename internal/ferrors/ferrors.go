// Package ferrors defines the fatal error kinds surfaced by the lexer and
// parser generator core.
//
// Each constructor produces an error that is fatal to the current operation
// (there is no local recovery), wraps a sentinel Kind for errors.Is checks,
// and carries a human-readable message naming the offending token,
// production, or state.
package ferrors

import (
	"errors"
	"fmt"
)

// Kind is a sentinel identifying one of the error categories this package
// defines. Compare against it with errors.Is.
type Kind string

// The error kinds this package defines.
const (
	KindInvalidRegex        Kind = "InvalidRegex"
	KindUnknownSymbol       Kind = "UnknownSymbol"
	KindDuplicateProduction Kind = "DuplicateProduction"
	KindShiftReduce         Kind = "ShiftReduce"
	KindReduceReduce        Kind = "ReduceReduce"
	KindInvalidInput        Kind = "InvalidInput"
	KindPatternParseError   Kind = "PatternParseError"
	KindIoError             Kind = "IoError"
)

func (k Kind) Error() string {
	return string(k)
}

// fatalError is the concrete error type returned by every constructor in
// this package. It wraps the sentinel Kind so callers can use errors.Is(err,
// ferrors.KindInvalidRegex) and also carries the detailed, human-readable
// message.
type fatalError struct {
	kind Kind
	msg  string
}

func (e *fatalError) Error() string {
	return e.msg
}

func (e *fatalError) Unwrap() error {
	return e.kind
}

func newf(kind Kind, format string, a ...interface{}) error {
	return &fatalError{kind: kind, msg: fmt.Sprintf("%s: %s", kind, fmt.Sprintf(format, a...))}
}

// Regex reports a malformed regular expression, naming the offending
// sub-expression or operator.
func Regex(format string, a ...interface{}) error {
	return newf(KindInvalidRegex, format, a...)
}

// UnknownSymbol reports a grammar alternative referencing a symbol that is
// in neither the terminal nor the non-terminal vocabulary.
func UnknownSymbol(format string, a ...interface{}) error {
	return newf(KindUnknownSymbol, format, a...)
}

// DuplicateProduction reports an LR(0) augmentation finding the same
// production registered twice.
func DuplicateProduction(format string, a ...interface{}) error {
	return newf(KindDuplicateProduction, format, a...)
}

// ShiftReduce reports an SLR(1) validity check finding a shift/reduce
// conflict, naming the state and the symbols in conflict.
func ShiftReduce(format string, a ...interface{}) error {
	return newf(KindShiftReduce, format, a...)
}

// ReduceReduce reports an SLR(1) validity check finding a reduce/reduce
// conflict, naming the state and the two competing reductions.
func ReduceReduce(format string, a ...interface{}) error {
	return newf(KindReduceReduce, format, a...)
}

// InvalidInput reports a parser-driver failure: neither shift nor reduce
// applies for the current state and lookahead token.
func InvalidInput(format string, a ...interface{}) error {
	return newf(KindInvalidInput, format, a...)
}

// PatternParse reports a malformed pattern or grammar file line.
func PatternParse(format string, a ...interface{}) error {
	return newf(KindPatternParseError, format, a...)
}

// IO wraps an underlying I/O failure (reading a pattern/grammar/token-stream
// file) with the IoError kind.
func IO(wrapped error, format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	return &fatalError{kind: KindIoError, msg: fmt.Sprintf("%s: %s: %v", KindIoError, msg, wrapped)}
}

// Is reports whether err is one of the fatal kinds defined in this package,
// and if so which.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}

// ExitCode returns the process exit code for err: 0 if err is nil,
// non-zero for any of the kinds in this package (and for any other
// non-nil error, defensively).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
