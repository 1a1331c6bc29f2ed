// Package rterr implements spec.md §7's closed error enumeration. Errors
// propagate as ordinary Go error return values (*Error); the package keeps
// no process-wide error slot.
//
// Grounded on the teacher's internal/vm/panic.go - a stable, append-only
// numeric Code enum plus a single Error struct with a Code/Message/
// position - rather than internal/diag's Bag/Severity/Diagnostic model,
// which accumulates many diagnostics across a whole compile pass. That
// model doesn't fit here: spec.md §7 describes one process-wide error
// slot, not an accumulating list, so Bag's "keep collecting up to a cap"
// semantics would have to be fought rather than used (see DESIGN.md).
package rterr

import "fmt"

// Code is a stable, append-only error kind. Values are assigned once and
// never reordered or reused, so a given code keeps meaning the same thing
// across versions.
type Code uint16

const (
	Unimplemented Code = iota + 1
	Interrupted
	MissingArgument
	InvalidObject
	OutOfMemory
	Syntax
	InfixExpected
	PrefixExpected
	ArgumentExpected
	ZeroDivide
	UndefinedOperation
	TypeError
	ValueError
	IndexError
	DimensionError
	Mantissa
	Exponent
	ExponentRange
	Domain
	BasedNumber
	BasedDigit
	BasedRange
	InvalidBase
	Unterminated
	NoDirectory
	NameExists
	UndefinedName
	Recursion
	ReturnWithoutCaller
	InvalidLocal
	NumberTooBig
	TooManyRewrites
	ConstantValue
	BadGuess
	NoSolution
)

var names = map[Code]string{
	Unimplemented:        "unimplemented",
	Interrupted:          "interrupted",
	MissingArgument:      "missing_argument",
	InvalidObject:        "invalid_object",
	OutOfMemory:          "out_of_memory",
	Syntax:               "syntax",
	InfixExpected:        "infix_expected",
	PrefixExpected:       "prefix_expected",
	ArgumentExpected:     "argument_expected",
	ZeroDivide:           "zero_divide",
	UndefinedOperation:   "undefined_operation",
	TypeError:            "type",
	ValueError:           "value",
	IndexError:           "index",
	DimensionError:       "dimension",
	Mantissa:             "mantissa",
	Exponent:             "exponent",
	ExponentRange:        "exponent_range",
	Domain:               "domain",
	BasedNumber:          "based_number",
	BasedDigit:           "based_digit",
	BasedRange:           "based_range",
	InvalidBase:          "invalid_base",
	Unterminated:         "unterminated",
	NoDirectory:          "no_directory",
	NameExists:           "name_exists",
	UndefinedName:        "undefined_name",
	Recursion:            "recursion",
	ReturnWithoutCaller:  "return_without_caller",
	InvalidLocal:         "invalid_local",
	NumberTooBig:         "number_too_big",
	TooManyRewrites:      "too_many_rewrites",
	ConstantValue:        "constant_value",
	BadGuess:             "bad_guess",
	NoSolution:           "no_solution",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "unknown_error"
}

// Error is the value that occupies the runtime's process-wide error slot.
// Pos is a byte offset into the source that produced it when known (e.g. a
// parse failure); zero otherwise.
type Error struct {
	Code    Code
	Message string
	Command string
	Pos     int
}

func (e *Error) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Command, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an Error with no command/position context.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCommand returns a copy of e with Command set, for errors raised
// while evaluating a specific command (spec.md §7 "together with an
// optional source position and command name").
func (e *Error) WithCommand(name string) *Error {
	c := *e
	c.Command = name
	return &c
}
