// Package asmerr defines the toolchain's error taxonomy: a single
// concrete Error type carrying a discriminated Kind, standing in for
// the original machine's exception-class hierarchy. Callers can bulk
// catch any toolchain error with errors.As into a *asmerr.Error
// variable, or check a specific kind with errors.Is against
// asmerr.New(kind, ""), which matches on Kind alone.
package asmerr

import "fmt"

// Kind discriminates the category of an Error.
type Kind string

// Translate-time kinds: raised while lexing, parsing or linking source.
const (
	KindUndefinedInstruction      Kind = "undefined_instruction"
	KindUndefinedLOC              Kind = "undefined_loc"
	KindUnexpectedOperand         Kind = "unexpected_operand"
	KindUnexpectedArguments       Kind = "unexpected_arguments"
	KindNotEnoughOperands         Kind = "not_enough_operands"
	KindUnexpectedDataValue       Kind = "unexpected_data_value"
	KindTextSectionNotFound       Kind = "text_section_not_found"
	KindDataNotFound              Kind = "data_not_found"
	KindIncorrectDataType         Kind = "incorrect_data_type"
	KindNoSuchLabel               Kind = "no_such_label"
	KindNumberOutOfRange          Kind = "number_out_of_range"
	KindOperandMustBeCharNotString Kind = "operand_must_be_char_not_string"
	KindNotEnoughMemory           Kind = "not_enough_memory"
)

// Execute-time kinds: raised while running a loaded program.
const (
	KindOperandIsNotWriteable Kind = "operand_is_not_writeable"
	KindRegisterIsNotReadable Kind = "register_is_not_readable"
	KindRegisterIsNotWritable Kind = "register_is_not_writable"
	KindALUZeroDivisionError  Kind = "alu_zero_division_error"
)

// Error is a toolchain diagnostic: a kind, a human message, and
// optional source context (the offending token or line) for
// highlighting where it went wrong.
type Error struct {
	Kind    Kind
	Message string
	Context string
	Line    int
	Err     error
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (near %q)", e.Kind, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithContext attaches offending-token context to an Error, for
// diagnostic rendering.
func (e *Error) WithContext(context string) *Error {
	e.Context = context
	return e
}

// WithLine attaches a source line number to an Error.
func (e *Error) WithLine(line int) *Error {
	e.Line = line
	return e
}

// Is supports errors.Is(err, asmerr.New(kind, "")) style comparisons
// by kind alone, ignoring message/context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
