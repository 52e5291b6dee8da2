package commands

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/c360studio/addressbook/model"
)

// User-facing messages.
const (
	MessageInvalidCommandFormat        = "Invalid command format! \n%s"
	MessageUnknownCommand              = "Unknown command"
	MessageInvalidPersonDisplayedIndex = "The person index provided is invalid"
	MessageInvalidTaskDisplayedIndex   = "The task index provided is invalid"
	MessageInvalidIndex                = "Index is not a non-zero unsigned integer."
	MessageDuplicateFields             = "Multiple values specified for the following single-valued field(s): %s"
)

// Code classifies a ParseError.
type Code string

// Parse error codes.
const (
	// CodeMalformedCommand means the line has no command word at all.
	CodeMalformedCommand Code = "malformed"
	// CodeUnknownCommand means the command word is not registered.
	CodeUnknownCommand Code = "unknown"
	// CodeInvalidArguments means a sub-parser rejected the arguments.
	CodeInvalidArguments Code = "invalid_arguments"
)

// ParseError is returned when a command line cannot be turned into a Command.
// It is user-facing and recoverable: the caller shows Message and re-prompts.
type ParseError struct {
	Code    Code
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func invalidFormat(usage string) *ParseError {
	return &ParseError{Code: CodeInvalidArguments, Message: fmt.Sprintf(MessageInvalidCommandFormat, usage)}
}

func invalidArgument(err error) *ParseError {
	return &ParseError{Code: CodeInvalidArguments, Message: userMessage(err), Err: err}
}

// ExecError is returned when a parsed command cannot be applied to the
// address book. It is user-facing and leaves the book unchanged.
type ExecError struct {
	Message string
	Err     error
}

func (e *ExecError) Error() string {
	return e.Message
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func execError(err error) *ExecError {
	return &ExecError{Message: userMessage(err), Err: err}
}

// ErrorCode returns the parse error code of err, or "" if err is not a
// ParseError.
func ErrorCode(err error) Code {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// userMessage turns err into a sentence for the user. Field validation errors
// show the field's constraint.
func userMessage(err error) string {
	var fe *model.FieldError
	if errors.As(err, &fe) && fe.Constraint != "" {
		return fe.Constraint
	}
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
