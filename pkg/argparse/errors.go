package argparse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an ArgumentError.
type ErrorKind int

const (
	MissingValue ErrorKind = iota + 1
	InvalidKey
	InvalidAlias
	InvalidPositional
	MissingPositional
	InvalidValue
	InvalidChoice
)

func (k ErrorKind) String() string {
	switch k {
	case MissingValue:
		return "missing value"
	case InvalidKey:
		return "invalid option key"
	case InvalidAlias:
		return "invalid option alias"
	case InvalidPositional:
		return "invalid positional argument"
	case MissingPositional:
		return "missing positional arguments"
	case InvalidValue:
		return "invalid value"
	case InvalidChoice:
		return "invalid choice"
	default:
		return "argument error"
	}
}

// ArgumentError is the single distinguished error kind for user input that
// does not match a command's schema. Message is shown to the user verbatim.
type ArgumentError struct {
	Kind    ErrorKind
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// NewArgumentError lets command handlers report input problems that the
// schema cannot express, using the same reporting path as parse failures.
func NewArgumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{Message: fmt.Sprintf(format, args...)}
}

// IsArgumentError reports whether err is or wraps an *ArgumentError.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}

func errMissingValue(token string) error {
	return &ArgumentError{Kind: MissingValue, Message: "Missing value for argument: " + token}
}

func errInvalidKey(token string) error {
	return &ArgumentError{Kind: InvalidKey, Message: "Invalid option key: " + token}
}

func errInvalidAlias(token string) error {
	return &ArgumentError{Kind: InvalidAlias, Message: "Invalid option alias: " + token}
}

func errInvalidPositional(token string) error {
	return &ArgumentError{Kind: InvalidPositional, Message: "Invalid positional argument: " + token}
}

func errMissingPositionals(keys []string) error {
	return &ArgumentError{
		Kind:    MissingPositional,
		Message: "Missing positional arguments: " + strings.Join(keys, ", "),
	}
}

func errInvalidValue(key string, value any) error {
	return &ArgumentError{
		Kind:    InvalidValue,
		Message: fmt.Sprintf("Invalid value for argument: %s (%s)", key, FormatValue(value)),
	}
}

func errInvalidChoice(key string, value any, choices []any) error {
	return &ArgumentError{
		Kind: InvalidChoice,
		Message: fmt.Sprintf("Invalid choice for argument: %s (%s). Allowed choices are [%s]",
			key, FormatValue(value), JoinValues(choices)),
	}
}
