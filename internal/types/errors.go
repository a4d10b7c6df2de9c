package types

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorKind classifies schema compiler failures.
type ErrorKind string

const (
	KindMalformedShorthand    ErrorKind = "malformed_shorthand"
	KindMalformedDirective    ErrorKind = "malformed_directive"
	KindConflictingDefinition ErrorKind = "conflicting_definition"
	KindUnresolvedReference   ErrorKind = "unresolved_reference"
	KindCyclicReference       ErrorKind = "cyclic_reference"
	KindIO                    ErrorKind = "io_error"
)

// SchemaError is the uniform failure value returned by the compiler,
// registry and resolver. Message is meant for the user; Details carries
// additional context and may be empty.
type SchemaError struct {
	Kind    ErrorKind
	Message string
	Details string

	cause error
}

// NewSchemaError builds a SchemaError backed by an errbuilder error whose
// code matches the kind.
func NewSchemaError(kind ErrorKind, message string, details string) *SchemaError {
	return &SchemaError{
		Kind:    kind,
		Message: message,
		Details: details,
		cause: errbuilder.New().
			WithCode(codeForKind(kind)).
			WithMsg(message),
	}
}

// WrapSchemaError is NewSchemaError with an underlying cause, typically an
// I/O or decode failure.
func WrapSchemaError(kind ErrorKind, code errbuilder.ErrCode, message string, cause error) *SchemaError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &SchemaError{
		Kind:    kind,
		Message: message,
		Details: details,
		cause: errbuilder.New().
			WithCode(code).
			WithMsg(message).
			WithCause(cause),
	}
}

func (e *SchemaError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func (e *SchemaError) Unwrap() error { return e.cause }

// Code returns the errbuilder code backing the error.
func (e *SchemaError) Code() errbuilder.ErrCode {
	if e.cause == nil {
		return codeForKind(e.Kind)
	}
	return errbuilder.CodeOf(e.cause)
}

func codeForKind(kind ErrorKind) errbuilder.ErrCode {
	switch kind {
	case KindMalformedShorthand, KindMalformedDirective:
		return errbuilder.CodeInvalidArgument
	case KindConflictingDefinition:
		return errbuilder.CodeAlreadyExists
	case KindUnresolvedReference:
		return errbuilder.CodeNotFound
	case KindCyclicReference:
		return errbuilder.CodeFailedPrecondition
	default:
		return errbuilder.CodeInternal
	}
}

// KindOf returns the kind of the first SchemaError in err's chain, or ""
// when there is none.
func KindOf(err error) ErrorKind {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Kind
	}
	return ""
}

// Describe splits err into the message/details pair shown to users.
// Errors that are not SchemaErrors report their text as the message.
func Describe(err error) (message string, details string) {
	if err == nil {
		return "", ""
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Message, schemaErr.Details
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && builder.Msg != "" {
		return builder.Msg, ""
	}
	return err.Error(), ""
}
