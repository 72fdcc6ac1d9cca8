// Package errors defines the failure taxonomy shared by every stage of an
// image transform request.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies where in the read-decode-transform-encode-write flow a
// request failed.
type Kind string

const (
	FileAccess                Kind = "file_access"
	Decode                    Kind = "decode"
	MalformedTransformSpec    Kind = "malformed_transform_spec"
	UnknownTransformation     Kind = "unknown_transformation"
	ArgumentContractViolation Kind = "argument_contract_violation"
	TransformationExecution   Kind = "transformation_execution"
	Encode                    Kind = "encode"
	DirectoryCreate           Kind = "directory_create"
	Write                     Kind = "write"
)

// Error is the structured error returned by the engine. Its message is meant
// to be shown to the caller as-is.
type Error struct {
	Kind Kind
	Op   string // optional context, prepended to the message
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error of the given kind from a plain message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind and operation name to err. Wrap(kind, op, nil) is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or "" when
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
