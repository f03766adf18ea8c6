package usecase

import "errors"

// Kind classifies an operation failure. Validation and authentication failures
// are rejected before any mutation, computation failures are absorbed with a
// last-good fallback where possible, and persistence failures are the only
// class surfaced as a failed operation.
type Kind string

const (
	KindValidation       Kind = "VALIDATION_ERROR"
	KindNotAuthenticated Kind = "NOT_AUTHENTICATED"
	KindNotFound         Kind = "NOT_FOUND"
	KindComputation      Kind = "COMPUTATION_ERROR"
	KindPersistence      Kind = "PERSISTENCE_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}
