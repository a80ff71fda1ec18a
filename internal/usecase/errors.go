package usecase

import "errors"

// Failure categories. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrIntegrity    = errors.New("integrity violation")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state transition")
	ErrDuplicate    = errors.New("duplicate idempotency key")
)

// Error is an expected failure: Kind is one of the sentinels above and
// Msg is safe to show to the caller.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func fail(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func failWith(kind error, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Message returns the caller-facing message of err, or "" if err is not an *Error.
func Message(err error) string {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Msg
	}
	return ""
}
