// Package errs holds the error taxonomy shared by the validators, the
// interval arithmetic and the record book. Concrete errors wrap one of the
// sentinels below so callers can decide between re-prompting and aborting
// with errors.Is.
package errs

import "errors"

var (
	// ErrValidation marks a malformed or out-of-range user value.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidDate marks a well-formed token that is not a calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrIO marks a store read or write failure. It is fatal.
	ErrIO = errors.New("store i/o")
	// ErrLogic marks a reference to a record that cannot be resolved.
	ErrLogic = errors.New("logic error")
)

// UserError carries a message meant to be shown verbatim to the user.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Err.Error() + ": " + e.Msg
}

func (e *UserError) Unwrap() error { return e.Err }

// WithMessage attaches a user-facing message to err.
func WithMessage(err error, msg string) error {
	return &UserError{Msg: msg, Err: err}
}

// UserMessage returns the user-facing message attached to err, if any.
func UserMessage(err error) (string, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Msg, true
	}
	return "", false
}

// Recoverable reports whether err should lead to a retry rather than abort.
func Recoverable(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrLogic)
}
