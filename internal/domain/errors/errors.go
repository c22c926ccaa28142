package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrPersistence    = errors.New("persistence failure")
	ErrTokenIssuance  = errors.New("token issuance failure")
	ErrUnknown        = errors.New("unknown failure")

	// ErrRegistrationFailed is the only failure registration callers see.
	ErrRegistrationFailed = errors.New("registration failed")
)

// RegistrationError hides the classified cause behind ErrRegistrationFailed
// while keeping it reachable through errors.Is.
type RegistrationError struct {
	Cause error
}

func (e *RegistrationError) Error() string {
	return ErrRegistrationFailed.Error()
}

func (e *RegistrationError) Unwrap() []error {
	return []error{ErrRegistrationFailed, e.Cause}
}

// Classify maps an arbitrary failure to one of the registration error kinds.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateEmail):
		return ErrDuplicateEmail
	case errors.Is(err, ErrTokenIssuance):
		return ErrTokenIssuance
	case errors.Is(err, ErrPersistence):
		return ErrPersistence
	default:
		return ErrUnknown
	}
}
